//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/tetragramaton/gasflow-go/internal/app"
)

func InitRelayAdapter(path app.ConfigPath, env app.DotEnvPath) (*RelayAdapter, func(), error) {
	wire.Build(
		app.RelaySet,
		NewRelayAdapter,
	)
	return nil, nil, nil // wire will generate the result
}
