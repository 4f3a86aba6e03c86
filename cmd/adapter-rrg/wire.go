//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/tetragramaton/gasflow-go/internal/app"
)

func InitFlowAdapter(path app.ConfigPath, env app.DotEnvPath) (*FlowAdapter, func(), error) {
	wire.Build(
		app.FlowSet,
		NewFlowAdapter,
	)
	return nil, nil, nil // wire will generate the result
}
