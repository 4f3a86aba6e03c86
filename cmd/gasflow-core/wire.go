//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/tetragramaton/gasflow-go/internal/app"
)

func InitMainHandler(path app.ConfigPath, env app.DotEnvPath) (*MainHandler, func(), error) {
	wire.Build(
		app.CoreSet,
		NewMainHandler,
	)
	return nil, nil, nil // wire will generate the result
}
