package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/tetragramaton/gasflow-go/internal/app"
)

func main() {
	cfgPath := flag.String("config", os.Getenv("GASFLOW_CONFIG"), "path to YAML config")
	envPath := flag.String("env", ".env", "optional .env file")
	flag.Parse()

	adapter, cleanup, err := InitFlowAdapter(app.ConfigPath(*cfgPath), app.DotEnvPath(*envPath))
	if err != nil {
		logrus.Fatal(err)
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := adapter.Handle(ctx); err != nil {
		adapter.Log.WithError(err).Error("adapter stopped")
		return
	}
	adapter.Log.Info("adapter stopped")
}
