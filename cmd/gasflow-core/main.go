package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/tetragramaton/gasflow-go/internal/app"
	"github.com/tetragramaton/gasflow-go/internal/ha"
)

type MainHandler struct {
	Announcer *ha.Announcer
	Log       *logrus.Logger
}

func NewMainHandler(a *ha.Announcer, log *logrus.Logger) *MainHandler {
	return &MainHandler{Announcer: a, Log: log}
}

func main() {
	cfgPath := flag.String("config", os.Getenv("GASFLOW_CONFIG"), "path to YAML config")
	envPath := flag.String("env", ".env", "optional .env file")
	flag.Parse()

	handler, cleanup, err := InitMainHandler(app.ConfigPath(*cfgPath), app.DotEnvPath(*envPath))
	if err != nil {
		logrus.Fatal(err)
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := handler.Handle(ctx); err != nil {
		handler.Log.WithError(err).Error("subscribe")
	}
}

// Handle publishes discovery for every device meta until ctx is done.
func (h *MainHandler) Handle(ctx context.Context) error {
	if err := h.Announcer.Subscribe(); err != nil {
		return err
	}
	h.Log.Info("gasflow-core up; waiting for meta...")
	<-ctx.Done()
	return nil
}
