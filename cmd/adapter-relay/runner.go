package main

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/tetragramaton/gasflow-go/internal/bridge"
)

// RelayAdapter exposes one relay as an MQTT switch.
type RelayAdapter struct {
	Bridge *bridge.RelayBridge
	Log    *logrus.Logger
}

func NewRelayAdapter(b *bridge.RelayBridge, log *logrus.Logger) *RelayAdapter {
	return &RelayAdapter{Bridge: b, Log: log}
}

func (a *RelayAdapter) Handle(ctx context.Context) error {
	if err := a.Bridge.Announce(); err != nil {
		a.Log.WithError(err).Warn("meta publish")
	}
	if err := a.Bridge.Online(); err != nil {
		a.Log.WithError(err).Warn("status publish")
	}
	defer func() {
		if err := a.Bridge.Offline(); err != nil {
			a.Log.WithError(err).Warn("status publish")
		}
	}()
	if err := a.Bridge.Subscribe(); err != nil {
		return err
	}
	a.Log.WithField("topic", a.Bridge.Topics().Base()).Info("relay adapter up")

	err := a.Bridge.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
