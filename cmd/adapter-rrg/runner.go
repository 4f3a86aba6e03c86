package main

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/tetragramaton/gasflow-go/internal/bridge"
)

// FlowAdapter bridges one flow regulator to MQTT.
type FlowAdapter struct {
	Bridge *bridge.FlowBridge
	Log    *logrus.Logger
}

func NewFlowAdapter(b *bridge.FlowBridge, log *logrus.Logger) *FlowAdapter {
	return &FlowAdapter{Bridge: b, Log: log}
}

// Handle announces the device, marks it online, accepts commands and
// publishes the flow until ctx is done. The status goes back to offline on
// the way out. Cancellation is a clean stop.
func (a *FlowAdapter) Handle(ctx context.Context) error {
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
	a.Log.WithField("topic", a.Bridge.Topics().Base()).Info("rrg adapter up")

	err := a.Bridge.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
