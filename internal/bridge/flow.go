package bridge

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	mq "github.com/eclipse/paho.mqtt.golang"
	"github.com/sirupsen/logrus"

	"github.com/tetragramaton/gasflow-go/internal/config"
	mqttIface "github.com/tetragramaton/gasflow-go/internal/interface/mqtt"
)

// FlowRegulator is the driver surface the flow bridge uses; *rrg.Handle
// satisfies it.
type FlowRegulator interface {
	SetFlow(sccm float64) error
	GetFlow() (float64, error)
	SetGas(gasID int) error
	IsOpen() bool
}

type FlowBridge struct {
	base
	dev FlowRegulator
}

func NewFlowBridge(pub mqttIface.Publisher, dev FlowRegulator, cfg config.BridgeConfig, log logrus.FieldLogger) *FlowBridge {
	return &FlowBridge{base: newBase(pub, cfg, log), dev: dev}
}

func (b *FlowBridge) Announce() error {
	return b.announce([]string{CapFlow, CapSetpoint, CapGas})
}

// Online publishes the retained availability: online while the regulator
// connection is open.
func (b *FlowBridge) Online() error {
	return b.publishStatus(b.dev.IsOpen())
}

// Offline marks the device unavailable, e.g. on shutdown.
func (b *FlowBridge) Offline() error {
	return b.publishStatus(false)
}

// PublishOnce reads the measured flow and publishes it. A failed read goes
// to the error topic instead.
func (b *FlowBridge) PublishOnce(now time.Time) {
	ts := now.Unix()
	v, err := b.dev.GetFlow()
	if err != nil {
		b.publishError(ts, "get flow", err)
		return
	}
	state := SensorState{
		Ts:    ts,
		Cap:   CapFlow,
		Unit:  "SCCM",
		Value: round(v, 3),
	}
	if err := b.publish(b.topics.State(), state, false); err != nil {
		b.log.WithError(err).Error("publish state")
	}
}

// Subscribe registers the /set/flow and /set/gas command handlers.
func (b *FlowBridge) Subscribe() error {
	subs := []struct {
		what string
		fn   func([]byte) error
	}{
		{"flow", b.HandleSetFlow},
		{"gas", b.HandleSetGas},
	}
	for _, s := range subs {
		fn := s.fn
		topic := b.topics.Set(s.what)
		err := b.pub.SubscribeToTopic(mqttIface.Subscription{
			Topic: topic,
			QoS:   1,
			Callback: func(_ mq.Client, m mq.Message) {
				if err := fn(m.Payload()); err != nil {
					b.log.WithError(err).WithField("topic", m.Topic()).Warn("command rejected")
				}
			},
		})
		if err != nil {
			return fmt.Errorf("bridge: subscribe %s: %w", topic, err)
		}
	}
	return nil
}

// HandleSetFlow applies a decimal SCCM setpoint. Negative values and values
// above the configured maximum never reach the device.
func (b *FlowBridge) HandleSetFlow(payload []byte) error {
	s := strings.TrimSpace(string(payload))
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("bridge: bad setpoint %q: %w", s, err)
	}
	if v < 0 || (b.cfg.MaxSetpoint > 0 && v > b.cfg.MaxSetpoint) {
		return fmt.Errorf("bridge: setpoint %v outside 0..%v", v, b.cfg.MaxSetpoint)
	}
	if err := b.dev.SetFlow(v); err != nil {
		b.publishError(b.now().Unix(), "set flow", err)
		return err
	}
	b.log.WithField("sccm", v).Info("setpoint applied")
	return nil
}

func (b *FlowBridge) HandleSetGas(payload []byte) error {
	s := strings.TrimSpace(string(payload))
	id, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("bridge: bad gas id %q: %w", s, err)
	}
	if err := b.dev.SetGas(id); err != nil {
		b.publishError(b.now().Unix(), "set gas", err)
		return err
	}
	b.log.WithField("gas_id", id).Info("gas selected")
	return nil
}

// Run publishes the flow every interval until ctx is done.
func (b *FlowBridge) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Duration(b.cfg.IntervalMs) * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case t := <-ticker.C:
			b.PublishOnce(t)
		}
	}
}
