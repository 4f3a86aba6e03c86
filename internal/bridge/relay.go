package bridge

import (
	"context"
	"fmt"
	"strings"

	mq "github.com/eclipse/paho.mqtt.golang"
	"github.com/sirupsen/logrus"

	"github.com/tetragramaton/gasflow-go/internal/config"
	mqttIface "github.com/tetragramaton/gasflow-go/internal/interface/mqtt"
)

// Switch is the driver surface the relay bridge uses; *relay.Handle
// satisfies it.
type Switch interface {
	Set(on bool) error
	IsOpen() bool
}

type RelayBridge struct {
	base
	dev Switch
}

func NewRelayBridge(pub mqttIface.Publisher, dev Switch, cfg config.BridgeConfig, log logrus.FieldLogger) *RelayBridge {
	return &RelayBridge{base: newBase(pub, cfg, log), dev: dev}
}

func (b *RelayBridge) Announce() error {
	return b.announce([]string{CapSwitch})
}

// Online publishes the retained availability: online while the relay
// connection is open.
func (b *RelayBridge) Online() error {
	return b.publishStatus(b.dev.IsOpen())
}

func (b *RelayBridge) Offline() error {
	return b.publishStatus(false)
}

func (b *RelayBridge) Subscribe() error {
	topic := b.topics.Set("switch")
	err := b.pub.SubscribeToTopic(mqttIface.Subscription{
		Topic: topic,
		QoS:   1,
		Callback: func(_ mq.Client, m mq.Message) {
			if err := b.HandleSetSwitch(m.Payload()); err != nil {
				b.log.WithError(err).WithField("topic", m.Topic()).Warn("command rejected")
			}
		},
	})
	if err != nil {
		return fmt.Errorf("bridge: subscribe %s: %w", topic, err)
	}
	return nil
}

// HandleSetSwitch accepts ON/OFF in any case, or 1/0. The new state is
// published retained once the device acknowledged it.
func (b *RelayBridge) HandleSetSwitch(payload []byte) error {
	on, err := ParseSwitch(payload)
	if err != nil {
		return err
	}
	ts := b.now().Unix()
	if err := b.dev.Set(on); err != nil {
		b.publishError(ts, "set switch", err)
		return err
	}
	state := SwitchState{Ts: ts, Cap: CapSwitch, State: onOff(on)}
	if err := b.publish(b.topics.State(), state, true); err != nil {
		return fmt.Errorf("bridge: publish state: %w", err)
	}
	b.log.WithField("state", state.State).Info("relay switched")
	return nil
}

// Run has nothing to poll; the relay state is not readable. It blocks until
// ctx is done.
func (b *RelayBridge) Run(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

func ParseSwitch(payload []byte) (bool, error) {
	switch strings.ToUpper(strings.TrimSpace(string(payload))) {
	case "ON", "1":
		return true, nil
	case "OFF", "0":
		return false, nil
	default:
		return false, fmt.Errorf("bridge: bad switch payload %q", payload)
	}
}

func onOff(on bool) string {
	if on {
		return "ON"
	}
	return "OFF"
}
