// Package app holds the wire providers shared by the binaries.
package app

import (
	"fmt"
	"time"

	"github.com/goburrow/serial"
	"github.com/google/wire"
	"github.com/sirupsen/logrus"

	"github.com/tetragramaton/gasflow-go/internal/bridge"
	clientModbus "github.com/tetragramaton/gasflow-go/internal/client/modbus"
	clientMqtt "github.com/tetragramaton/gasflow-go/internal/client/mqtt"
	"github.com/tetragramaton/gasflow-go/internal/config"
	"github.com/tetragramaton/gasflow-go/internal/ha"
	modbusIface "github.com/tetragramaton/gasflow-go/internal/interface/modbus"
	mqttIface "github.com/tetragramaton/gasflow-go/internal/interface/mqtt"
	"github.com/tetragramaton/gasflow-go/internal/logging"
	"github.com/tetragramaton/gasflow-go/pkg/device"
	"github.com/tetragramaton/gasflow-go/pkg/relay"
	"github.com/tetragramaton/gasflow-go/pkg/rrg"
)

// ConfigPath is the YAML file to load; empty means defaults and env only.
type ConfigPath string

// DotEnvPath is the optional .env file.
type DotEnvPath string

var BaseSet = wire.NewSet(ProvideConfig, ProvideLogger)

var FlowSet = wire.NewSet(
	BaseSet,
	ProvideTransport,
	ProvideFlowMQTTClient,
	ProvideRRG,
	ProvideFlowBridge,
	wire.Bind(new(bridge.FlowRegulator), new(*rrg.Handle)),
)

var RelaySet = wire.NewSet(
	BaseSet,
	ProvideTransport,
	ProvideRelayMQTTClient,
	ProvideRelay,
	ProvideRelayBridge,
	wire.Bind(new(bridge.Switch), new(*relay.Handle)),
)

var CoreSet = wire.NewSet(BaseSet, ProvideMQTTClient, ProvideAnnouncer)

func ProvideConfig(path ConfigPath, env DotEnvPath) (*config.Config, error) {
	if err := config.LoadDotEnv(string(env)); err != nil {
		return nil, err
	}
	cfg, err := config.Load(string(path))
	if err != nil {
		return nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func ProvideLogger(cfg *config.Config) (*logrus.Logger, error) {
	return logging.New(cfg.Log)
}

func ProvideTransport(cfg *config.Config, log *logrus.Logger) (modbusIface.Transport, error) {
	return clientModbus.NewTransport(cfg.Transport.Backend, RTUOptions(cfg.Transport, log))
}

// RTUOptions converts the YAML RS485 section into goburrow/serial terms.
func RTUOptions(t config.TransportConfig, log logrus.FieldLogger) clientModbus.RTUOptions {
	return clientModbus.RTUOptions{
		RS485: serial.RS485Config{
			Enabled:            t.RS485.Enabled,
			DelayRtsBeforeSend: time.Duration(t.RS485.DelayRtsBeforeSendMs) * time.Millisecond,
			DelayRtsAfterSend:  time.Duration(t.RS485.DelayRtsAfterSendMs) * time.Millisecond,
			RtsHighDuringSend:  t.RS485.RtsHighDuringSend,
			RtsHighAfterSend:   t.RS485.RtsHighAfterSend,
			RxDuringTx:         t.RS485.RxDuringTx,
		},
		Trace:  t.Trace,
		Logger: log,
	}
}

// ProvideMQTTClient connects without a last will; the core service owns no
// device.
func ProvideMQTTClient(cfg *config.Config) (mqttIface.Client, func(), error) {
	return newMQTTClient(cfg, nil)
}

// ProvideFlowMQTTClient connects with the regulator's offline will.
func ProvideFlowMQTTClient(cfg *config.Config) (mqttIface.Client, func(), error) {
	return newMQTTClient(cfg, LastWill(bridgeConfig(cfg, "rrg")))
}

// ProvideRelayMQTTClient connects with the relay's offline will.
func ProvideRelayMQTTClient(cfg *config.Config) (mqttIface.Client, func(), error) {
	return newMQTTClient(cfg, LastWill(bridgeConfig(cfg, "relay")))
}

// LastWill is a retained "offline" on the device status topic, matching what
// the bridge publishes on a clean shutdown.
func LastWill(b config.BridgeConfig) *mqttIface.Message {
	topics := bridge.Topics{Prefix: b.TopicPrefix, DeviceID: b.DeviceID}
	return &mqttIface.Message{
		Topic:   topics.Status(),
		Payload: []byte(bridge.StatusOffline),
		QoS:     1,
		Retain:  true,
	}
}

func newMQTTClient(cfg *config.Config, will *mqttIface.Message) (mqttIface.Client, func(), error) {
	c, err := clientMqtt.NewClient(cfg.MQTT, will)
	if err != nil {
		return nil, nil, err
	}
	return c, func() { _ = c.Close(250) }, nil
}

func ProvideRRG(cfg *config.Config, tr modbusIface.Transport, log *logrus.Logger) (*rrg.Handle, func(), error) {
	if err := config.Validate(cfg, config.DeviceRRG); err != nil {
		return nil, nil, err
	}
	h, err := rrg.Open(&cfg.RRG, device.WithTransport(tr), device.WithLogger(log))
	if err != nil {
		return nil, nil, fmt.Errorf("app: open rrg on %s: %w", cfg.RRG.Port, err)
	}
	return h, func() {
		if err := h.Close(); err != nil {
			log.WithError(err).Warn("rrg close")
		}
	}, nil
}

func ProvideRelay(cfg *config.Config, tr modbusIface.Transport, log *logrus.Logger) (*relay.Handle, func(), error) {
	if err := config.Validate(cfg, config.DeviceRelay); err != nil {
		return nil, nil, err
	}
	h, err := relay.Open(&cfg.Relay, device.WithTransport(tr), device.WithLogger(log))
	if err != nil {
		return nil, nil, fmt.Errorf("app: open relay on %s: %w", cfg.Relay.Port, err)
	}
	return h, func() {
		if err := h.Close(); err != nil {
			log.WithError(err).Warn("relay close")
		}
	}, nil
}

func ProvideFlowBridge(c mqttIface.Client, dev bridge.FlowRegulator, cfg *config.Config, log *logrus.Logger) *bridge.FlowBridge {
	return bridge.NewFlowBridge(c, dev, bridgeConfig(cfg, "rrg"), log)
}

func ProvideRelayBridge(c mqttIface.Client, dev bridge.Switch, cfg *config.Config, log *logrus.Logger) *bridge.RelayBridge {
	return bridge.NewRelayBridge(c, dev, bridgeConfig(cfg, "relay"), log)
}

func ProvideAnnouncer(c mqttIface.Client, cfg *config.Config, log *logrus.Logger) *ha.Announcer {
	return ha.NewAnnouncer(c, ha.Options{
		Prefix:      cfg.Bridge.TopicPrefix,
		MaxSetpoint: cfg.Bridge.MaxSetpoint,
	}, log)
}

// bridgeConfig defaults the device id to the driver name.
func bridgeConfig(cfg *config.Config, name string) config.BridgeConfig {
	b := cfg.Bridge
	if b.DeviceID == "" {
		b.DeviceID = name
	}
	return b
}
