// Package config loads the adapter configuration from YAML, an optional
// .env file and the environment.
package config

import (
	clientMqtt "github.com/tetragramaton/gasflow-go/internal/client/mqtt"
	"github.com/tetragramaton/gasflow-go/pkg/device"
)

type Config struct {
	Log       LogConfig         `yaml:"log"`
	Transport TransportConfig   `yaml:"transport"`
	RRG       device.Config     `yaml:"rrg"`
	Relay     device.Config     `yaml:"relay"`
	MQTT      clientMqtt.Config `yaml:"mqtt"`
	Bridge    BridgeConfig      `yaml:"bridge"`
}

// ---- LOG ----

type LogConfig struct {
	Level  string `yaml:"level"`  // logrus level name
	Format string `yaml:"format"` // "text" or "json"
}

// ---- TRANSPORT ----

type TransportConfig struct {
	Backend string      `yaml:"backend"` // "goburrow" or "simonvetter"
	Trace   bool        `yaml:"trace"`
	RS485   RS485Config `yaml:"rs485"`
}

// RS485Config mirrors the RTS control of goburrow/serial.
type RS485Config struct {
	Enabled              bool `yaml:"enabled"`
	DelayRtsBeforeSendMs int  `yaml:"delay_rts_before_send_ms"`
	DelayRtsAfterSendMs  int  `yaml:"delay_rts_after_send_ms"`
	RtsHighDuringSend    bool `yaml:"rts_high_during_send"`
	RtsHighAfterSend     bool `yaml:"rts_high_after_send"`
	RxDuringTx           bool `yaml:"rx_during_tx"`
}

// ---- BRIDGE ----

type BridgeConfig struct {
	TopicPrefix string `yaml:"topic_prefix"`
	DeviceID    string `yaml:"device_id"`
	Model       string `yaml:"model"`
	Area        string `yaml:"area"`
	IntervalMs  int    `yaml:"interval_ms"`
	// MaxSetpoint bounds /set/flow commands; zero disables the upper bound.
	MaxSetpoint float64 `yaml:"max_setpoint"`
}

// Device names accepted by Validate.
const (
	DeviceRRG   = "rrg"
	DeviceRelay = "relay"
)
