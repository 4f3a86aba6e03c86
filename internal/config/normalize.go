package config

import (
	"strings"

	"github.com/tetragramaton/gasflow-go/pkg/device"
	"github.com/tetragramaton/gasflow-go/pkg/relay"
	"github.com/tetragramaton/gasflow-go/pkg/rrg"
)

// Normalize fills zero values with per-device defaults and canonicalizes
// names. It must run before Validate.
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	fillDevice(&cfg.RRG, rrg.DefaultConfig(cfg.RRG.Port))
	fillDevice(&cfg.Relay, relay.DefaultConfig(cfg.Relay.Port))

	cfg.Transport.Backend = strings.ToLower(strings.TrimSpace(cfg.Transport.Backend))
	if cfg.Transport.Backend == "" {
		cfg.Transport.Backend = "goburrow"
	}
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	cfg.Log.Format = strings.ToLower(strings.TrimSpace(cfg.Log.Format))

	cfg.Bridge.TopicPrefix = strings.Trim(cfg.Bridge.TopicPrefix, "/")
	if cfg.Bridge.TopicPrefix == "" {
		cfg.Bridge.TopicPrefix = "gasflow"
	}
	if cfg.MQTT.ClientID == "" && cfg.Bridge.DeviceID != "" {
		cfg.MQTT.ClientID = cfg.Bridge.TopicPrefix + "-" + cfg.Bridge.DeviceID
	}
}

// slave id 0 is a legal value and is left alone
func fillDevice(c *device.Config, def device.Config) {
	if c.BaudRate == 0 {
		c.BaudRate = def.BaudRate
	}
	if c.TimeoutMs == 0 {
		c.TimeoutMs = def.TimeoutMs
	}
}
