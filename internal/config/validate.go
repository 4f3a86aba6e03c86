package config

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/tetragramaton/gasflow-go/pkg/device"
)

// Validate checks the shared sections and the named devices.
// It MUST NOT mutate configuration.
func Validate(cfg *Config, devices ...string) error {
	if cfg == nil {
		return errors.New("config: nil config")
	}

	switch cfg.Transport.Backend {
	case "goburrow", "simonvetter":
	default:
		return fmt.Errorf("config: transport.backend %q is not supported", cfg.Transport.Backend)
	}

	if cfg.Log.Level != "" {
		if _, err := logrus.ParseLevel(cfg.Log.Level); err != nil {
			return fmt.Errorf("config: log.level: %w", err)
		}
	}
	switch cfg.Log.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("config: log.format %q must be text or json", cfg.Log.Format)
	}

	if cfg.MQTT.BrokerURL == "" {
		return errors.New("config: mqtt.broker_url is empty")
	}
	if cfg.Bridge.IntervalMs <= 0 {
		return fmt.Errorf("config: bridge.interval_ms must be positive, got %d", cfg.Bridge.IntervalMs)
	}
	if cfg.Bridge.MaxSetpoint < 0 {
		return fmt.Errorf("config: bridge.max_setpoint must not be negative, got %v", cfg.Bridge.MaxSetpoint)
	}

	for _, name := range devices {
		var d device.Config
		switch name {
		case DeviceRRG:
			d = cfg.RRG
		case DeviceRelay:
			d = cfg.Relay
		default:
			return fmt.Errorf("config: unknown device %q", name)
		}
		if err := validateDevice(name, d); err != nil {
			return err
		}
	}
	return nil
}

func validateDevice(name string, d device.Config) error {
	if d.Port == "" {
		return fmt.Errorf("config: %s.port is empty", name)
	}
	if d.BaudRate <= 0 {
		return fmt.Errorf("config: %s.baud_rate must be positive, got %d", name, d.BaudRate)
	}
	if d.TimeoutMs <= 0 {
		return fmt.Errorf("config: %s.timeout_ms must be positive, got %d", name, d.TimeoutMs)
	}
	if d.SlaveID < 0 || d.SlaveID > 247 {
		return fmt.Errorf("config: %s.slave_id %d outside 0..247", name, d.SlaveID)
	}
	return nil
}
