package config

import (
	"strings"
	"testing"
)

func valid() *Config {
	cfg := Default()
	cfg.RRG.Port = "/dev/ttyUSB0"
	cfg.Relay.Port = "/dev/ttyUSB1"
	Normalize(&cfg)
	return &cfg
}

func TestValidate_Defaults(t *testing.T) {
	if err := Validate(valid(), DeviceRRG, DeviceRelay); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_OnlyNamedDevices(t *testing.T) {
	cfg := valid()
	cfg.Relay.Port = ""
	if err := Validate(cfg, DeviceRRG); err != nil {
		t.Fatalf("relay should not be checked: %v", err)
	}
	if err := Validate(cfg, DeviceRelay); err == nil {
		t.Fatalf("expected empty relay port error")
	}
}

func TestValidate_Rejects(t *testing.T) {
	cases := []struct {
		name string
		mod  func(*Config)
		want string
	}{
		{"backend", func(c *Config) { c.Transport.Backend = "libmodbus" }, "transport.backend"},
		{"port", func(c *Config) { c.RRG.Port = "" }, "rrg.port"},
		{"baud", func(c *Config) { c.RRG.BaudRate = -1 }, "rrg.baud_rate"},
		{"timeout", func(c *Config) { c.Relay.TimeoutMs = 0 }, "relay.timeout_ms"},
		{"slave low", func(c *Config) { c.RRG.SlaveID = -1 }, "rrg.slave_id"},
		{"slave high", func(c *Config) { c.Relay.SlaveID = 248 }, "relay.slave_id"},
		{"broker", func(c *Config) { c.MQTT.BrokerURL = "" }, "mqtt.broker_url"},
		{"interval", func(c *Config) { c.Bridge.IntervalMs = 0 }, "bridge.interval_ms"},
		{"max setpoint", func(c *Config) { c.Bridge.MaxSetpoint = -5 }, "bridge.max_setpoint"},
		{"log level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"log format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mod(cfg)
			err := Validate(cfg, DeviceRRG, DeviceRelay)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("got %v, want error mentioning %q", err, tc.want)
			}
		})
	}
}

func TestValidate_UnknownDevice(t *testing.T) {
	if err := Validate(valid(), "pump"); err == nil {
		t.Fatalf("expected unknown device error")
	}
}

func TestValidate_SlaveBounds(t *testing.T) {
	for _, id := range []int{0, 247} {
		cfg := valid()
		cfg.RRG.SlaveID = id
		if err := Validate(cfg, DeviceRRG); err != nil {
			t.Fatalf("slave %d rejected: %v", id, err)
		}
	}
}

func TestNormalize_Nil(t *testing.T) {
	Normalize(nil)
	if err := Validate(nil); err == nil {
		t.Fatalf("expected nil config error")
	}
}
