package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
		t.Fatalf("write %s: %v", p, err)
	}
	return p
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.RRG.BaudRate != 38400 || cfg.RRG.SlaveID != 1 || cfg.RRG.TimeoutMs != 50 {
		t.Fatalf("rrg defaults: %+v", cfg.RRG)
	}
	if cfg.Relay.BaudRate != 115200 || cfg.Relay.SlaveID != 6 || cfg.Relay.TimeoutMs != 10 {
		t.Fatalf("relay defaults: %+v", cfg.Relay)
	}
	if cfg.Bridge.TopicPrefix != "gasflow" || cfg.Bridge.IntervalMs != 1000 {
		t.Fatalf("bridge defaults: %+v", cfg.Bridge)
	}
	if cfg.Transport.Backend != "goburrow" {
		t.Fatalf("backend=%q", cfg.Transport.Backend)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	p := writeFile(t, "gasflow.yaml", `
log:
  level: DEBUG
  format: json
transport:
  backend: SimonVetter
  rs485:
    enabled: true
    delay_rts_before_send_ms: 2
rrg:
  port: /dev/ttyUSB0
  slave_id: 0
relay:
  port: /dev/ttyUSB1
  timeout_ms: 25
mqtt:
  broker_url: tcp://broker:1883
bridge:
  topic_prefix: /lab/
  device_id: rrg-1
  max_setpoint: 500
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Transport.Backend != "simonvetter" || !cfg.Transport.RS485.Enabled || cfg.Transport.RS485.DelayRtsBeforeSendMs != 2 {
		t.Fatalf("transport: %+v", cfg.Transport)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Fatalf("log: %+v", cfg.Log)
	}
	// explicit slave 0 survives, the rest keeps defaults
	if cfg.RRG.Port != "/dev/ttyUSB0" || cfg.RRG.SlaveID != 0 || cfg.RRG.BaudRate != 38400 {
		t.Fatalf("rrg: %+v", cfg.RRG)
	}
	if cfg.Relay.TimeoutMs != 25 || cfg.Relay.SlaveID != 6 {
		t.Fatalf("relay: %+v", cfg.Relay)
	}
	if cfg.Bridge.TopicPrefix != "lab" || cfg.MQTT.ClientID != "lab-rrg-1" || cfg.Bridge.MaxSetpoint != 500 {
		t.Fatalf("bridge: %+v mqtt: %+v", cfg.Bridge, cfg.MQTT)
	}
	if err := Validate(cfg, DeviceRRG, DeviceRelay); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestLoad_RejectsUnknownField(t *testing.T) {
	p := writeFile(t, "bad.yaml", "rrg:\n  baud: 9600\n")
	if _, err := Load(p); err == nil {
		t.Fatalf("expected error for unknown field")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil || !strings.HasPrefix(err.Error(), "config: read") {
		t.Fatalf("got %v", err)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("MQTT_URL", "ssl://cloud:8883")
	t.Setenv("MQTT_CLIENT_ID", "bench")
	t.Setenv("MQTT_USERNAME", "u")
	t.Setenv("MQTT_PASSWORD", "p")
	t.Setenv("MQTT_TLS", "true")
	t.Setenv("RRG_PORT", "/dev/ttyS3")
	t.Setenv("RELAY_PORT", "/dev/ttyS4")
	t.Setenv("MODBUS_BACKEND", "simonvetter")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("DEVICE_ID", "bench-1")
	t.Setenv("INTERVAL_MS", "250")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.MQTT.BrokerURL != "ssl://cloud:8883" || cfg.MQTT.ClientID != "bench" || !cfg.MQTT.TLS ||
		cfg.MQTT.Username != "u" || cfg.MQTT.Password != "p" {
		t.Fatalf("mqtt: %+v", cfg.MQTT)
	}
	if cfg.RRG.Port != "/dev/ttyS3" || cfg.Relay.Port != "/dev/ttyS4" {
		t.Fatalf("ports: %q %q", cfg.RRG.Port, cfg.Relay.Port)
	}
	if cfg.Transport.Backend != "simonvetter" || cfg.Log.Level != "warn" {
		t.Fatalf("backend/log: %q %q", cfg.Transport.Backend, cfg.Log.Level)
	}
	if cfg.Bridge.DeviceID != "bench-1" || cfg.Bridge.IntervalMs != 250 {
		t.Fatalf("bridge: %+v", cfg.Bridge)
	}
}

func TestLoad_BadEnv(t *testing.T) {
	t.Setenv("INTERVAL_MS", "fast")
	if _, err := Load(""); err == nil {
		t.Fatalf("expected error for INTERVAL_MS")
	}
	t.Setenv("INTERVAL_MS", "")
	t.Setenv("MQTT_TLS", "maybe")
	if _, err := Load(""); err == nil {
		t.Fatalf("expected error for MQTT_TLS")
	}
}

func TestLoadDotEnv(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), ".env")); err != nil {
		t.Fatalf("missing .env should be ignored: %v", err)
	}

	const key = "GASFLOW_DOTENV_PROBE"
	p := writeFile(t, ".env", key+"=from-file\n")
	t.Cleanup(func() { os.Unsetenv(key) })
	if err := LoadDotEnv(p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := os.Getenv(key); got != "from-file" {
		t.Fatalf("%s=%q", key, got)
	}
}
