package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	clientMqtt "github.com/tetragramaton/gasflow-go/internal/client/mqtt"
	"github.com/tetragramaton/gasflow-go/pkg/relay"
	"github.com/tetragramaton/gasflow-go/pkg/rrg"
)

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Log:       LogConfig{Level: "info", Format: "text"},
		Transport: TransportConfig{Backend: "goburrow"},
		RRG:       rrg.DefaultConfig(""),
		Relay:     relay.DefaultConfig(""),
		MQTT:      clientMqtt.Config{BrokerURL: "tcp://localhost:1883"},
		Bridge: BridgeConfig{
			TopicPrefix: "gasflow",
			Area:        "lab",
			IntervalMs:  1000,
		},
	}
}

// Load reads path over the defaults, applies the environment and then
// normalizes. An empty path skips the file. Validation is left to the caller
// since each binary needs a different set of devices.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		dec := yaml.NewDecoder(bytes.NewReader(raw))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	if err := ApplyEnv(&cfg); err != nil {
		return nil, err
	}
	Normalize(&cfg)
	return &cfg, nil
}

// LoadDotEnv loads a .env file into the process environment. A missing file
// is not an error; variables already set win.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides cfg with the environment variables that are set.
func ApplyEnv(cfg *Config) error {
	cfg.MQTT.BrokerURL = getEnvDefault("MQTT_URL", cfg.MQTT.BrokerURL)
	cfg.MQTT.ClientID = getEnvDefault("MQTT_CLIENT_ID", cfg.MQTT.ClientID)
	cfg.MQTT.Username = getEnvDefault("MQTT_USERNAME", cfg.MQTT.Username)
	cfg.MQTT.Password = getEnvDefault("MQTT_PASSWORD", cfg.MQTT.Password)
	if v := os.Getenv("MQTT_TLS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: invalid MQTT_TLS %q: %w", v, err)
		}
		cfg.MQTT.TLS = b
	}

	cfg.RRG.Port = getEnvDefault("RRG_PORT", cfg.RRG.Port)
	cfg.Relay.Port = getEnvDefault("RELAY_PORT", cfg.Relay.Port)
	cfg.Transport.Backend = getEnvDefault("MODBUS_BACKEND", cfg.Transport.Backend)
	cfg.Log.Level = getEnvDefault("LOG_LEVEL", cfg.Log.Level)
	cfg.Bridge.DeviceID = getEnvDefault("DEVICE_ID", cfg.Bridge.DeviceID)

	if v := os.Getenv("INTERVAL_MS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: invalid INTERVAL_MS %q: %w", v, err)
		}
		cfg.Bridge.IntervalMs = n
	}
	return nil
}

func getEnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
