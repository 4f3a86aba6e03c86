package app

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	clientMqtt "github.com/tetragramaton/gasflow-go/internal/client/mqtt"
	"github.com/tetragramaton/gasflow-go/internal/config"
	"github.com/tetragramaton/gasflow-go/pkg/modbustest"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestProvideConfig(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "gasflow.yaml")
	if err := os.WriteFile(p, []byte("rrg:\n  port: /dev/ttyUSB0\nbridge:\n  device_id: rrg-7\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := ProvideConfig(ConfigPath(p), DotEnvPath(filepath.Join(dir, "missing.env")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.RRG.Port != "/dev/ttyUSB0" || cfg.Bridge.DeviceID != "rrg-7" {
		t.Fatalf("unexpected config: %+v", cfg)
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("transport:\n  backend: serialport\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := ProvideConfig(ConfigPath(bad), ""); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestRTUOptions(t *testing.T) {
	o := RTUOptions(config.TransportConfig{
		Trace: true,
		RS485: config.RS485Config{Enabled: true, DelayRtsBeforeSendMs: 3, RxDuringTx: true},
	}, quietLogger())
	if !o.Trace || !o.RS485.Enabled || o.RS485.DelayRtsBeforeSend != 3*time.Millisecond || !o.RS485.RxDuringTx {
		t.Fatalf("unexpected options: %+v", o)
	}
}

func TestProvideRRG(t *testing.T) {
	cfg := config.Default()
	config.Normalize(&cfg)

	if _, _, err := ProvideRRG(&cfg, modbustest.New(), quietLogger()); err == nil {
		t.Fatalf("expected error for empty port")
	}

	cfg.RRG.Port = "/dev/fake0"
	tr := modbustest.New()
	h, cleanup, err := ProvideRRG(&cfg, tr, quietLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := h.SetGas(3); err != nil {
		t.Fatalf("SetGas err=%v", err)
	}
	cleanup()
	if !tr.Balanced() || tr.Closed != 1 {
		t.Fatalf("session not closed: created=%d released=%d closed=%d", tr.Created, tr.Released, tr.Closed)
	}
}

func TestProvideRelay_OpenFailure(t *testing.T) {
	cfg := config.Default()
	cfg.Relay.Port = "/dev/fake1"
	config.Normalize(&cfg)

	tr := modbustest.New().Fail(modbustest.StepConnect)
	if _, _, err := ProvideRelay(&cfg, tr, quietLogger()); err == nil {
		t.Fatalf("expected connect error")
	}
	if !tr.Balanced() {
		t.Fatalf("session leaked")
	}
}

func TestBridgeConfigDefaultsDeviceID(t *testing.T) {
	cfg := config.Default()
	if got := bridgeConfig(&cfg, "relay").DeviceID; got != "relay" {
		t.Fatalf("device id=%q", got)
	}
	cfg.Bridge.DeviceID = "bench"
	if got := bridgeConfig(&cfg, "relay").DeviceID; got != "bench" {
		t.Fatalf("device id=%q", got)
	}
}

func TestLastWill_RetainedOfflineOnStatus(t *testing.T) {
	cfg := config.Default()
	cfg.Bridge.TopicPrefix = "gasflow"

	w := LastWill(bridgeConfig(&cfg, "rrg"))
	if w.Topic != "gasflow/rrg/status" || string(w.Payload) != "offline" || !w.Retain || w.QoS != 1 {
		t.Fatalf("unexpected will: %+v", w)
	}

	opts := clientMqtt.Options(cfg.MQTT, w)
	if !opts.WillEnabled || !opts.WillRetained || opts.WillTopic != "gasflow/rrg/status" ||
		string(opts.WillPayload) != "offline" || opts.WillQos != 1 {
		t.Fatalf("will not carried into client options: enabled=%v retained=%v topic=%s payload=%s",
			opts.WillEnabled, opts.WillRetained, opts.WillTopic, opts.WillPayload)
	}

	cfg.Bridge.DeviceID = "bench-relay"
	if w := LastWill(bridgeConfig(&cfg, "relay")); w.Topic != "gasflow/bench-relay/status" {
		t.Fatalf("will topic=%s", w.Topic)
	}
}
