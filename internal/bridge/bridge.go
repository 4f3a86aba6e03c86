// Package bridge publishes device state to MQTT and turns MQTT commands into
// driver calls.
package bridge

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tetragramaton/gasflow-go/internal/config"
	mqttIface "github.com/tetragramaton/gasflow-go/internal/interface/mqtt"
	"github.com/tetragramaton/gasflow-go/pkg/device"
)

// Capabilities announced in Meta.Caps.
const (
	CapFlow     = "sensor.flow"
	CapSetpoint = "number.setpoint"
	CapGas      = "select.gas"
	CapSwitch   = "switch.relay"
)

// Availability payloads on the status topic.
const (
	StatusOnline  = "online"
	StatusOffline = "offline"
)

type Meta struct {
	DeviceID string   `json:"device_id"`
	Model    string   `json:"model,omitempty"`
	Area     string   `json:"area,omitempty"`
	Caps     []string `json:"caps"`
}

type SensorState struct {
	Ts    int64    `json:"ts"`
	Cap   string   `json:"cap"`
	Unit  string   `json:"unit,omitempty"`
	Value *float64 `json:"value,omitempty"`
}

type SwitchState struct {
	Ts    int64  `json:"ts"`
	Cap   string `json:"cap"`
	State string `json:"state"`
}

type ErrorEvent struct {
	Ts      int64  `json:"ts"`
	Op      string `json:"op"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Topics lays out <prefix>/<device_id>/... for one device.
type Topics struct {
	Prefix   string
	DeviceID string
}

func (t Topics) Base() string  { return t.Prefix + "/" + t.DeviceID }
func (t Topics) Meta() string  { return t.Base() + "/meta" }
func (t Topics) State() string { return t.Base() + "/state" }
func (t Topics) Error() string { return t.Base() + "/error" }

// Status carries the retained online/offline availability. The MQTT last
// will points here too.
func (t Topics) Status() string { return t.Base() + "/status" }

// Set is the command topic for one settable value, e.g. "flow".
func (t Topics) Set(what string) string { return t.Base() + "/set/" + what }

// MetaWildcard matches the meta topic of every device under prefix.
func MetaWildcard(prefix string) string { return prefix + "/+/meta" }

// base carries what both bridges share.
type base struct {
	pub    mqttIface.Publisher
	cfg    config.BridgeConfig
	topics Topics
	log    logrus.FieldLogger
	now    func() time.Time
}

func newBase(pub mqttIface.Publisher, cfg config.BridgeConfig, log logrus.FieldLogger) base {
	if log == nil {
		log = device.DiscardLogger()
	}
	return base{
		pub:    pub,
		cfg:    cfg,
		topics: Topics{Prefix: cfg.TopicPrefix, DeviceID: cfg.DeviceID},
		log:    log.WithField("device_id", cfg.DeviceID),
		now:    time.Now,
	}
}

func (b *base) Topics() Topics { return b.topics }

func (b *base) announce(caps []string) error {
	meta := Meta{
		DeviceID: b.cfg.DeviceID,
		Model:    b.cfg.Model,
		Area:     b.cfg.Area,
		Caps:     caps,
	}
	if err := b.publish(b.topics.Meta(), meta, true); err != nil {
		return fmt.Errorf("bridge: announce: %w", err)
	}
	return nil
}

// publishStatus writes the retained availability as a bare string.
func (b *base) publishStatus(online bool) error {
	status := StatusOffline
	if online {
		status = StatusOnline
	}
	err := b.pub.PublishEvent(mqttIface.Message{
		Topic:   b.topics.Status(),
		Payload: []byte(status),
		QoS:     1,
		Retain:  true,
	})
	if err != nil {
		return fmt.Errorf("bridge: publish status: %w", err)
	}
	b.log.WithField("status", status).Debug("availability published")
	return nil
}

func (b *base) publish(topic string, payload any, retain bool) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}
	return b.pub.PublishEvent(mqttIface.Message{
		Topic:   topic,
		Payload: data,
		QoS:     1,
		Retain:  retain,
	})
}

// publishError reports a failed driver call on the error topic. The message
// comes from err, never from the handle's shared last-error slot.
func (b *base) publishError(ts int64, op string, err error) {
	ev := ErrorEvent{Ts: ts, Op: op, Message: device.KindOf(err).Message()}
	var de *device.Error
	if errors.As(err, &de) {
		ev.Code = de.ErrorCode()
	}
	b.log.WithError(err).WithField("op", op).Warn("device operation failed")
	if perr := b.publish(b.topics.Error(), ev, false); perr != nil {
		b.log.WithError(perr).Error("publish error event")
	}
}

func round(v float64, prec int) *float64 {
	p := math.Pow(10, float64(prec))
	r := math.Round(v*p) / p
	return &r
}
