package ha

import (
	"encoding/json"
	"fmt"

	mq "github.com/eclipse/paho.mqtt.golang"
	"github.com/sirupsen/logrus"

	"github.com/tetragramaton/gasflow-go/internal/bridge"
	mqttIface "github.com/tetragramaton/gasflow-go/internal/interface/mqtt"
	"github.com/tetragramaton/gasflow-go/pkg/device"
)

// Announcer turns device meta messages into retained discovery configs.
type Announcer struct {
	pub  mqttIface.Publisher
	opts Options
	log  logrus.FieldLogger
}

func NewAnnouncer(pub mqttIface.Publisher, opts Options, log logrus.FieldLogger) *Announcer {
	if log == nil {
		log = device.DiscardLogger()
	}
	return &Announcer{pub: pub, opts: opts, log: log}
}

// Subscribe listens on <prefix>/+/meta.
func (a *Announcer) Subscribe() error {
	topic := bridge.MetaWildcard(a.opts.Prefix)
	err := a.pub.SubscribeToTopic(mqttIface.Subscription{
		Topic: topic,
		QoS:   1,
		Callback: func(_ mq.Client, m mq.Message) {
			if err := a.HandleMeta(m.Payload()); err != nil {
				a.log.WithError(err).WithField("topic", m.Topic()).Warn("bad meta")
			}
		},
	})
	if err != nil {
		return fmt.Errorf("ha: subscribe %s: %w", topic, err)
	}
	return nil
}

func (a *Announcer) HandleMeta(payload []byte) error {
	var meta bridge.Meta
	if err := json.Unmarshal(payload, &meta); err != nil {
		return fmt.Errorf("ha: decode meta: %w", err)
	}
	if meta.DeviceID == "" {
		return fmt.Errorf("ha: meta without device_id")
	}
	return a.Publish(meta)
}

// Publish sends every entity for meta. It keeps going past failures and
// returns the first one.
func (a *Announcer) Publish(meta bridge.Meta) error {
	var first error
	for _, e := range Entities(meta, a.opts) {
		b, err := e.Config.Marshal()
		if err == nil {
			err = a.pub.PublishEvent(mqttIface.Message{
				Topic:   e.Topic,
				Payload: b,
				QoS:     1,
				Retain:  true,
			})
		}
		if err != nil {
			a.log.WithError(err).WithField("topic", e.Topic).Error("publish cfg")
			if first == nil {
				first = err
			}
		}
	}
	a.log.WithFields(logrus.Fields{"device_id": meta.DeviceID, "caps": meta.Caps}).Info("HA discovery published")
	return first
}
