package mqtt

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	mqttIface "github.com/tetragramaton/gasflow-go/internal/interface/mqtt"
)

type mqttClient struct {
	mqttIface.API
	context.Context
}

type Config struct {
	BrokerURL string `yaml:"broker_url"` // e.g., "tcp://mqtt:1883"
	ClientID  string `yaml:"client_id"`
	Username  string `yaml:"username"`
	Password  string `yaml:"password"`
	TLS       bool   `yaml:"tls"`
}

// Options builds the paho options for cfg. will, when non-nil, is
// registered as the last will.
func Options(cfg Config, will *mqttIface.Message) *mqtt.ClientOptions {
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.BrokerURL).
		SetClientID(cfg.ClientID).
		SetKeepAlive(30 * time.Second).
		SetConnectTimeout(5 * time.Second).
		SetPingTimeout(3 * time.Second).
		SetAutoReconnect(true).
		SetOrderMatters(false)

	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}
	if cfg.TLS {
		opts.SetTLSConfig(&tls.Config{InsecureSkipVerify: true})
	}
	if will != nil {
		opts.SetBinaryWill(will.Topic, will.Payload, will.QoS, will.Retain)
	}
	return opts
}

func NewClient(cfg Config, will *mqttIface.Message) (mqttIface.Client, error) {
	if cfg.BrokerURL == "" {
		return nil, errors.New("mqtt: missing broker url")
	}

	client := mqtt.NewClient(Options(cfg, will))
	t := client.Connect()
	if ok := t.WaitTimeout(10 * time.Second); !ok {
		return nil, fmt.Errorf("mqtt: connect %s: timed out", cfg.BrokerURL)
	}
	if err := t.Error(); err != nil {
		return nil, fmt.Errorf("mqtt: connect %s: %w", cfg.BrokerURL, err)
	}
	return &mqttClient{
		API:     client,
		Context: context.Background(),
	}, nil
}

func (c mqttClient) PublishEvent(message mqttIface.Message) error {
	t := c.API.Publish(message.Topic, message.QoS, message.Retain, message.Payload)
	t.Wait()
	return t.Error()
}

func (c mqttClient) SubscribeToTopic(sub mqttIface.Subscription) error {
	t := c.API.Subscribe(sub.Topic, sub.QoS, sub.Callback)
	t.Wait()
	return t.Error()
}

func (c mqttClient) Close(quiesce uint) error {
	if c.IsConnectionOpen() {
		c.Disconnect(quiesce)
	}
	return nil
}
