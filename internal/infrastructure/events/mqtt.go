package events

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"mineral-catalog-service/internal/infrastructure/config"
	Logger "mineral-catalog-service/pkg/logger"
)

var ErrNotConnected = errors.New("mqtt client not connected")

const publishTimeout = 5 * time.Second

// MQTTPublisher sends events to <prefix>/<type> topics
type MQTTPublisher struct {
	Client      mqtt.Client
	TopicPrefix string
	QoS         byte
	BrokerURL   string
	MaxRetries  int

	connectMu sync.Mutex
}

// NewMQTTPublisher builds the client from config without connecting
func NewMQTTPublisher(cfg *config.Config) *MQTTPublisher {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.MQTTBrokerURL)
	// unique ID so several instances can share a broker
	opts.SetClientID(fmt.Sprintf("%s-%s", cfg.MQTTClientID, uuid.New().String()[:8]))
	opts.SetAutoReconnect(true)
	opts.SetMaxReconnectInterval(30 * time.Second)
	opts.SetKeepAlive(60 * time.Second)
	opts.SetPingTimeout(10 * time.Second)
	opts.SetCleanSession(true)

	if cfg.MQTTUsername != "" {
		opts.SetUsername(cfg.MQTTUsername)
		opts.SetPassword(cfg.MQTTPassword)
	}
	if strings.HasPrefix(cfg.MQTTBrokerURL, "ssl://") || strings.HasPrefix(cfg.MQTTBrokerURL, "tls://") {
		opts.SetTLSConfig(&tls.Config{MinVersion: tls.VersionTLS12})
	}

	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		Logger.Warning("[MQTT] connection lost: %v", err)
	})
	opts.SetOnConnectHandler(func(_ mqtt.Client) {
		Logger.Info("[MQTT] connected to %s", cfg.MQTTBrokerURL)
	})
	opts.SetReconnectingHandler(func(_ mqtt.Client, _ *mqtt.ClientOptions) {
		Logger.Info("[MQTT] reconnecting")
	})

	return &MQTTPublisher{
		Client:      mqtt.NewClient(opts),
		TopicPrefix: cfg.MQTTTopicPrefix,
		QoS:         byte(cfg.MQTTQoS),
		BrokerURL:   cfg.MQTTBrokerURL,
		MaxRetries:  5,
	}
}

// Connect dials the broker, retrying with exponential backoff (1s, 2s, 4s...)
func (p *MQTTPublisher) Connect(ctx context.Context) error {
	p.connectMu.Lock()
	defer p.connectMu.Unlock()

	if p.Client.IsConnected() {
		return nil
	}

	var err error
	for i := 0; i < p.MaxRetries; i++ {
		token := p.Client.Connect()
		if token.WaitTimeout(publishTimeout) && token.Error() == nil {
			return nil
		}
		err = token.Error()
		if err == nil {
			err = errors.New("connect timed out")
		}

		backoff := time.Duration(1<<uint(i)) * time.Second
		Logger.Warning("[MQTT] connect attempt %d/%d to %s failed: %v, retrying in %v", i+1, p.MaxRetries, p.BrokerURL, err, backoff)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}
	return fmt.Errorf("mqtt connect failed after %d attempts: %w", p.MaxRetries, err)
}

// Topic returns the topic an event type is published on
func (p *MQTTPublisher) Topic(t EventType) string {
	return p.TopicPrefix + "/" + string(t)
}

func (p *MQTTPublisher) Publish(ctx context.Context, event MineralEvent) error {
	if !p.Client.IsConnected() {
		return ErrNotConnected
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("publish to %s: %w", p.Topic(event.Type), err)
	}

	token := p.Client.Publish(p.Topic(event.Type), p.QoS, false, payload)
	timeout := publishTimeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = min(timeout, max(time.Until(deadline), 0))
	}
	if !token.WaitTimeout(timeout) {
		return fmt.Errorf("publish to %s timed out", p.Topic(event.Type))
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish to %s: %w", p.Topic(event.Type), err)
	}
	return nil
}

func (p *MQTTPublisher) Close() {
	if p.Client != nil && p.Client.IsConnected() {
		p.Client.Disconnect(250)
	}
}

// NewEvent stamps an event with an ID and the current time
func NewEvent(t EventType, mineralID uint, title string) MineralEvent {
	return MineralEvent{
		ID:        uuid.NewString(),
		Type:      t,
		MineralID: mineralID,
		Title:     title,
		Timestamp: time.Now().UTC(),
	}
}
