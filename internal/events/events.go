// Package events publishes change notifications so that frontends and
// caches can refresh site configuration without polling.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/localroots/marketplace/internal/config"
)

// Event topic constants
const (
	TopicSettingsUpdated = "settings.updated"
	TopicSettingsCleared = "settings.cleared"
)

// Envelope is the JSON document published for every event.
type Envelope struct {
	Topic      string    `json:"topic"`
	OccurredAt time.Time `json:"occurredAt"`
	Actor      string    `json:"actor,omitempty"`
	Payload    any       `json:"payload,omitempty"`
}

// Publisher delivers events to subscribers.
type Publisher interface {
	Publish(ctx context.Context, topic string, event Envelope) error
	Close() error
}

// NoopPublisher drops every event.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, string, Envelope) error { return nil }
func (NoopPublisher) Close() error                                    { return nil }

// New creates the publisher selected by configuration.
func New(cfg config.EventsConfig) (Publisher, error) {
	switch cfg.Backend {
	case "", "none":
		return NoopPublisher{}, nil
	case "valkey":
		if cfg.ValkeyAddr == "" {
			return nil, fmt.Errorf("valkey address is required when events backend is valkey")
		}
		return NewValkeyPublisher(cfg.ValkeyAddr, cfg.Channel)
	case "nats":
		if cfg.NATSURL == "" {
			return nil, fmt.Errorf("nats url is required when events backend is nats")
		}
		return NewNATSPublisher(cfg.NATSURL, cfg.Channel)
	default:
		return nil, fmt.Errorf("unsupported events backend: %s (supported: none, valkey, nats)", cfg.Backend)
	}
}

// Emit publishes an event and logs failures. Notification delivery never
// fails the operation that triggered it.
func Emit(ctx context.Context, p Publisher, topic, actor string, payload any) {
	if p == nil {
		return
	}
	event := Envelope{
		Topic:      topic,
		OccurredAt: time.Now().UTC(),
		Actor:      actor,
		Payload:    payload,
	}
	if err := p.Publish(ctx, topic, event); err != nil {
		slog.Warn("Failed to publish event", "topic", topic, "error", err)
	}
}

func subject(channel, topic string) string {
	if channel == "" {
		return topic
	}
	return channel + "." + topic
}

func encode(event Envelope) ([]byte, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("marshaling event: %w", err)
	}
	return data, nil
}
