package events

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

// NATSPublisher publishes events to NATS subjects named "<channel>.<topic>".
type NATSPublisher struct {
	conn    *nats.Conn
	channel string
}

// NewNATSPublisher connects to NATS with automatic reconnection.
func NewNATSPublisher(url, channel string, opts ...nats.Option) (*NATSPublisher, error) {
	defaults := []nats.Option{
		nats.Name("roots-api"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(time.Second),
	}
	nc, err := nats.Connect(url, append(defaults, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS at %s: %w", url, err)
	}
	slog.Info("Initialized NATS event publisher", "url", url, "channel", channel)
	return &NATSPublisher{conn: nc, channel: channel}, nil
}

// Publish sends the event to the topic subject
func (p *NATSPublisher) Publish(ctx context.Context, topic string, event Envelope) error {
	data, err := encode(event)
	if err != nil {
		return err
	}
	return p.conn.Publish(subject(p.channel, topic), data)
}

// Close drains and closes the connection
func (p *NATSPublisher) Close() error {
	return p.conn.Drain()
}
