package events

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/valkey-io/valkey-go"
)

// ValkeyPublisher publishes events on Valkey pub/sub channels named
// "<channel>.<topic>".
type ValkeyPublisher struct {
	client  valkey.Client
	channel string
}

// NewValkeyPublisher connects to Valkey and verifies the connection
func NewValkeyPublisher(addr, channel string) (*ValkeyPublisher, error) {
	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress: []string{addr},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Valkey: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping Valkey: %w", err)
	}

	slog.Info("Initialized Valkey event publisher", "address", addr, "channel", channel)
	return &ValkeyPublisher{client: client, channel: channel}, nil
}

// Publish sends the event to the topic channel
func (p *ValkeyPublisher) Publish(ctx context.Context, topic string, event Envelope) error {
	data, err := encode(event)
	if err != nil {
		return err
	}
	cmd := p.client.B().Publish().Channel(subject(p.channel, topic)).Message(string(data)).Build()
	if err := p.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("valkey publish: %w", err)
	}
	return nil
}

// Close closes the Valkey client
func (p *ValkeyPublisher) Close() error {
	p.client.Close()
	return nil
}
