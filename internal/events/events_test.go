package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/localroots/marketplace/internal/config"
)

type recordingPublisher struct {
	topics []string
	events []Envelope
	err    error
}

func (r *recordingPublisher) Publish(_ context.Context, topic string, event Envelope) error {
	r.topics = append(r.topics, topic)
	r.events = append(r.events, event)
	return r.err
}

func (r *recordingPublisher) Close() error { return nil }

func TestNew_DefaultsToNoop(t *testing.T) {
	for _, backend := range []string{"", "none"} {
		p, err := New(config.EventsConfig{Backend: backend})
		if err != nil {
			t.Fatalf("backend %q: unexpected error %v", backend, err)
		}
		if _, ok := p.(NoopPublisher); !ok {
			t.Errorf("backend %q: expected NoopPublisher, got %T", backend, p)
		}
	}
}

func TestNew_RejectsUnknownBackend(t *testing.T) {
	if _, err := New(config.EventsConfig{Backend: "kafka"}); err == nil {
		t.Error("expected error for unknown backend")
	}
	if _, err := New(config.EventsConfig{Backend: "valkey"}); err == nil {
		t.Error("expected error for valkey without address")
	}
	if _, err := New(config.EventsConfig{Backend: "nats"}); err == nil {
		t.Error("expected error for nats without url")
	}
}

func TestEmit_SwallowsPublishErrors(t *testing.T) {
	rec := &recordingPublisher{err: errors.New("broker down")}
	Emit(context.Background(), rec, TopicSettingsUpdated, "admin@example.com", map[string]any{"theme": "dark"})

	if len(rec.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(rec.events))
	}
	ev := rec.events[0]
	if ev.Topic != TopicSettingsUpdated || ev.Actor != "admin@example.com" {
		t.Errorf("unexpected envelope %+v", ev)
	}
	if ev.OccurredAt.IsZero() {
		t.Error("expected timestamp")
	}
}

func TestEmit_NilPublisher(t *testing.T) {
	Emit(context.Background(), nil, TopicSettingsCleared, "", nil)
}

func TestSubjectAndEncode(t *testing.T) {
	if got := subject("roots", TopicSettingsCleared); got != "roots.settings.cleared" {
		t.Errorf("unexpected subject %q", got)
	}
	if got := subject("", TopicSettingsCleared); got != TopicSettingsCleared {
		t.Errorf("unexpected subject %q", got)
	}

	data, err := encode(Envelope{Topic: TopicSettingsCleared})
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if decoded["topic"] != TopicSettingsCleared {
		t.Errorf("unexpected topic %v", decoded["topic"])
	}
	if _, ok := decoded["payload"]; ok {
		t.Error("empty payload should be omitted")
	}
}
