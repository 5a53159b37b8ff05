package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	appoutbox "holidaze/internal/app/outbox"
)

type Producer interface {
	Publish(ctx context.Context, topic string, key string, payload []byte, headers map[string]string) error
}

// Publisher buffers records and publishes them as CloudEvents envelopes on
// Flush. Publishing is best effort: failures are logged, not returned, so
// a broker outage never undoes an accepted click.
type Publisher struct {
	Producer    Producer
	TopicPrefix string
	Source      string
	Logger      *slog.Logger

	mu      sync.Mutex
	pending []appoutbox.EventRecord
}

func (p *Publisher) Add(ctx context.Context, record appoutbox.EventRecord) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pending = append(p.pending, record)
	return nil
}

func (p *Publisher) Flush(ctx context.Context) error {
	p.mu.Lock()
	batch := p.pending
	p.pending = nil
	p.mu.Unlock()

	for _, rec := range batch {
		payload, headers, err := p.envelope(rec)
		if err != nil {
			p.logFailure(ctx, rec, err)
			continue
		}
		if err := p.Producer.Publish(ctx, p.topicFor(rec.Name), rec.Aggregate, payload, headers); err != nil {
			p.logFailure(ctx, rec, err)
		}
	}
	return nil
}

func (p *Publisher) envelope(rec appoutbox.EventRecord) ([]byte, map[string]string, error) {
	if len(rec.Payload) == 0 {
		return nil, nil, ErrEmptyPayload
	}
	id := rec.ID
	if id == "" {
		id = uuid.NewString()
	}
	evt := map[string]any{
		"specversion":     "1.0",
		"id":              id,
		"type":            rec.Name + ".v1",
		"source":          p.source(),
		"subject":         rec.Aggregate,
		"time":            rec.OccurredAt,
		"datacontenttype": "application/json",
		"data":            json.RawMessage(rec.Payload),
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		return nil, nil, err
	}
	headers := map[string]string{"content-type": "application/cloudevents+json"}
	for k, v := range rec.Headers {
		headers[k] = v
	}
	return payload, headers, nil
}

// topicFor maps "calendar.selection_changed" to "<prefix>calendar.events.v1".
func (p *Publisher) topicFor(name string) string {
	base := name
	if idx := strings.IndexRune(name, '.'); idx > 0 {
		base = name[:idx]
	}
	return p.TopicPrefix + base + ".events.v1"
}

func (p *Publisher) source() string {
	if p.Source != "" {
		return p.Source
	}
	return "app://holidaze"
}

func (p *Publisher) logFailure(ctx context.Context, rec appoutbox.EventRecord, err error) {
	if p.Logger != nil {
		p.Logger.WarnContext(ctx, "event publish failed", "event", rec.Name, "event_id", rec.ID, "error", err)
	}
}

// LogProducer stands in for a broker by logging each message.
type LogProducer struct {
	Logger *slog.Logger
}

func (l LogProducer) Publish(ctx context.Context, topic string, key string, payload []byte, headers map[string]string) error {
	if l.Logger != nil {
		l.Logger.InfoContext(ctx, "event", "topic", topic, "key", key, "payload", string(payload))
	}
	return nil
}

var ErrEmptyPayload = errors.New("outbox: empty event payload")

var _ appoutbox.Outbox = (*Publisher)(nil)
