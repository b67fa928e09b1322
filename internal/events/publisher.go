package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// Publisher appends events to a Redis stream. A Publisher without a client
// drops events silently.
type Publisher struct {
	client *redis.Client
	stream string
	now    func() time.Time
	newID  func() string
}

func NewPublisher(client *redis.Client, stream string) *Publisher {
	if stream == "" {
		stream = DefaultStream
	}
	return &Publisher{
		client: client,
		stream: stream,
		now:    func() time.Time { return time.Now().UTC() },
		newID:  uuid.NewString,
	}
}

func (p *Publisher) Publish(ctx context.Context, eventType string, data any) error {
	if p == nil || p.client == nil {
		return nil
	}

	event := Event{
		ID:        p.newID(),
		Type:      eventType,
		Timestamp: p.now(),
		Data:      data,
	}

	eventJSON, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if _, err := p.client.XAdd(ctx, p.xaddArgs(eventJSON)).Result(); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", eventType, err)
	}
	return nil
}

func (p *Publisher) xaddArgs(eventJSON []byte) *redis.XAddArgs {
	return &redis.XAddArgs{
		Stream: p.stream,
		Values: map[string]interface{}{
			"event": string(eventJSON),
		},
	}
}
