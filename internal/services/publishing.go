package services

import (
	"context"

	"github.com/ttnppedr/banking-system/internal/logger"
)

// EventPublisher is satisfied by *events.Publisher.
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, data any) error
}

// OperationRecorder is satisfied by *metrics.Metrics.
type OperationRecorder interface {
	RecordOperation(kind, outcome string)
}

// publish emits an event after commit. Failures are logged and swallowed.
func publish(ctx context.Context, p EventPublisher, eventType string, data any) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, eventType, data); err != nil {
		log := logger.FromContext(ctx)
		log.Warn().Err(err).Str("event", eventType).Msg("failed to publish ledger event")
	}
}
