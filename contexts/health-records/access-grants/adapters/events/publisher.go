package events

import (
	"context"
	"log/slog"

	"healthpass/contexts/health-records/access-grants/ports"
)

// Publisher is a log-only grant-change publisher used when no event bus is
// wired, so single-process runs still surface every ACL mutation.
type Publisher struct {
	logger *slog.Logger
}

func NewPublisher(logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{logger: logger}
}

func (p Publisher) Publish(_ context.Context, topic string, event ports.EventEnvelope) error {
	p.logger.Info("grant change event published",
		"event", "access_grants_event_published",
		"module", "health-records/access-grants",
		"layer", "adapter",
		"topic", topic,
		"event_id", event.EventID,
		"event_type", event.EventType,
		"partition_key", event.PartitionKey,
	)
	return nil
}
