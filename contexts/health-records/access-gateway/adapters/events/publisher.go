package events

import (
	"context"
	"log/slog"

	"healthpass/contexts/health-records/access-gateway/ports"
)

// Publisher is a log-only emergency-access publisher used when no event bus
// is wired, so single-process runs still surface every break-glass access.
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
	p.logger.Info("emergency access event published",
		"event", "access_gateway_event_published",
		"module", "health-records/access-gateway",
		"layer", "adapter",
		"topic", topic,
		"event_id", event.EventID,
		"event_type", event.EventType,
		"partition_key", event.PartitionKey,
	)
	return nil
}
