package workers

import (
	"context"
	"log/slog"
	"time"

	application "healthpass/contexts/health-records/access-gateway/application"
	"healthpass/contexts/health-records/access-gateway/ports"
)

// AuditRelay publishes pending emergency-access rows to the event bus in
// commit order and acknowledges each row only after a successful publish.
type AuditRelay struct {
	Outbox    ports.OutboxRepository
	Publisher ports.EventPublisher
	Clock     ports.Clock
	BatchSize int
	Logger    *slog.Logger
}

func (r AuditRelay) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(r.Logger)
	limit := r.BatchSize
	if limit <= 0 {
		limit = 100
	}

	pending, err := r.Outbox.ListPendingOutbox(ctx, limit)
	if err != nil {
		logger.Error("emergency outbox list failed",
			"event", "access_gateway_outbox_list_failed",
			"module", "health-records/access-gateway",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}

	now := time.Now().UTC()
	if r.Clock != nil {
		now = r.Clock.Now().UTC()
	}

	for _, row := range pending {
		envelope := ports.EventEnvelope{
			EventID:       row.OutboxID,
			EventType:     row.EventType,
			OccurredAt:    row.CreatedAt,
			SourceService: "health-records/access-gateway",
			SchemaVersion: 1,
			PartitionKey:  row.PartitionKey,
			Data:          row.Payload,
		}
		if err := r.Publisher.Publish(ctx, row.EventType, envelope); err != nil {
			logger.Error("emergency outbox publish failed",
				"event", "access_gateway_outbox_publish_failed",
				"module", "health-records/access-gateway",
				"layer", "worker",
				"outbox_id", row.OutboxID,
				"error", err.Error(),
			)
			return err
		}
		if err := r.Outbox.MarkOutboxSent(ctx, row.OutboxID, now); err != nil {
			return err
		}
	}
	return nil
}
