package workers

import (
	"context"
	"log/slog"
	"time"

	application "healthpass/contexts/health-records/access-grants/application"
	"healthpass/contexts/health-records/access-grants/ports"
)

// OutboxRelay publishes pending grant-change rows to the event bus in commit
// order and acknowledges each row only after a successful publish.
type OutboxRelay struct {
	Outbox    ports.OutboxRepository
	Publisher ports.EventPublisher
	Clock     ports.Clock
	BatchSize int
	Logger    *slog.Logger
}

func (r OutboxRelay) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(r.Logger)
	limit := r.BatchSize
	if limit <= 0 {
		limit = 100
	}

	pending, err := r.Outbox.ListPendingOutbox(ctx, limit)
	if err != nil {
		logger.Error("grants outbox list failed",
			"event", "access_grants_outbox_list_failed",
			"module", "health-records/access-grants",
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
			SourceService: "health-records/access-grants",
			SchemaVersion: 1,
			PartitionKey:  row.PartitionKey,
			Data:          row.Payload,
		}
		if err := r.Publisher.Publish(ctx, row.EventType, envelope); err != nil {
			logger.Error("grants outbox publish failed",
				"event", "access_grants_outbox_publish_failed",
				"module", "health-records/access-grants",
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
