package workers

import (
	"context"
	"encoding/json"
	"log/slog"

	application "healthpass/contexts/health-records/access-grants/application"
	"healthpass/contexts/health-records/access-grants/ports"
)

const defaultConsumerGroup = "access-grants-projection-cg"

// GrantsProjectionConsumer folds granted/revoked envelopes into the
// materialized active-grants view. Replays and out-of-order deliveries are
// safe: the projection keeps the highest commit sequence per key.
type GrantsProjectionConsumer struct {
	Subscriber    ports.EventSubscriber
	Projection    ports.GrantsProjection
	ConsumerGroup string
	Logger        *slog.Logger
}

func (c GrantsProjectionConsumer) Start(ctx context.Context) error {
	group := c.ConsumerGroup
	if group == "" {
		group = defaultConsumerGroup
	}
	if err := c.Subscriber.Subscribe(ctx, ports.TopicAccessGranted, group, c.handleGrantChanged); err != nil {
		return err
	}
	return c.Subscriber.Subscribe(ctx, ports.TopicAccessRevoked, group, c.handleGrantChanged)
}

func (c GrantsProjectionConsumer) handleGrantChanged(ctx context.Context, event ports.EventEnvelope) error {
	logger := application.ResolveLogger(c.Logger)

	var payload ports.GrantChangedPayload
	if err := json.Unmarshal(event.Data, &payload); err != nil {
		logger.Error("grant change payload decode failed",
			"event", "access_grants_projection_decode_failed",
			"module", "health-records/access-grants",
			"layer", "worker",
			"event_id", event.EventID,
			"event_type", event.EventType,
			"error", err.Error(),
		)
		return err
	}
	if err := c.Projection.Apply(ctx, payload); err != nil {
		return err
	}
	logger.Debug("grant projection applied",
		"event", "access_grants_projection_applied",
		"module", "health-records/access-grants",
		"layer", "worker",
		"owner", payload.Owner,
		"accessor", payload.Accessor,
		"active", payload.Active,
		"commit_seq", payload.CommitSeq,
	)
	return nil
}
