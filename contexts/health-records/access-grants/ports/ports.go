package ports

import (
	"context"
	"time"

	"healthpass/contexts/health-records/access-grants/domain/entities"
	contractsv1 "healthpass/contracts/gen/events/v1"
)

const (
	TopicAccessGranted = "healthpass.access.granted"
	TopicAccessRevoked = "healthpass.access.revoked"
)

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// CommitLog is the external ordering substrate shared by all mutating
// operations in the engine.
type CommitLog interface {
	Commit(ctx context.Context) (uint64, time.Time, error)
}

// GrantMutationInput is a commit-stamped grant overwrite plus the outbox row
// that must land in the same store mutation.
type GrantMutationInput struct {
	Owner        string
	Accessor     string
	Active       bool
	CommittedAt  time.Time
	CommitSeq    uint64
	OutboxID     string
	EventType    string
	EventPayload []byte
}

type Repository interface {
	SetGrant(ctx context.Context, input GrantMutationInput) (entities.AccessGrant, error)
	GetGrant(ctx context.Context, owner string, accessor string) (entities.AccessGrant, bool, error)
}

// OutboxMessage is a row ready to relay from the module outbox.
type OutboxMessage struct {
	OutboxID     string
	EventType    string
	PartitionKey string
	Payload      []byte
	CreatedAt    time.Time
}

// OutboxRepository models worker-side outbox polling/acknowledgement.
type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkOutboxSent(ctx context.Context, outboxID string, sentAt time.Time) error
}

// EventEnvelope reuses the canonical cross-runtime envelope contract.
type EventEnvelope = contractsv1.Envelope

type EventPublisher interface {
	Publish(ctx context.Context, topic string, event EventEnvelope) error
}

type EventSubscriber interface {
	Subscribe(
		ctx context.Context,
		topic string,
		consumerGroup string,
		handler func(context.Context, EventEnvelope) error,
	) error
}

// GrantChangedPayload is the event body relayed for every ACL mutation.
type GrantChangedPayload struct {
	Owner     string    `json:"owner"`
	Accessor  string    `json:"accessor"`
	Active    bool      `json:"active"`
	CommitSeq uint64    `json:"commit_seq"`
	ChangedAt time.Time `json:"changed_at"`
}

// GrantsProjection is the materialized "who currently has access" view kept
// by folding granted/revoked events, newest commit per key winning.
type GrantsProjection interface {
	Apply(ctx context.Context, payload GrantChangedPayload) error
	ListActiveAccessors(ctx context.Context, owner string) ([]string, error)
}
