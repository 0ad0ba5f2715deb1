package ports

import (
	"context"
	"time"

	"healthpass/contexts/health-records/access-gateway/domain/entities"
	contractsv1 "healthpass/contracts/gen/events/v1"
)

const TopicEmergencyAccessed = "healthpass.emergency.accessed"

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

// RecordView is the gateway's read model of a stored record. The gateway
// never mutates records; it only decides whether they may be released.
type RecordView struct {
	RecordID    string    `json:"record_id"`
	Owner       string    `json:"owner"`
	ContentRef  string    `json:"content_ref"`
	RecordType  string    `json:"record_type"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	CommitSeq   uint64    `json:"commit_seq"`
}

// RecordSource supplies a subject's records in creation order.
type RecordSource interface {
	ListRecords(ctx context.Context, owner string) ([]RecordView, error)
}

// StandingAccessChecker answers whether the allow-list currently grants the
// accessor. Allow-list grants are unconditional across record types.
type StandingAccessChecker interface {
	IsActive(ctx context.Context, owner string, accessor string) (bool, error)
}

// ConsentChecker answers whether a live consent covers the record type.
// The wildcard "*" asks about any type.
type ConsentChecker interface {
	IsValid(ctx context.Context, owner string, accessor string, recordType string) (bool, error)
}

// AuditAppendInput is a commit-stamped audit event plus the outbox row that
// must land in the same store mutation.
type AuditAppendInput struct {
	Event        entities.EmergencyAccessEvent
	OutboxID     string
	EventType    string
	EventPayload []byte
}

// AuditLog is the append-only emergency access trail. AppendEvent must be
// durable before it returns nil.
type AuditLog interface {
	AppendEvent(ctx context.Context, input AuditAppendInput) error
	ListBySubject(ctx context.Context, subject string) ([]entities.EmergencyAccessEvent, error)
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

// EmergencyAccessedPayload is the event body relayed for every break-glass
// access.
type EmergencyAccessedPayload struct {
	Accessor   string    `json:"accessor"`
	Subject    string    `json:"subject"`
	CommitSeq  uint64    `json:"commit_seq"`
	AccessedAt time.Time `json:"accessed_at"`
}
