package ports

import (
	"context"
	"time"

	"healthpass/contexts/health-records/record-registry/domain/entities"
)

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// CommitLog is the external ordering substrate. Every mutation obtains its
// global position and authoritative timestamp from it before applying state.
type CommitLog interface {
	Commit(ctx context.Context) (uint64, time.Time, error)
}

type IdempotencyRecord struct {
	Key         string
	RequestHash string
	Payload     []byte
	ExpiresAt   time.Time
}

type IdempotencyStore interface {
	Get(ctx context.Context, key string, now time.Time) (IdempotencyRecord, bool, error)
	Put(ctx context.Context, record IdempotencyRecord) error
}

// AddRecordInput carries a fully validated, commit-stamped record append.
type AddRecordInput struct {
	RecordID    string
	Owner       string
	ContentRef  string
	RecordType  string
	Description string
	CreatedAt   time.Time
	CommitSeq   uint64
}

type Repository interface {
	AppendRecord(ctx context.Context, input AddRecordInput) (entities.Record, error)
	ListRecords(ctx context.Context, owner string) ([]entities.Record, error)
}
