package application

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"healthpass/contexts/health-records/record-registry/domain/entities"
	domainerrors "healthpass/contexts/health-records/record-registry/domain/errors"
	"healthpass/contexts/health-records/record-registry/ports"
)

type Service struct {
	Repo           ports.Repository
	Idempotency    ports.IdempotencyStore
	Commits        ports.CommitLog
	IDGenerator    ports.IDGenerator
	Clock          ports.Clock
	Logger         *slog.Logger
	IdempotencyTTL time.Duration
}

// AddRecordCommand is transport-agnostic input for a record append.
type AddRecordCommand struct {
	IdempotencyKey string
	Caller         string
	Owner          string
	ContentRef     string
	RecordType     string
	Description    string
}

// AddRecord appends one immutable record to the caller's own partition.
// The commit log assigns the authoritative timestamp and global position;
// client-supplied time is never trusted.
func (s Service) AddRecord(ctx context.Context, cmd AddRecordCommand) (entities.Record, error) {
	var out entities.Record
	caller := normalizePrincipal(cmd.Caller)
	owner := normalizePrincipal(cmd.Owner)
	if caller == "" || owner == "" {
		return out, domainerrors.ErrInvalidRecord
	}
	if caller != owner {
		return out, domainerrors.ErrNotOwner
	}
	if strings.TrimSpace(cmd.ContentRef) == "" || strings.TrimSpace(cmd.RecordType) == "" {
		return out, domainerrors.ErrInvalidRecord
	}
	if err := s.requireIdempotency(cmd.IdempotencyKey); err != nil {
		return out, err
	}

	requestHash := hashStrings("records_add_record",
		owner, strings.TrimSpace(cmd.ContentRef), strings.TrimSpace(cmd.RecordType), cmd.Description)
	err := s.runIdempotent(
		ctx,
		"records_idempotency:"+strings.TrimSpace(cmd.IdempotencyKey),
		requestHash,
		func(raw []byte) error { return json.Unmarshal(raw, &out) },
		func() ([]byte, error) {
			recordID, err := s.IDGenerator.NewID(ctx)
			if err != nil {
				return nil, err
			}
			seq, committedAt, err := s.Commits.Commit(ctx)
			if err != nil {
				return nil, err
			}
			record, err := s.Repo.AppendRecord(ctx, ports.AddRecordInput{
				RecordID:    recordID,
				Owner:       owner,
				ContentRef:  strings.TrimSpace(cmd.ContentRef),
				RecordType:  strings.TrimSpace(cmd.RecordType),
				Description: cmd.Description,
				CreatedAt:   committedAt.UTC(),
				CommitSeq:   seq,
			})
			if err != nil {
				return nil, err
			}
			ResolveLogger(s.Logger).Info("record appended",
				"event", "records_record_appended",
				"module", "health-records/record-registry",
				"layer", "application",
				"owner", owner,
				"record_id", record.RecordID,
				"record_type", record.RecordType,
				"commit_seq", record.CommitSeq,
			)
			return json.Marshal(record)
		},
	)
	return out, err
}

// ListRecords returns the caller's own records in commit order. Cross-principal
// reads must go through the access-gateway instead.
func (s Service) ListRecords(ctx context.Context, caller string, owner string) ([]entities.Record, error) {
	callerID := normalizePrincipal(caller)
	ownerID := normalizePrincipal(owner)
	if callerID == "" || ownerID == "" {
		return nil, domainerrors.ErrInvalidRecord
	}
	if callerID != ownerID {
		return nil, domainerrors.ErrNotOwner
	}
	return s.Repo.ListRecords(ctx, ownerID)
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}

func (s Service) idempotencyTTL() time.Duration {
	if s.IdempotencyTTL <= 0 {
		return 7 * 24 * time.Hour
	}
	return s.IdempotencyTTL
}

func (s Service) requireIdempotency(key string) error {
	if strings.TrimSpace(key) == "" {
		return domainerrors.ErrIdempotencyKeyRequired
	}
	return nil
}

func (s Service) runIdempotent(
	ctx context.Context,
	key string,
	requestHash string,
	decode func([]byte) error,
	exec func() ([]byte, error),
) error {
	now := s.now()
	record, found, err := s.Idempotency.Get(ctx, key, now)
	if err != nil {
		return err
	}
	if found {
		if record.RequestHash != requestHash {
			return domainerrors.ErrIdempotencyConflict
		}
		return decode(record.Payload)
	}

	payload, err := exec()
	if err != nil {
		return err
	}
	if err := s.Idempotency.Put(ctx, ports.IdempotencyRecord{
		Key:         key,
		RequestHash: requestHash,
		Payload:     payload,
		ExpiresAt:   now.Add(s.idempotencyTTL()),
	}); err != nil {
		return err
	}
	return decode(payload)
}

func hashStrings(values ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(values, "|")))
	return hex.EncodeToString(sum[:])
}

func normalizePrincipal(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
