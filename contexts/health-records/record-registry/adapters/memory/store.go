package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"healthpass/contexts/health-records/record-registry/domain/entities"
	"healthpass/contexts/health-records/record-registry/ports"
)

// Store is an in-memory adapter implementing the repository and idempotency
// ports. It is intended for tests and local development wiring.
type Store struct {
	mu sync.RWMutex

	recordsByOwner map[string][]entities.Record
	idempotency    map[string]ports.IdempotencyRecord
}

func NewStore() *Store {
	return &Store{
		recordsByOwner: make(map[string][]entities.Record),
		idempotency:    make(map[string]ports.IdempotencyRecord),
	}
}

func (s *Store) AppendRecord(_ context.Context, input ports.AddRecordInput) (entities.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record := entities.Record{
		RecordID:    input.RecordID,
		Owner:       input.Owner,
		ContentRef:  input.ContentRef,
		RecordType:  input.RecordType,
		Description: input.Description,
		CreatedAt:   input.CreatedAt.UTC(),
		CommitSeq:   input.CommitSeq,
	}
	s.recordsByOwner[input.Owner] = append(s.recordsByOwner[input.Owner], record)
	return record, nil
}

func (s *Store) ListRecords(_ context.Context, owner string) ([]entities.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := append([]entities.Record(nil), s.recordsByOwner[owner]...)
	sort.Slice(items, func(i, j int) bool {
		return items[i].CommitSeq < items[j].CommitSeq
	})
	return items, nil
}

func (s *Store) Get(_ context.Context, key string, now time.Time) (ports.IdempotencyRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.idempotency[key]
	if !ok || record.ExpiresAt.Before(now) {
		return ports.IdempotencyRecord{}, false, nil
	}
	return record, true, nil
}

func (s *Store) Put(_ context.Context, record ports.IdempotencyRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.idempotency[record.Key] = record
	return nil
}
