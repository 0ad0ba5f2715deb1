package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"healthpass/contexts/health-records/access-grants/domain/entities"
	"healthpass/contexts/health-records/access-grants/ports"
)

// Store is an in-memory adapter implementing the repository, outbox, and
// projection ports. It is intended for tests and local development wiring.
type Store struct {
	mu sync.RWMutex

	grants     map[string]entities.AccessGrant
	outbox     []outboxRow
	projection map[string]map[string]projectionEntry
}

type outboxRow struct {
	ports.OutboxMessage
	SentAt *time.Time
}

type projectionEntry struct {
	Active    bool
	CommitSeq uint64
}

func NewStore() *Store {
	return &Store{
		grants:     make(map[string]entities.AccessGrant),
		projection: make(map[string]map[string]projectionEntry),
	}
}

func (s *Store) SetGrant(_ context.Context, input ports.GrantMutationInput) (entities.AccessGrant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	grant := entities.AccessGrant{
		Owner:     input.Owner,
		Accessor:  input.Accessor,
		Active:    input.Active,
		UpdatedAt: input.CommittedAt.UTC(),
		CommitSeq: input.CommitSeq,
	}
	s.grants[grantKey(input.Owner, input.Accessor)] = grant
	s.outbox = append(s.outbox, outboxRow{
		OutboxMessage: ports.OutboxMessage{
			OutboxID:     input.OutboxID,
			EventType:    input.EventType,
			PartitionKey: input.Owner,
			Payload:      input.EventPayload,
			CreatedAt:    input.CommittedAt.UTC(),
		},
	})
	return grant, nil
}

func (s *Store) GetGrant(_ context.Context, owner string, accessor string) (entities.AccessGrant, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	grant, ok := s.grants[grantKey(owner, accessor)]
	return grant, ok, nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var pending []ports.OutboxMessage
	for _, row := range s.outbox {
		if row.SentAt != nil {
			continue
		}
		pending = append(pending, row.OutboxMessage)
		if len(pending) == limit {
			break
		}
	}
	return pending, nil
}

func (s *Store) MarkOutboxSent(_ context.Context, outboxID string, sentAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.outbox {
		if s.outbox[i].OutboxID == outboxID {
			stamped := sentAt.UTC()
			s.outbox[i].SentAt = &stamped
			return nil
		}
	}
	return nil
}

func (s *Store) Apply(_ context.Context, payload ports.GrantChangedPayload) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	byAccessor, ok := s.projection[payload.Owner]
	if !ok {
		byAccessor = make(map[string]projectionEntry)
		s.projection[payload.Owner] = byAccessor
	}
	if current, exists := byAccessor[payload.Accessor]; exists && current.CommitSeq >= payload.CommitSeq {
		return nil
	}
	byAccessor[payload.Accessor] = projectionEntry{
		Active:    payload.Active,
		CommitSeq: payload.CommitSeq,
	}
	return nil
}

func (s *Store) ListActiveAccessors(_ context.Context, owner string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	accessors := make([]string, 0)
	for accessor, entry := range s.projection[owner] {
		if entry.Active {
			accessors = append(accessors, accessor)
		}
	}
	sort.Strings(accessors)
	return accessors, nil
}

func grantKey(owner string, accessor string) string {
	return owner + "|" + accessor
}
