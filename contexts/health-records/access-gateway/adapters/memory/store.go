package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"healthpass/contexts/health-records/access-gateway/domain/entities"
	"healthpass/contexts/health-records/access-gateway/ports"
)

type outboxEntry struct {
	message ports.OutboxMessage
	sentAt  *time.Time
}

// Store is the in-memory audit log plus module outbox, used by unit tests
// and local development.
type Store struct {
	mu     sync.RWMutex
	events []entities.EmergencyAccessEvent
	outbox []outboxEntry
}

func NewStore() *Store {
	return &Store{}
}

// AppendEvent stores the audit event and its outbox row in one locked
// mutation. Once this returns nil the event is observable to readers.
func (s *Store) AppendEvent(_ context.Context, input ports.AuditAppendInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = append(s.events, input.Event)
	s.outbox = append(s.outbox, outboxEntry{
		message: ports.OutboxMessage{
			OutboxID:     input.OutboxID,
			EventType:    input.EventType,
			PartitionKey: input.Event.Subject,
			Payload:      input.EventPayload,
			CreatedAt:    input.Event.CommittedAt,
		},
	})
	return nil
}

func (s *Store) ListBySubject(_ context.Context, subject string) ([]entities.EmergencyAccessEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]entities.EmergencyAccessEvent, 0)
	for _, event := range s.events {
		if event.Subject == subject {
			matched = append(matched, event)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].SequenceNumber < matched[j].SequenceNumber
	})
	return matched, nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pending := make([]ports.OutboxMessage, 0)
	for _, entry := range s.outbox {
		if entry.sentAt != nil {
			continue
		}
		pending = append(pending, entry.message)
		if limit > 0 && len(pending) >= limit {
			break
		}
	}
	return pending, nil
}

func (s *Store) MarkOutboxSent(_ context.Context, outboxID string, sentAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.outbox {
		if s.outbox[i].message.OutboxID == outboxID {
			stamp := sentAt
			s.outbox[i].sentAt = &stamp
			return nil
		}
	}
	return nil
}

var (
	_ ports.AuditLog         = (*Store)(nil)
	_ ports.OutboxRepository = (*Store)(nil)
)
