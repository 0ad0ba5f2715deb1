package memory

import (
	"context"
	"sync"
	"time"

	"healthpass/contexts/health-records/consent-manager/domain/entities"
)

// Store is an in-memory adapter implementing the consent repository port.
// It is intended for tests and local development wiring.
type Store struct {
	mu sync.RWMutex

	consents map[string]entities.ConsentGrant
}

func NewStore() *Store {
	return &Store{
		consents: make(map[string]entities.ConsentGrant),
	}
}

func (s *Store) PutConsent(_ context.Context, grant entities.ConsentGrant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.consents[consentKey(grant.Owner, grant.Accessor)] = grant
	return nil
}

func (s *Store) GetConsent(_ context.Context, owner string, accessor string) (entities.ConsentGrant, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	grant, ok := s.consents[consentKey(owner, accessor)]
	return grant, ok, nil
}

func (s *Store) MarkRevoked(_ context.Context, owner string, accessor string, revokedAt time.Time, commitSeq uint64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := consentKey(owner, accessor)
	grant, ok := s.consents[key]
	if !ok {
		return false, nil
	}
	stamped := revokedAt.UTC()
	grant.Revoked = true
	grant.RevokedAt = &stamped
	grant.CommitSeq = commitSeq
	s.consents[key] = grant
	return true, nil
}

func consentKey(owner string, accessor string) string {
	return owner + "|" + accessor
}
