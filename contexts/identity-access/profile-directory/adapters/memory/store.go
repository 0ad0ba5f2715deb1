package memory

import (
	"context"
	"sync"

	"healthpass/contexts/identity-access/profile-directory/domain/entities"
	"healthpass/contexts/identity-access/profile-directory/ports"
)

// Store is the in-memory profile repository used by unit tests and local
// development.
type Store struct {
	mu       sync.RWMutex
	profiles map[string]entities.Profile
}

func NewStore() *Store {
	return &Store{profiles: make(map[string]entities.Profile)}
}

// PutProfile overwrites the profile, preserving the original CreatedAt on
// updates.
func (s *Store) PutProfile(_ context.Context, profile entities.Profile) (entities.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.profiles[profile.Principal]; ok {
		profile.CreatedAt = existing.CreatedAt
	}
	s.profiles[profile.Principal] = profile
	return profile, nil
}

func (s *Store) GetProfile(_ context.Context, principal string) (entities.Profile, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	profile, ok := s.profiles[principal]
	return profile, ok, nil
}

var _ ports.Repository = (*Store)(nil)
