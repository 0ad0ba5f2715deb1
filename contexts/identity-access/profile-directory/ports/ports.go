package ports

import (
	"context"
	"time"

	"healthpass/contexts/identity-access/profile-directory/domain/entities"
)

const (
	RolePatient = "patient"
	RoleDoctor  = "doctor"
)

// IsValidRole reports whether the (already lowercased) role is known.
func IsValidRole(role string) bool {
	return role == RolePatient || role == RoleDoctor
}

type Clock interface {
	Now() time.Time
}

// CommitLog is the external ordering substrate shared by all mutating
// operations in the engine.
type CommitLog interface {
	Commit(ctx context.Context) (uint64, time.Time, error)
}

type Repository interface {
	PutProfile(ctx context.Context, profile entities.Profile) (entities.Profile, error)
	GetProfile(ctx context.Context, principal string) (entities.Profile, bool, error)
}
