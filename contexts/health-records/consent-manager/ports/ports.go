package ports

import (
	"context"
	"time"

	"healthpass/contexts/health-records/consent-manager/domain/entities"
)

type Clock interface {
	Now() time.Time
}

// CommitLog is the external ordering substrate shared by all mutating
// operations in the engine.
type CommitLog interface {
	Commit(ctx context.Context) (uint64, time.Time, error)
}

type Repository interface {
	// PutConsent overwrites the single entry for the grant's key.
	PutConsent(ctx context.Context, grant entities.ConsentGrant) error
	GetConsent(ctx context.Context, owner string, accessor string) (entities.ConsentGrant, bool, error)
	// MarkRevoked flags the current entry; reports whether an entry existed.
	MarkRevoked(ctx context.Context, owner string, accessor string, revokedAt time.Time, commitSeq uint64) (bool, error)
}
