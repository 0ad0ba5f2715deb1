package commands

import (
	"context"
	"log/slog"

	"healthpass/contexts/health-records/access-grants/domain/entities"
	"healthpass/contexts/health-records/access-grants/ports"
)

// RevokeAccessCommand contains transport-agnostic input for a grant removal.
type RevokeAccessCommand struct {
	Caller   string
	Owner    string
	Accessor string
}

// RevokeAccessUseCase sets the (owner, accessor) ACL entry inactive. Revoking
// an absent or already revoked grant commits the same inactive state again.
type RevokeAccessUseCase struct {
	Repository  ports.Repository
	Commits     ports.CommitLog
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (u RevokeAccessUseCase) Execute(ctx context.Context, cmd RevokeAccessCommand) (entities.AccessGrant, error) {
	return mutateGrant(ctx, mutateGrantDeps{
		Repository:  u.Repository,
		Commits:     u.Commits,
		IDGenerator: u.IDGenerator,
		Logger:      u.Logger,
	}, cmd.Caller, cmd.Owner, cmd.Accessor, false)
}
