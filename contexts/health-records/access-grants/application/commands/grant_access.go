package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	application "healthpass/contexts/health-records/access-grants/application"
	"healthpass/contexts/health-records/access-grants/domain/entities"
	domainerrors "healthpass/contexts/health-records/access-grants/domain/errors"
	"healthpass/contexts/health-records/access-grants/ports"
)

// GrantAccessCommand contains transport-agnostic input for a standing grant.
type GrantAccessCommand struct {
	Caller   string
	Owner    string
	Accessor string
}

// GrantAccessUseCase sets the (owner, accessor) ACL entry active. Calling it
// again with the same key overwrites the entry and is observably idempotent.
type GrantAccessUseCase struct {
	Repository  ports.Repository
	Commits     ports.CommitLog
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (u GrantAccessUseCase) Execute(ctx context.Context, cmd GrantAccessCommand) (entities.AccessGrant, error) {
	return mutateGrant(ctx, mutateGrantDeps{
		Repository:  u.Repository,
		Commits:     u.Commits,
		IDGenerator: u.IDGenerator,
		Logger:      u.Logger,
	}, cmd.Caller, cmd.Owner, cmd.Accessor, true)
}

type mutateGrantDeps struct {
	Repository  ports.Repository
	Commits     ports.CommitLog
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func mutateGrant(
	ctx context.Context,
	deps mutateGrantDeps,
	caller string,
	owner string,
	accessor string,
	active bool,
) (entities.AccessGrant, error) {
	logger := application.ResolveLogger(deps.Logger)

	callerID := normalizePrincipal(caller)
	ownerID := normalizePrincipal(owner)
	accessorID := normalizePrincipal(accessor)
	if callerID == "" || ownerID == "" || accessorID == "" || ownerID == accessorID {
		return entities.AccessGrant{}, domainerrors.ErrInvalidGrant
	}
	if callerID != ownerID {
		return entities.AccessGrant{}, domainerrors.ErrNotOwner
	}

	outboxID, err := deps.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.AccessGrant{}, err
	}
	seq, committedAt, err := deps.Commits.Commit(ctx)
	if err != nil {
		return entities.AccessGrant{}, err
	}

	eventType := ports.TopicAccessRevoked
	if active {
		eventType = ports.TopicAccessGranted
	}
	payload, err := json.Marshal(ports.GrantChangedPayload{
		Owner:     ownerID,
		Accessor:  accessorID,
		Active:    active,
		CommitSeq: seq,
		ChangedAt: committedAt.UTC(),
	})
	if err != nil {
		return entities.AccessGrant{}, err
	}

	grant, err := deps.Repository.SetGrant(ctx, ports.GrantMutationInput{
		Owner:        ownerID,
		Accessor:     accessorID,
		Active:       active,
		CommittedAt:  committedAt.UTC(),
		CommitSeq:    seq,
		OutboxID:     outboxID,
		EventType:    eventType,
		EventPayload: payload,
	})
	if err != nil {
		logger.Error("grant mutation failed",
			"event", "access_grant_mutation_failed",
			"module", "health-records/access-grants",
			"layer", "application",
			"owner", ownerID,
			"accessor", accessorID,
			"active", active,
			"error", err.Error(),
		)
		return entities.AccessGrant{}, err
	}

	logger.Info("grant state committed",
		"event", "access_grant_committed",
		"module", "health-records/access-grants",
		"layer", "application",
		"owner", ownerID,
		"accessor", accessorID,
		"active", active,
		"commit_seq", seq,
	)
	return grant, nil
}

func normalizePrincipal(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
