package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"healthpass/contexts/health-records/consent-manager/domain/entities"
	domainerrors "healthpass/contexts/health-records/consent-manager/domain/errors"
	"healthpass/contexts/health-records/consent-manager/ports"
)

type Service struct {
	Repo    ports.Repository
	Commits ports.CommitLog
	Clock   ports.Clock
	Logger  *slog.Logger
}

// GiveConsentCommand is transport-agnostic input for a consent grant.
type GiveConsentCommand struct {
	Caller          string
	Owner           string
	Accessor        string
	Purpose         string
	DurationSeconds int64
	ScopeTypes      []string
}

// GiveConsent creates or fully overwrites the consent entry for the
// (owner, accessor) key. ExpiresAt derives from the commit timestamp, not
// from any caller-supplied time.
func (s Service) GiveConsent(ctx context.Context, cmd GiveConsentCommand) (entities.ConsentGrant, error) {
	caller := normalizePrincipal(cmd.Caller)
	owner := normalizePrincipal(cmd.Owner)
	accessor := normalizePrincipal(cmd.Accessor)
	purpose := strings.TrimSpace(cmd.Purpose)

	if caller == "" || owner == "" || accessor == "" || owner == accessor {
		return entities.ConsentGrant{}, domainerrors.ErrInvalidConsent
	}
	if purpose == "" || cmd.DurationSeconds <= 0 {
		return entities.ConsentGrant{}, domainerrors.ErrInvalidConsent
	}
	if caller != owner {
		return entities.ConsentGrant{}, domainerrors.ErrNotOwner
	}

	scope := make([]string, 0, len(cmd.ScopeTypes))
	for _, recordType := range cmd.ScopeTypes {
		recordType = strings.TrimSpace(recordType)
		if recordType == "" || recordType == "*" {
			continue
		}
		scope = append(scope, recordType)
	}

	seq, committedAt, err := s.Commits.Commit(ctx)
	if err != nil {
		return entities.ConsentGrant{}, err
	}
	grant := entities.ConsentGrant{
		Owner:     owner,
		Accessor:  accessor,
		Purpose:   purpose,
		Scope:     scope,
		GrantedAt: committedAt.UTC(),
		ExpiresAt: committedAt.UTC().Add(time.Duration(cmd.DurationSeconds) * time.Second),
		CommitSeq: seq,
	}
	if err := s.Repo.PutConsent(ctx, grant); err != nil {
		return entities.ConsentGrant{}, err
	}

	ResolveLogger(s.Logger).Info("consent granted",
		"event", "consent_granted",
		"module", "health-records/consent-manager",
		"layer", "application",
		"owner", owner,
		"accessor", accessor,
		"purpose", purpose,
		"expires_at", grant.ExpiresAt,
		"commit_seq", seq,
	)
	return grant, nil
}

// RevokeConsent marks the current entry revoked, effective immediately. It
// succeeds without effect when no entry exists for the key.
func (s Service) RevokeConsent(ctx context.Context, caller string, owner string, accessor string) error {
	callerID := normalizePrincipal(caller)
	ownerID := normalizePrincipal(owner)
	accessorID := normalizePrincipal(accessor)
	if callerID == "" || ownerID == "" || accessorID == "" {
		return domainerrors.ErrInvalidConsent
	}
	if callerID != ownerID {
		return domainerrors.ErrNotOwner
	}

	_, found, err := s.Repo.GetConsent(ctx, ownerID, accessorID)
	if err != nil {
		return err
	}
	if !found {
		ResolveLogger(s.Logger).Info("consent revoke without entry",
			"event", "consent_revoke_noop",
			"module", "health-records/consent-manager",
			"layer", "application",
			"owner", ownerID,
			"accessor", accessorID,
		)
		return nil
	}

	seq, committedAt, err := s.Commits.Commit(ctx)
	if err != nil {
		return err
	}
	if _, err := s.Repo.MarkRevoked(ctx, ownerID, accessorID, committedAt.UTC(), seq); err != nil {
		return err
	}
	ResolveLogger(s.Logger).Info("consent revoked",
		"event", "consent_revoked",
		"module", "health-records/consent-manager",
		"layer", "application",
		"owner", ownerID,
		"accessor", accessorID,
		"commit_seq", seq,
	)
	return nil
}

// IsValid reports whether a live consent covers the record type right now.
// Expiry is recomputed on every call; an expired entry simply stops matching.
func (s Service) IsValid(ctx context.Context, owner string, accessor string, recordType string) (bool, error) {
	ownerID := normalizePrincipal(owner)
	accessorID := normalizePrincipal(accessor)
	if ownerID == "" || accessorID == "" {
		return false, domainerrors.ErrInvalidConsent
	}

	grant, found, err := s.Repo.GetConsent(ctx, ownerID, accessorID)
	if err != nil {
		return false, err
	}
	if !found || grant.Revoked {
		return false, nil
	}
	if !s.now().Before(grant.ExpiresAt) {
		return false, nil
	}
	return grant.CoversType(strings.TrimSpace(recordType)), nil
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}

func normalizePrincipal(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
