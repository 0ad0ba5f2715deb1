package application

import (
	"context"
	"log/slog"
	"strings"

	"healthpass/contexts/identity-access/profile-directory/domain/entities"
	domainerrors "healthpass/contexts/identity-access/profile-directory/domain/errors"
	"healthpass/contexts/identity-access/profile-directory/ports"
)

const defaultDisplayName = "Anonymous User"

type Service struct {
	Repo    ports.Repository
	Commits ports.CommitLog
	Logger  *slog.Logger
}

type UpsertProfileCommand struct {
	Caller    string
	Principal string
	Name      string
	Email     string
	Role      string
}

// UpsertProfile creates or overwrites the caller's own profile. A blank name
// falls back to a placeholder and a blank role defaults to patient.
func (s Service) UpsertProfile(ctx context.Context, cmd UpsertProfileCommand) (entities.Profile, error) {
	caller := normalizePrincipal(cmd.Caller)
	principal := normalizePrincipal(cmd.Principal)
	if caller == "" || principal == "" {
		return entities.Profile{}, domainerrors.ErrInvalidProfile
	}
	if caller != principal {
		return entities.Profile{}, domainerrors.ErrNotOwner
	}

	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		name = defaultDisplayName
	}
	email := strings.ToLower(strings.TrimSpace(cmd.Email))
	role := strings.ToLower(strings.TrimSpace(cmd.Role))
	if role == "" {
		role = ports.RolePatient
	}
	if !ports.IsValidRole(role) {
		return entities.Profile{}, domainerrors.ErrInvalidProfile
	}

	seq, committedAt, err := s.Commits.Commit(ctx)
	if err != nil {
		return entities.Profile{}, err
	}
	profile, err := s.Repo.PutProfile(ctx, entities.Profile{
		Principal: principal,
		Name:      name,
		Email:     email,
		Role:      role,
		CreatedAt: committedAt.UTC(),
		UpdatedAt: committedAt.UTC(),
		CommitSeq: seq,
	})
	if err != nil {
		return entities.Profile{}, err
	}

	ResolveLogger(s.Logger).Info("profile upserted",
		"event", "profile_upserted",
		"module", "identity-access/profile-directory",
		"layer", "application",
		"principal", principal,
		"role", role,
		"commit_seq", seq,
	)
	return profile, nil
}

// GetProfile returns the stored profile or ErrProfileNotFound.
func (s Service) GetProfile(ctx context.Context, principal string) (entities.Profile, error) {
	principalID := normalizePrincipal(principal)
	if principalID == "" {
		return entities.Profile{}, domainerrors.ErrInvalidProfile
	}
	profile, found, err := s.Repo.GetProfile(ctx, principalID)
	if err != nil {
		return entities.Profile{}, err
	}
	if !found {
		return entities.Profile{}, domainerrors.ErrProfileNotFound
	}
	return profile, nil
}

func normalizePrincipal(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
