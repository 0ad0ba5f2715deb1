package queries

import (
	"context"
	"log/slog"
	"strings"

	domainerrors "healthpass/contexts/health-records/access-gateway/domain/errors"
	"healthpass/contexts/health-records/access-gateway/ports"
)

// AuthorizationQuery merges the two grant mechanisms. A standing allow-list
// entry authorizes every record type; a consent authorizes only what its
// scope covers.
type AuthorizationQuery struct {
	ACL     ports.StandingAccessChecker
	Consent ports.ConsentChecker
	Logger  *slog.Logger
}

// IsAuthorized reports whether the accessor may read any of the owner's
// records right now.
func (q AuthorizationQuery) IsAuthorized(ctx context.Context, owner string, accessor string) (bool, error) {
	return q.IsAuthorizedFor(ctx, owner, accessor, "*")
}

// IsAuthorizedFor is the type-scoped variant.
func (q AuthorizationQuery) IsAuthorizedFor(ctx context.Context, owner string, accessor string, recordType string) (bool, error) {
	ownerID := normalizePrincipal(owner)
	accessorID := normalizePrincipal(accessor)
	if ownerID == "" || accessorID == "" {
		return false, domainerrors.ErrInvalidRequest
	}
	if ownerID == accessorID {
		return true, nil
	}

	standing, err := q.ACL.IsActive(ctx, ownerID, accessorID)
	if err != nil {
		return false, err
	}
	if standing {
		return true, nil
	}
	return q.Consent.IsValid(ctx, ownerID, accessorID, recordType)
}

func normalizePrincipal(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
