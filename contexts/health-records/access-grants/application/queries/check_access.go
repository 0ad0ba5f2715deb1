package queries

import (
	"context"
	"log/slog"
	"strings"

	domainerrors "healthpass/contexts/health-records/access-grants/domain/errors"
	"healthpass/contexts/health-records/access-grants/ports"
)

// CheckAccessUseCase answers whether a standing grant is currently active.
// ACL grants are type-unscoped: an active entry covers every record type.
type CheckAccessUseCase struct {
	Repository ports.Repository
	Logger     *slog.Logger
}

func (u CheckAccessUseCase) Execute(ctx context.Context, owner string, accessor string) (bool, error) {
	ownerID := normalizePrincipal(owner)
	accessorID := normalizePrincipal(accessor)
	if ownerID == "" || accessorID == "" {
		return false, domainerrors.ErrInvalidGrant
	}
	grant, found, err := u.Repository.GetGrant(ctx, ownerID, accessorID)
	if err != nil {
		return false, err
	}
	return found && grant.Active, nil
}

func normalizePrincipal(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
