package queries

import (
	"context"
	"log/slog"

	domainerrors "healthpass/contexts/health-records/access-grants/domain/errors"
	"healthpass/contexts/health-records/access-grants/ports"
)

// ListAccessorsUseCase reads the materialized active-grants view built by the
// projection worker. The write path never serves this query directly.
type ListAccessorsUseCase struct {
	Projection ports.GrantsProjection
	Logger     *slog.Logger
}

func (u ListAccessorsUseCase) Execute(ctx context.Context, owner string) ([]string, error) {
	ownerID := normalizePrincipal(owner)
	if ownerID == "" {
		return nil, domainerrors.ErrInvalidGrant
	}
	return u.Projection.ListActiveAccessors(ctx, ownerID)
}
