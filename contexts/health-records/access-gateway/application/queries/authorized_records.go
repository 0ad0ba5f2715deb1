package queries

import (
	"context"
	"log/slog"

	"healthpass/contexts/health-records/access-gateway/application"
	domainerrors "healthpass/contexts/health-records/access-gateway/domain/errors"
	"healthpass/contexts/health-records/access-gateway/ports"
)

// AuthorizedRecordsQuery releases a subject's records to callers that pass
// the merged authorization decision. The owner always passes.
type AuthorizedRecordsQuery struct {
	Records       ports.RecordSource
	Authorization AuthorizationQuery
	Logger        *slog.Logger
}

// GetAuthorizedRecords returns the subject's full record set or
// ErrUnauthorized. The denial does not reveal whether any records exist.
func (q AuthorizedRecordsQuery) GetAuthorizedRecords(ctx context.Context, owner string, caller string) ([]ports.RecordView, error) {
	ownerID := normalizePrincipal(owner)
	callerID := normalizePrincipal(caller)
	if ownerID == "" || callerID == "" {
		return nil, domainerrors.ErrInvalidRequest
	}

	if callerID != ownerID {
		authorized, err := q.Authorization.IsAuthorized(ctx, ownerID, callerID)
		if err != nil {
			return nil, err
		}
		if !authorized {
			application.ResolveLogger(q.Logger).Info("record read denied",
				"event", "record_read_denied",
				"module", "health-records/access-gateway",
				"layer", "application",
				"owner", ownerID,
				"caller", callerID,
			)
			return nil, domainerrors.ErrUnauthorized
		}
	}

	records, err := q.Records.ListRecords(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []ports.RecordView{}
	}
	return records, nil
}
