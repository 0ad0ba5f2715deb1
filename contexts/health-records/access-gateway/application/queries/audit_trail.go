package queries

import (
	"context"

	"healthpass/contexts/health-records/access-gateway/domain/entities"
	domainerrors "healthpass/contexts/health-records/access-gateway/domain/errors"
	"healthpass/contexts/health-records/access-gateway/ports"
)

// AuditTrailQuery reads the emergency access trail for one subject, oldest
// first by sequence number.
type AuditTrailQuery struct {
	Audit ports.AuditLog
}

func (q AuditTrailQuery) ListBySubject(ctx context.Context, subject string) ([]entities.EmergencyAccessEvent, error) {
	subjectID := normalizePrincipal(subject)
	if subjectID == "" {
		return nil, domainerrors.ErrInvalidRequest
	}
	events, err := q.Audit.ListBySubject(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	if events == nil {
		events = []entities.EmergencyAccessEvent{}
	}
	return events, nil
}
