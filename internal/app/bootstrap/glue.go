package bootstrap

import (
	"context"

	gatewayports "healthpass/contexts/health-records/access-gateway/ports"
	grantqueries "healthpass/contexts/health-records/access-grants/application/queries"
	recordports "healthpass/contexts/health-records/record-registry/ports"
)

// The gateway declares its own read ports so it never imports sibling
// modules. These adapters bridge each sibling's composition root onto those
// ports at wiring time.

type recordSourceAdapter struct {
	repo recordports.Repository
}

func (a recordSourceAdapter) ListRecords(ctx context.Context, owner string) ([]gatewayports.RecordView, error) {
	records, err := a.repo.ListRecords(ctx, owner)
	if err != nil {
		return nil, err
	}
	views := make([]gatewayports.RecordView, 0, len(records))
	for _, record := range records {
		views = append(views, gatewayports.RecordView{
			RecordID:    record.RecordID,
			Owner:       record.Owner,
			ContentRef:  record.ContentRef,
			RecordType:  record.RecordType,
			Description: record.Description,
			CreatedAt:   record.CreatedAt,
			CommitSeq:   record.CommitSeq,
		})
	}
	return views, nil
}

type standingAccessAdapter struct {
	check grantqueries.CheckAccessUseCase
}

func (a standingAccessAdapter) IsActive(ctx context.Context, owner string, accessor string) (bool, error) {
	return a.check.Execute(ctx, owner, accessor)
}
