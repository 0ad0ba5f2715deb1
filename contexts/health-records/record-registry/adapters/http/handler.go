package httpadapter

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"healthpass/contexts/health-records/record-registry/application"
	"healthpass/contexts/health-records/record-registry/domain/entities"
	httptransport "healthpass/contexts/health-records/record-registry/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) AddRecordHandler(
	ctx context.Context,
	caller string,
	owner string,
	idempotencyKey string,
	req httptransport.AddRecordRequest,
) (httptransport.AddRecordResponse, error) {
	record, err := h.Service.AddRecord(ctx, application.AddRecordCommand{
		IdempotencyKey: idempotencyKey,
		Caller:         caller,
		Owner:          owner,
		ContentRef:     strings.TrimSpace(req.ContentRef),
		RecordType:     strings.TrimSpace(req.RecordType),
		Description:    req.Description,
	})
	if err != nil {
		return httptransport.AddRecordResponse{}, err
	}
	return httptransport.AddRecordResponse{
		Status: "success",
		Data:   recordToDTO(record),
	}, nil
}

func (h Handler) ListRecordsHandler(
	ctx context.Context,
	caller string,
	owner string,
) (httptransport.ListRecordsResponse, error) {
	records, err := h.Service.ListRecords(ctx, caller, owner)
	if err != nil {
		return httptransport.ListRecordsResponse{}, err
	}
	resp := httptransport.ListRecordsResponse{Status: "success"}
	resp.Data.Owner = strings.ToLower(strings.TrimSpace(owner))
	resp.Data.Records = make([]httptransport.RecordDTO, 0, len(records))
	for _, record := range records {
		resp.Data.Records = append(resp.Data.Records, recordToDTO(record))
	}
	return resp, nil
}

func recordToDTO(record entities.Record) httptransport.RecordDTO {
	return httptransport.RecordDTO{
		RecordID:    record.RecordID,
		Owner:       record.Owner,
		ContentRef:  record.ContentRef,
		RecordType:  record.RecordType,
		Description: record.Description,
		CreatedAt:   record.CreatedAt.UTC().Format(time.RFC3339),
		CommitSeq:   record.CommitSeq,
	}
}
