package httpadapter

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"healthpass/contexts/health-records/access-gateway/application/commands"
	"healthpass/contexts/health-records/access-gateway/application/queries"
	"healthpass/contexts/health-records/access-gateway/domain/entities"
	"healthpass/contexts/health-records/access-gateway/ports"
	httptransport "healthpass/contexts/health-records/access-gateway/transport/http"
)

type Handler struct {
	Authorization queries.AuthorizationQuery
	Records       queries.AuthorizedRecordsQuery
	AuditTrail    queries.AuditTrailQuery
	Emergency     commands.EmergencyAccessUseCase
	Logger        *slog.Logger
}

func (h Handler) CheckAuthorizationHandler(
	ctx context.Context,
	owner string,
	accessor string,
	recordType string,
) (httptransport.CheckAuthorizationResponse, error) {
	if strings.TrimSpace(recordType) == "" {
		recordType = "*"
	}
	authorized, err := h.Authorization.IsAuthorizedFor(ctx, owner, accessor, recordType)
	if err != nil {
		return httptransport.CheckAuthorizationResponse{}, err
	}
	resp := httptransport.CheckAuthorizationResponse{Status: "success"}
	resp.Data.Owner = strings.ToLower(strings.TrimSpace(owner))
	resp.Data.Accessor = strings.ToLower(strings.TrimSpace(accessor))
	resp.Data.RecordType = recordType
	resp.Data.Authorized = authorized
	return resp, nil
}

func (h Handler) AuthorizedRecordsHandler(
	ctx context.Context,
	caller string,
	owner string,
) (httptransport.AuthorizedRecordsResponse, error) {
	records, err := h.Records.GetAuthorizedRecords(ctx, owner, caller)
	if err != nil {
		return httptransport.AuthorizedRecordsResponse{}, err
	}
	resp := httptransport.AuthorizedRecordsResponse{Status: "success"}
	resp.Data.Owner = strings.ToLower(strings.TrimSpace(owner))
	resp.Data.Records = recordsToDTO(records)
	return resp, nil
}

func (h Handler) EmergencyAccessHandler(
	ctx context.Context,
	accessor string,
	subject string,
) (httptransport.EmergencyAccessResponse, error) {
	result, err := h.Emergency.Execute(ctx, accessor, subject)
	if err != nil {
		return httptransport.EmergencyAccessResponse{}, err
	}
	resp := httptransport.EmergencyAccessResponse{Status: "success"}
	resp.Data.AuditEvent = auditEventToDTO(result.Event)
	resp.Data.Records = recordsToDTO(result.Records)
	return resp, nil
}

func (h Handler) AuditTrailHandler(
	ctx context.Context,
	subject string,
) (httptransport.AuditTrailResponse, error) {
	events, err := h.AuditTrail.ListBySubject(ctx, subject)
	if err != nil {
		return httptransport.AuditTrailResponse{}, err
	}
	resp := httptransport.AuditTrailResponse{Status: "success"}
	resp.Data.Subject = strings.ToLower(strings.TrimSpace(subject))
	resp.Data.Events = make([]httptransport.AuditEventDTO, 0, len(events))
	for _, event := range events {
		resp.Data.Events = append(resp.Data.Events, auditEventToDTO(event))
	}
	return resp, nil
}

func recordsToDTO(records []ports.RecordView) []httptransport.RecordDTO {
	dtos := make([]httptransport.RecordDTO, 0, len(records))
	for _, record := range records {
		dtos = append(dtos, httptransport.RecordDTO{
			RecordID:    record.RecordID,
			Owner:       record.Owner,
			ContentRef:  record.ContentRef,
			RecordType:  record.RecordType,
			Description: record.Description,
			CreatedAt:   record.CreatedAt.UTC().Format(time.RFC3339),
			CommitSeq:   record.CommitSeq,
		})
	}
	return dtos
}

func auditEventToDTO(event entities.EmergencyAccessEvent) httptransport.AuditEventDTO {
	return httptransport.AuditEventDTO{
		EventID:        event.EventID,
		Accessor:       event.Accessor,
		Subject:        event.Subject,
		CommittedAt:    event.CommittedAt.UTC().Format(time.RFC3339),
		SequenceNumber: event.SequenceNumber,
	}
}
