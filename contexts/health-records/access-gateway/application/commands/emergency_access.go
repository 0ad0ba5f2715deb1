package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"healthpass/contexts/health-records/access-gateway/application"
	"healthpass/contexts/health-records/access-gateway/domain/entities"
	domainerrors "healthpass/contexts/health-records/access-gateway/domain/errors"
	"healthpass/contexts/health-records/access-gateway/ports"
)

// EmergencyAccessUseCase is the break-glass path. It performs no allow-list
// or consent check at all; its only gate is durability of the audit append.
// The append is committed before any record is read, so there is no state in
// which records were released without a matching audit entry.
type EmergencyAccessUseCase struct {
	Records     ports.RecordSource
	Audit       ports.AuditLog
	Commits     ports.CommitLog
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

// EmergencyAccessResult carries the released records together with the audit
// entry that authorized the release.
type EmergencyAccessResult struct {
	Records []ports.RecordView
	Event   entities.EmergencyAccessEvent
}

func (uc EmergencyAccessUseCase) Execute(ctx context.Context, accessor string, subject string) (EmergencyAccessResult, error) {
	accessorID := normalizePrincipal(accessor)
	subjectID := normalizePrincipal(subject)
	if accessorID == "" || subjectID == "" {
		return EmergencyAccessResult{}, domainerrors.ErrInvalidRequest
	}

	outboxID, err := uc.IDGenerator.NewID(ctx)
	if err != nil {
		return EmergencyAccessResult{}, err
	}

	seq, committedAt, err := uc.Commits.Commit(ctx)
	if err != nil {
		return EmergencyAccessResult{}, fmt.Errorf("%w: %v", domainerrors.ErrAuditUnavailable, err)
	}

	event := entities.EmergencyAccessEvent{
		EventID:        outboxID,
		Accessor:       accessorID,
		Subject:        subjectID,
		CommittedAt:    committedAt.UTC(),
		SequenceNumber: seq,
	}
	payload, err := json.Marshal(ports.EmergencyAccessedPayload{
		Accessor:   accessorID,
		Subject:    subjectID,
		CommitSeq:  seq,
		AccessedAt: event.CommittedAt,
	})
	if err != nil {
		return EmergencyAccessResult{}, err
	}

	if err := uc.Audit.AppendEvent(ctx, ports.AuditAppendInput{
		Event:        event,
		OutboxID:     outboxID,
		EventType:    ports.TopicEmergencyAccessed,
		EventPayload: payload,
	}); err != nil {
		application.ResolveLogger(uc.Logger).Error("emergency audit append failed",
			"event", "emergency_audit_append_failed",
			"module", "health-records/access-gateway",
			"layer", "application",
			"accessor", accessorID,
			"subject", subjectID,
			"error", err.Error(),
		)
		return EmergencyAccessResult{}, fmt.Errorf("%w: %v", domainerrors.ErrAuditUnavailable, err)
	}

	records, err := uc.Records.ListRecords(ctx, subjectID)
	if err != nil {
		return EmergencyAccessResult{}, err
	}
	if records == nil {
		records = []ports.RecordView{}
	}

	application.ResolveLogger(uc.Logger).Warn("emergency access granted",
		"event", "emergency_access_granted",
		"module", "health-records/access-gateway",
		"layer", "application",
		"accessor", accessorID,
		"subject", subjectID,
		"sequence_number", seq,
		"records", len(records),
	)
	return EmergencyAccessResult{Records: records, Event: event}, nil
}

func normalizePrincipal(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
