package postgresadapter

import (
	"context"
	"log/slog"
	"time"

	"healthpass/contexts/health-records/access-gateway/domain/entities"
	"healthpass/contexts/health-records/access-gateway/ports"

	"gorm.io/gorm"
)

const outboxStatusPending = "pending"
const outboxStatusSent = "sent"

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// AppendEvent inserts the audit event and its outbox row inside one
// transaction. The event row is never updated or deleted afterwards.
func (r *Repository) AppendEvent(ctx context.Context, input ports.AuditAppendInput) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&auditEventModel{
			EventID:        input.Event.EventID,
			Accessor:       input.Event.Accessor,
			Subject:        input.Event.Subject,
			CommittedAt:    input.Event.CommittedAt.UTC(),
			SequenceNumber: input.Event.SequenceNumber,
		}).Error; err != nil {
			return err
		}
		return tx.Create(&auditOutboxModel{
			ID:           input.OutboxID,
			EventType:    input.EventType,
			PartitionKey: input.Event.Subject,
			Payload:      input.EventPayload,
			Status:       outboxStatusPending,
			CreatedAt:    input.Event.CommittedAt.UTC(),
		}).Error
	})
	if err != nil {
		return r.logError("access_gateway_repo_append_failed", err,
			"accessor", input.Event.Accessor,
			"subject", input.Event.Subject,
		)
	}
	return nil
}

func (r *Repository) ListBySubject(ctx context.Context, subject string) ([]entities.EmergencyAccessEvent, error) {
	var rows []auditEventModel
	if err := r.db.WithContext(ctx).
		Where("subject = ?", subject).
		Order("sequence_number ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("access_gateway_repo_list_failed", err, "subject", subject)
	}
	events := make([]entities.EmergencyAccessEvent, 0, len(rows))
	for _, row := range rows {
		events = append(events, row.toEntity())
	}
	return events, nil
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	var rows []auditOutboxModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", outboxStatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, r.logError("access_gateway_repo_outbox_list_failed", err)
	}
	pending := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		pending = append(pending, ports.OutboxMessage{
			OutboxID:     row.ID,
			EventType:    row.EventType,
			PartitionKey: row.PartitionKey,
			Payload:      row.Payload,
			CreatedAt:    row.CreatedAt.UTC(),
		})
	}
	return pending, nil
}

func (r *Repository) MarkOutboxSent(ctx context.Context, outboxID string, sentAt time.Time) error {
	err := r.db.WithContext(ctx).
		Model(&auditOutboxModel{}).
		Where("id = ?", outboxID).
		Updates(map[string]any{
			"status":  outboxStatusSent,
			"sent_at": sentAt.UTC(),
		}).Error
	if err != nil {
		return r.logError("access_gateway_repo_outbox_mark_failed", err, "outbox_id", outboxID)
	}
	return nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "health-records/access-gateway",
		"layer", "adapter",
		"error", err.Error(),
	}, args...)
	r.logger.Error("access gateway repository failure", fields...)
	return err
}

type auditEventModel struct {
	EventID        string    `gorm:"column:event_id;primaryKey"`
	Accessor       string    `gorm:"column:accessor;index"`
	Subject        string    `gorm:"column:subject;index"`
	CommittedAt    time.Time `gorm:"column:committed_at"`
	SequenceNumber uint64    `gorm:"column:sequence_number;uniqueIndex"`
}

func (auditEventModel) TableName() string {
	return "emergency_access_events"
}

func (m auditEventModel) toEntity() entities.EmergencyAccessEvent {
	return entities.EmergencyAccessEvent{
		EventID:        m.EventID,
		Accessor:       m.Accessor,
		Subject:        m.Subject,
		CommittedAt:    m.CommittedAt.UTC(),
		SequenceNumber: m.SequenceNumber,
	}
}

type auditOutboxModel struct {
	ID           string     `gorm:"column:id;primaryKey"`
	EventType    string     `gorm:"column:event_type"`
	PartitionKey string     `gorm:"column:partition_key"`
	Payload      []byte     `gorm:"column:payload"`
	Status       string     `gorm:"column:status;index"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	SentAt       *time.Time `gorm:"column:sent_at"`
}

func (auditOutboxModel) TableName() string {
	return "emergency_access_outbox"
}

var (
	_ ports.AuditLog         = (*Repository)(nil)
	_ ports.OutboxRepository = (*Repository)(nil)
)
