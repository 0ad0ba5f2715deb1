package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"healthpass/contexts/health-records/access-grants/domain/entities"
	"healthpass/contexts/health-records/access-grants/ports"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
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

// SetGrant overwrites the grant row and appends the outbox row inside one
// transaction so a grant change can never commit without its notification.
func (r *Repository) SetGrant(ctx context.Context, input ports.GrantMutationInput) (entities.AccessGrant, error) {
	row := grantModel{
		Owner:     input.Owner,
		Accessor:  input.Accessor,
		Active:    input.Active,
		UpdatedAt: input.CommittedAt.UTC(),
		CommitSeq: input.CommitSeq,
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "owner"}, {Name: "accessor"}},
			DoUpdates: clause.Assignments(map[string]any{
				"active":     row.Active,
				"updated_at": row.UpdatedAt,
				"commit_seq": row.CommitSeq,
			}),
		}).Create(&row).Error; err != nil {
			return err
		}
		return tx.Create(&grantOutboxModel{
			ID:           input.OutboxID,
			EventType:    input.EventType,
			PartitionKey: input.Owner,
			Payload:      input.EventPayload,
			Status:       outboxStatusPending,
			CreatedAt:    input.CommittedAt.UTC(),
		}).Error
	})
	if err != nil {
		return entities.AccessGrant{}, r.logError("access_grants_repo_set_failed", err,
			"owner", input.Owner,
			"accessor", input.Accessor,
		)
	}
	return row.toEntity(), nil
}

func (r *Repository) GetGrant(ctx context.Context, owner string, accessor string) (entities.AccessGrant, bool, error) {
	var row grantModel
	err := r.db.WithContext(ctx).
		Where("owner = ?", owner).
		Where("accessor = ?", accessor).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.AccessGrant{}, false, nil
		}
		return entities.AccessGrant{}, false, r.logError("access_grants_repo_get_failed", err,
			"owner", owner,
			"accessor", accessor,
		)
	}
	return row.toEntity(), true, nil
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	var rows []grantOutboxModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", outboxStatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, r.logError("access_grants_repo_outbox_list_failed", err)
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
		Model(&grantOutboxModel{}).
		Where("id = ?", outboxID).
		Updates(map[string]any{
			"status":  outboxStatusSent,
			"sent_at": sentAt.UTC(),
		}).Error
	if err != nil {
		return r.logError("access_grants_repo_outbox_mark_failed", err, "outbox_id", outboxID)
	}
	return nil
}

func (r *Repository) Apply(ctx context.Context, payload ports.GrantChangedPayload) error {
	row := grantProjectionModel{
		Owner:     payload.Owner,
		Accessor:  payload.Accessor,
		Active:    payload.Active,
		CommitSeq: payload.CommitSeq,
		ChangedAt: payload.ChangedAt.UTC(),
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "owner"}, {Name: "accessor"}},
		DoUpdates: clause.Assignments(map[string]any{
			"active":     row.Active,
			"commit_seq": row.CommitSeq,
			"changed_at": row.ChangedAt,
		}),
		Where: clause.Where{
			Exprs: []clause.Expression{
				clause.Lt{Column: "access_grant_projection.commit_seq", Value: row.CommitSeq},
			},
		},
	}).Create(&row).Error
	if err != nil {
		return r.logError("access_grants_repo_projection_apply_failed", err,
			"owner", payload.Owner,
			"accessor", payload.Accessor,
		)
	}
	return nil
}

func (r *Repository) ListActiveAccessors(ctx context.Context, owner string) ([]string, error) {
	var accessors []string
	err := r.db.WithContext(ctx).
		Model(&grantProjectionModel{}).
		Where("owner = ?", owner).
		Where("active = ?", true).
		Order("accessor ASC").
		Pluck("accessor", &accessors).
		Error
	if err != nil {
		return nil, r.logError("access_grants_repo_projection_list_failed", err, "owner", owner)
	}
	return accessors, nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "health-records/access-grants",
		"layer", "adapter",
		"error", err.Error(),
	}, args...)
	r.logger.Error("access grants repository failure", fields...)
	return err
}

type grantModel struct {
	Owner     string    `gorm:"column:owner;primaryKey"`
	Accessor  string    `gorm:"column:accessor;primaryKey"`
	Active    bool      `gorm:"column:active"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
	CommitSeq uint64    `gorm:"column:commit_seq"`
}

func (grantModel) TableName() string {
	return "access_grants"
}

func (m grantModel) toEntity() entities.AccessGrant {
	return entities.AccessGrant{
		Owner:     m.Owner,
		Accessor:  m.Accessor,
		Active:    m.Active,
		UpdatedAt: m.UpdatedAt.UTC(),
		CommitSeq: m.CommitSeq,
	}
}

type grantOutboxModel struct {
	ID           string     `gorm:"column:id;primaryKey"`
	EventType    string     `gorm:"column:event_type"`
	PartitionKey string     `gorm:"column:partition_key"`
	Payload      []byte     `gorm:"column:payload"`
	Status       string     `gorm:"column:status;index"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	SentAt       *time.Time `gorm:"column:sent_at"`
}

func (grantOutboxModel) TableName() string {
	return "access_grant_outbox"
}

type grantProjectionModel struct {
	Owner     string    `gorm:"column:owner;primaryKey"`
	Accessor  string    `gorm:"column:accessor;primaryKey"`
	Active    bool      `gorm:"column:active"`
	CommitSeq uint64    `gorm:"column:commit_seq"`
	ChangedAt time.Time `gorm:"column:changed_at"`
}

func (grantProjectionModel) TableName() string {
	return "access_grant_projection"
}
