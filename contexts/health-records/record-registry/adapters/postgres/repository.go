package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"healthpass/contexts/health-records/record-registry/domain/entities"
	domainerrors "healthpass/contexts/health-records/record-registry/domain/errors"
	"healthpass/contexts/health-records/record-registry/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

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

func (r *Repository) AppendRecord(ctx context.Context, input ports.AddRecordInput) (entities.Record, error) {
	row := recordModel{
		ID:          input.RecordID,
		Owner:       input.Owner,
		ContentRef:  input.ContentRef,
		RecordType:  input.RecordType,
		Description: input.Description,
		CreatedAt:   input.CreatedAt.UTC(),
		CommitSeq:   input.CommitSeq,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return entities.Record{}, domainerrors.ErrIdempotencyConflict
		}
		return entities.Record{}, r.logError("records_repo_append_failed", err,
			"record_id", input.RecordID,
			"owner", input.Owner,
		)
	}
	return row.toEntity(), nil
}

func (r *Repository) ListRecords(ctx context.Context, owner string) ([]entities.Record, error) {
	var rows []recordModel
	if err := r.db.WithContext(ctx).
		Where("owner = ?", strings.TrimSpace(owner)).
		Order("commit_seq ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("records_repo_list_failed", err, "owner", owner)
	}
	items := make([]entities.Record, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) Get(ctx context.Context, key string, now time.Time) (ports.IdempotencyRecord, bool, error) {
	var row idempotencyModel
	err := r.db.WithContext(ctx).
		Where("key = ?", key).
		Where("expires_at > ?", now.UTC()).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.IdempotencyRecord{}, false, nil
		}
		return ports.IdempotencyRecord{}, false, r.logError("records_repo_idempotency_get_failed", err, "key", key)
	}
	return ports.IdempotencyRecord{
		Key:         row.Key,
		RequestHash: row.RequestHash,
		Payload:     row.Payload,
		ExpiresAt:   row.ExpiresAt,
	}, true, nil
}

func (r *Repository) Put(ctx context.Context, record ports.IdempotencyRecord) error {
	row := idempotencyModel{
		Key:         record.Key,
		RequestHash: record.RequestHash,
		Payload:     record.Payload,
		ExpiresAt:   record.ExpiresAt.UTC(),
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key"}},
		DoUpdates: clause.Assignments(map[string]any{
			"request_hash": row.RequestHash,
			"payload":      row.Payload,
			"expires_at":   row.ExpiresAt,
		}),
	}).Create(&row).Error
	if err != nil {
		return r.logError("records_repo_idempotency_put_failed", err, "key", record.Key)
	}
	return nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "health-records/record-registry",
		"layer", "adapter",
		"error", err.Error(),
	}, args...)
	r.logger.Error("record registry repository failure", fields...)
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

type recordModel struct {
	ID          string    `gorm:"column:id;primaryKey"`
	Owner       string    `gorm:"column:owner;index"`
	ContentRef  string    `gorm:"column:content_ref"`
	RecordType  string    `gorm:"column:record_type"`
	Description string    `gorm:"column:description"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	CommitSeq   uint64    `gorm:"column:commit_seq;uniqueIndex"`
}

func (recordModel) TableName() string {
	return "health_records"
}

func (m recordModel) toEntity() entities.Record {
	return entities.Record{
		RecordID:    m.ID,
		Owner:       m.Owner,
		ContentRef:  m.ContentRef,
		RecordType:  m.RecordType,
		Description: m.Description,
		CreatedAt:   m.CreatedAt.UTC(),
		CommitSeq:   m.CommitSeq,
	}
}

type idempotencyModel struct {
	Key         string    `gorm:"column:key;primaryKey"`
	RequestHash string    `gorm:"column:request_hash"`
	Payload     []byte    `gorm:"column:payload"`
	ExpiresAt   time.Time `gorm:"column:expires_at"`
}

func (idempotencyModel) TableName() string {
	return "record_registry_idempotency"
}
