package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"healthpass/contexts/identity-access/profile-directory/domain/entities"
	"healthpass/contexts/identity-access/profile-directory/ports"

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

// PutProfile upserts the row, leaving created_at untouched on conflict.
func (r *Repository) PutProfile(ctx context.Context, profile entities.Profile) (entities.Profile, error) {
	row := profileModel{
		Principal: profile.Principal,
		Name:      profile.Name,
		Email:     profile.Email,
		Role:      profile.Role,
		CreatedAt: profile.CreatedAt.UTC(),
		UpdatedAt: profile.UpdatedAt.UTC(),
		CommitSeq: profile.CommitSeq,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "principal"}},
		DoUpdates: clause.Assignments(map[string]any{
			"name":       row.Name,
			"email":      row.Email,
			"role":       row.Role,
			"updated_at": row.UpdatedAt,
			"commit_seq": row.CommitSeq,
		}),
	}).Create(&row).Error
	if err != nil {
		return entities.Profile{}, r.logError("profile_directory_repo_put_failed", err, "principal", profile.Principal)
	}

	var stored profileModel
	if err := r.db.WithContext(ctx).
		Where("principal = ?", profile.Principal).
		First(&stored).Error; err != nil {
		return entities.Profile{}, r.logError("profile_directory_repo_reload_failed", err, "principal", profile.Principal)
	}
	return stored.toEntity(), nil
}

func (r *Repository) GetProfile(ctx context.Context, principal string) (entities.Profile, bool, error) {
	var row profileModel
	err := r.db.WithContext(ctx).
		Where("principal = ?", principal).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Profile{}, false, nil
		}
		return entities.Profile{}, false, r.logError("profile_directory_repo_get_failed", err, "principal", principal)
	}
	return row.toEntity(), true, nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "identity-access/profile-directory",
		"layer", "adapter",
		"error", err.Error(),
	}, args...)
	r.logger.Error("profile directory repository failure", fields...)
	return err
}

type profileModel struct {
	Principal string    `gorm:"column:principal;primaryKey"`
	Name      string    `gorm:"column:name"`
	Email     string    `gorm:"column:email"`
	Role      string    `gorm:"column:role"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
	CommitSeq uint64    `gorm:"column:commit_seq"`
}

func (profileModel) TableName() string {
	return "principal_profiles"
}

func (m profileModel) toEntity() entities.Profile {
	return entities.Profile{
		Principal: m.Principal,
		Name:      m.Name,
		Email:     m.Email,
		Role:      m.Role,
		CreatedAt: m.CreatedAt.UTC(),
		UpdatedAt: m.UpdatedAt.UTC(),
		CommitSeq: m.CommitSeq,
	}
}

var _ ports.Repository = (*Repository)(nil)
