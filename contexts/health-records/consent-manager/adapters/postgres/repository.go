package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"healthpass/contexts/health-records/consent-manager/domain/entities"
	"healthpass/contexts/health-records/consent-manager/ports"

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

var _ ports.Repository = (*Repository)(nil)

func (r *Repository) PutConsent(ctx context.Context, grant entities.ConsentGrant) error {
	scope, err := json.Marshal(grant.Scope)
	if err != nil {
		return err
	}
	row := consentModel{
		Owner:     grant.Owner,
		Accessor:  grant.Accessor,
		Purpose:   grant.Purpose,
		Scope:     scope,
		GrantedAt: grant.GrantedAt.UTC(),
		ExpiresAt: grant.ExpiresAt.UTC(),
		Revoked:   false,
		RevokedAt: nil,
		CommitSeq: grant.CommitSeq,
	}
	err = r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "owner"}, {Name: "accessor"}},
		DoUpdates: clause.Assignments(map[string]any{
			"purpose":    row.Purpose,
			"scope":      row.Scope,
			"granted_at": row.GrantedAt,
			"expires_at": row.ExpiresAt,
			"revoked":    false,
			"revoked_at": nil,
			"commit_seq": row.CommitSeq,
		}),
	}).Create(&row).Error
	if err != nil {
		return r.logError("consent_repo_put_failed", err,
			"owner", grant.Owner,
			"accessor", grant.Accessor,
		)
	}
	return nil
}

func (r *Repository) GetConsent(ctx context.Context, owner string, accessor string) (entities.ConsentGrant, bool, error) {
	var row consentModel
	err := r.db.WithContext(ctx).
		Where("owner = ?", owner).
		Where("accessor = ?", accessor).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.ConsentGrant{}, false, nil
		}
		return entities.ConsentGrant{}, false, r.logError("consent_repo_get_failed", err,
			"owner", owner,
			"accessor", accessor,
		)
	}
	grant, err := row.toEntity()
	if err != nil {
		return entities.ConsentGrant{}, false, r.logError("consent_repo_decode_failed", err,
			"owner", owner,
			"accessor", accessor,
		)
	}
	return grant, true, nil
}

func (r *Repository) MarkRevoked(ctx context.Context, owner string, accessor string, revokedAt time.Time, commitSeq uint64) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&consentModel{}).
		Where("owner = ?", owner).
		Where("accessor = ?", accessor).
		Updates(map[string]any{
			"revoked":    true,
			"revoked_at": revokedAt.UTC(),
			"commit_seq": commitSeq,
		})
	if result.Error != nil {
		return false, r.logError("consent_repo_revoke_failed", result.Error,
			"owner", owner,
			"accessor", accessor,
		)
	}
	return result.RowsAffected > 0, nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "health-records/consent-manager",
		"layer", "adapter",
		"error", err.Error(),
	}, args...)
	r.logger.Error("consent repository failure", fields...)
	return err
}

type consentModel struct {
	Owner     string     `gorm:"column:owner;primaryKey"`
	Accessor  string     `gorm:"column:accessor;primaryKey"`
	Purpose   string     `gorm:"column:purpose"`
	Scope     []byte     `gorm:"column:scope"`
	GrantedAt time.Time  `gorm:"column:granted_at"`
	ExpiresAt time.Time  `gorm:"column:expires_at"`
	Revoked   bool       `gorm:"column:revoked"`
	RevokedAt *time.Time `gorm:"column:revoked_at"`
	CommitSeq uint64     `gorm:"column:commit_seq"`
}

func (consentModel) TableName() string {
	return "consent_grants"
}

func (m consentModel) toEntity() (entities.ConsentGrant, error) {
	var scope []string
	if len(m.Scope) > 0 {
		if err := json.Unmarshal(m.Scope, &scope); err != nil {
			return entities.ConsentGrant{}, err
		}
	}
	return entities.ConsentGrant{
		Owner:     m.Owner,
		Accessor:  m.Accessor,
		Purpose:   m.Purpose,
		Scope:     scope,
		GrantedAt: m.GrantedAt.UTC(),
		ExpiresAt: m.ExpiresAt.UTC(),
		Revoked:   m.Revoked,
		RevokedAt: m.RevokedAt,
		CommitSeq: m.CommitSeq,
	}, nil
}
