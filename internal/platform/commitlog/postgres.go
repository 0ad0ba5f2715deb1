package commitlog

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// Postgres serializes commits through an append-only table whose bigserial
// primary key supplies the global sequence and whose committed_at is assigned
// by the database clock.
type Postgres struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) Commit(ctx context.Context) (uint64, time.Time, error) {
	row := commitModel{}
	err := p.db.WithContext(ctx).
		Raw("INSERT INTO commit_log (committed_at) VALUES (NOW()) RETURNING seq, committed_at").
		Scan(&row).Error
	if err != nil {
		return 0, time.Time{}, err
	}
	return row.Seq, row.CommittedAt.UTC(), nil
}

type commitModel struct {
	Seq         uint64    `gorm:"column:seq"`
	CommittedAt time.Time `gorm:"column:committed_at"`
}
