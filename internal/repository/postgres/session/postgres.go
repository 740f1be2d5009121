package session

import (
	"context"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "team-tracker-go/internal/domain/session"
)

// record mirrors the sid/sess/expire layout used by connect-pg-simple style session tables.
type record struct {
	SID    string                          `gorm:"column:sid;primaryKey"`
	Sess   datatypes.JSONType[domain.Data] `gorm:"column:sess;not null"`
	Expire time.Time                       `gorm:"column:expire;not null"`
}

func (record) TableName() string {
	return "sessions"
}

type PostgresStore struct {
	db  *gorm.DB
	now func() time.Time
}

func NewPostgres(db *gorm.DB) *PostgresStore {
	return &PostgresStore{db: db, now: time.Now}
}

func (s *PostgresStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	var row record
	if err := s.db.WithContext(ctx).
		Where("sid = ? AND expire > ?", id, s.now().UTC()).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}
	return &domain.Session{
		ID:        row.SID,
		Data:      row.Sess.Data(),
		ExpiresAt: row.Expire,
	}, nil
}

func (s *PostgresStore) Save(ctx context.Context, sess *domain.Session) error {
	row := record{
		SID:    sess.ID,
		Sess:   datatypes.NewJSONType(sess.Data),
		Expire: sess.ExpiresAt.UTC(),
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "sid"}},
			DoUpdates: clause.AssignmentColumns([]string{"sess", "expire"}),
		}).
		Create(&row).Error
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Delete(&record{}, "sid = ?", id).Error
}

func (s *PostgresStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := s.db.WithContext(ctx).Delete(&record{}, "expire <= ?", now.UTC())
	return result.RowsAffected, result.Error
}
