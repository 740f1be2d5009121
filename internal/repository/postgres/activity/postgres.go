package activity

import (
	"context"

	"gorm.io/gorm"

	domain "team-tracker-go/internal/domain/activity"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, activity *domain.Activity) error {
	return r.db.WithContext(ctx).Create(activity).Error
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string, limit int) ([]domain.Activity, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var activities []domain.Activity
	if err := query.Find(&activities).Error; err != nil {
		return nil, err
	}
	return activities, nil
}
