package goal

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "team-tracker-go/internal/domain/goal"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context, userID string, activeOnly bool) ([]domain.Goal, error) {
	query := r.db.WithContext(ctx).Model(&domain.Goal{}).Where("user_id = ?", userID)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var goals []domain.Goal
	if err := query.Order("created_at desc").Find(&goals).Error; err != nil {
		return nil, err
	}
	return goals, nil
}

func (r *PostgresRepository) Get(ctx context.Context, userID, id string) (*domain.Goal, error) {
	var goal domain.Goal
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		First(&goal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrGoalNotFound
		}
		return nil, err
	}
	return &goal, nil
}

func (r *PostgresRepository) Create(ctx context.Context, goal *domain.Goal) error {
	return r.db.WithContext(ctx).Create(goal).Error
}

func (r *PostgresRepository) Update(ctx context.Context, goal *domain.Goal) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Goal{}).
		Where("id = ? AND user_id = ?", goal.ID, goal.UserID).
		Updates(map[string]interface{}{
			"title":      goal.Title,
			"type":       goal.Type,
			"target":     goal.Target,
			"current":    goal.Current,
			"is_active":  goal.IsActive,
			"updated_at": goal.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrGoalNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&domain.Goal{}, "user_id = ? AND id = ?", userID, id)
	return result.RowsAffected > 0, result.Error
}
