package update

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "team-tracker-go/internal/domain/update"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListDaily(ctx context.Context, userID string, filter domain.DailyFilter) ([]domain.DailyUpdate, error) {
	query := r.db.WithContext(ctx).Model(&domain.DailyUpdate{}).Where("user_id = ?", userID)
	if filter.From != "" {
		query = query.Where("date >= ?", filter.From)
	}
	if filter.To != "" {
		query = query.Where("date <= ?", filter.To)
	}
	query = query.Order("date desc")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var updates []domain.DailyUpdate
	if err := query.Find(&updates).Error; err != nil {
		return nil, err
	}
	return updates, nil
}

func (r *PostgresRepository) GetDaily(ctx context.Context, userID, date string) (*domain.DailyUpdate, error) {
	var update domain.DailyUpdate
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		First(&update).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDailyUpdateNotFound
		}
		return nil, err
	}
	return &update, nil
}

func (r *PostgresRepository) CreateDaily(ctx context.Context, update *domain.DailyUpdate) error {
	err := r.db.WithContext(ctx).Create(update).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrDailyUpdateExists
	}
	return err
}

func (r *PostgresRepository) UpdateDaily(ctx context.Context, update *domain.DailyUpdate) error {
	result := r.db.WithContext(ctx).
		Model(&domain.DailyUpdate{}).
		Where("id = ? AND user_id = ?", update.ID, update.UserID).
		Updates(map[string]interface{}{
			"tasks_completed": update.TasksCompleted,
			"hours_worked":    update.HoursWorked,
			"mood":            update.Mood,
			"notes":           update.Notes,
			"updated_at":      update.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrDailyUpdateNotFound
	}
	return nil
}

func (r *PostgresRepository) ListUserUpdates(ctx context.Context, filter domain.UserUpdateFilter) ([]domain.UserUpdate, error) {
	query := r.db.WithContext(ctx).Model(&domain.UserUpdate{})
	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.TeamID != "" {
		query = query.Where("team_id = ?", filter.TeamID)
	}
	if filter.Date != "" {
		query = query.Where("date = ?", filter.Date)
	}

	var updates []domain.UserUpdate
	if err := query.Order("created_at desc").Find(&updates).Error; err != nil {
		return nil, err
	}
	return updates, nil
}

func (r *PostgresRepository) CreateUserUpdate(ctx context.Context, update *domain.UserUpdate) error {
	return r.db.WithContext(ctx).Create(update).Error
}
