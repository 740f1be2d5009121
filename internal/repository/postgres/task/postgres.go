package task

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "team-tracker-go/internal/domain/task"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context, userID string, filter domain.ListFilter) ([]domain.Task, error) {
	query := r.db.WithContext(ctx).Model(&domain.Task{}).Where("user_id = ?", userID)
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.ProjectID != "" {
		query = query.Where("project_id = ?", filter.ProjectID)
	}
	if filter.TeamID != "" {
		query = query.Where("team_id = ?", filter.TeamID)
	}

	var tasks []domain.Task
	if err := query.Order("created_at desc").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *PostgresRepository) Get(ctx context.Context, userID, id string) (*domain.Task, error) {
	var task domain.Task
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}

func (r *PostgresRepository) Create(ctx context.Context, task *domain.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *PostgresRepository) Update(ctx context.Context, task *domain.Task) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Task{}).
		Where("id = ? AND user_id = ?", task.ID, task.UserID).
		Updates(map[string]interface{}{
			"title":           task.Title,
			"description":     task.Description,
			"status":          task.Status,
			"priority":        task.Priority,
			"team_id":         task.TeamID,
			"project_id":      task.ProjectID,
			"due_date":        task.DueDate,
			"estimated_hours": task.EstimatedHours,
			"actual_hours":    task.ActualHours,
			"completed_at":    task.CompletedAt,
			"updated_at":      task.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&domain.Task{}, "user_id = ? AND id = ?", userID, id)
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) CountByStatus(ctx context.Context, userID string) (map[domain.Status]int64, error) {
	type statusRow struct {
		Status domain.Status `gorm:"column:status"`
		Total  int64         `gorm:"column:total"`
	}

	var rows []statusRow
	if err := r.db.WithContext(ctx).
		Model(&domain.Task{}).
		Select("status, COUNT(*) AS total").
		Where("user_id = ?", userID).
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[domain.Status]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}
