package project

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "team-tracker-go/internal/domain/project"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context, filter domain.ListFilter) ([]domain.Project, error) {
	var projects []domain.Project
	if err := r.filtered(ctx, filter).Order("created_at desc").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *PostgresRepository) Count(ctx context.Context, filter domain.ListFilter) (int64, error) {
	var total int64
	if err := r.filtered(ctx, filter).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*domain.Project, error) {
	var project domain.Project
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, err
	}
	return &project, nil
}

func (r *PostgresRepository) Create(ctx context.Context, project *domain.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

func (r *PostgresRepository) Update(ctx context.Context, project *domain.Project) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Project{}).
		Where("id = ?", project.ID).
		Updates(map[string]interface{}{
			"name":        project.Name,
			"description": project.Description,
			"status":      project.Status,
			"priority":    project.Priority,
			"progress":    project.Progress,
			"start_date":  project.StartDate,
			"due_date":    project.DueDate,
			"updated_at":  project.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

func (r *PostgresRepository) ListUpdates(ctx context.Context, projectID string) ([]domain.ProjectUpdate, error) {
	var updates []domain.ProjectUpdate
	if err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at desc").
		Find(&updates).Error; err != nil {
		return nil, err
	}
	return updates, nil
}

func (r *PostgresRepository) CreateUpdate(ctx context.Context, update *domain.ProjectUpdate) error {
	return r.db.WithContext(ctx).Create(update).Error
}

func (r *PostgresRepository) filtered(ctx context.Context, filter domain.ListFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&domain.Project{})
	if filter.TeamIDs != nil {
		if len(filter.TeamIDs) == 0 {
			return query.Where("1 = 0")
		}
		query = query.Where("team_id IN ?", filter.TeamIDs)
	}
	if filter.TeamID != "" {
		query = query.Where("team_id = ?", filter.TeamID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	return query
}
