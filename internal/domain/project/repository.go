package project

import "context"

type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]Project, error)
	Get(ctx context.Context, id string) (*Project, error)
	Create(ctx context.Context, project *Project) error
	Update(ctx context.Context, project *Project) error
	ListUpdates(ctx context.Context, projectID string) ([]ProjectUpdate, error)
	CreateUpdate(ctx context.Context, update *ProjectUpdate) error
	Count(ctx context.Context, filter ListFilter) (int64, error)
}
