package task

import "context"

type Repository interface {
	List(ctx context.Context, userID string, filter ListFilter) ([]Task, error)
	Get(ctx context.Context, userID, id string) (*Task, error)
	Create(ctx context.Context, task *Task) error
	Update(ctx context.Context, task *Task) error
	Delete(ctx context.Context, userID, id string) (bool, error)
	CountByStatus(ctx context.Context, userID string) (map[Status]int64, error)
}
