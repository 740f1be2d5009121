package goal

import "context"

type Repository interface {
	List(ctx context.Context, userID string, activeOnly bool) ([]Goal, error)
	Get(ctx context.Context, userID, id string) (*Goal, error)
	Create(ctx context.Context, goal *Goal) error
	Update(ctx context.Context, goal *Goal) error
	Delete(ctx context.Context, userID, id string) (bool, error)
}
