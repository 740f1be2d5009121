package activity

import "context"

type Repository interface {
	Create(ctx context.Context, activity *Activity) error
	// ListByUser returns newest first. A zero limit means no limit.
	ListByUser(ctx context.Context, userID string, limit int) ([]Activity, error)
}
