package update

import "context"

type Repository interface {
	// ListDaily returns the user's daily updates, newest date first.
	ListDaily(ctx context.Context, userID string, filter DailyFilter) ([]DailyUpdate, error)
	GetDaily(ctx context.Context, userID, date string) (*DailyUpdate, error)
	// CreateDaily returns ErrDailyUpdateExists when the user already has an update for the date.
	CreateDaily(ctx context.Context, update *DailyUpdate) error
	UpdateDaily(ctx context.Context, update *DailyUpdate) error
	ListUserUpdates(ctx context.Context, filter UserUpdateFilter) ([]UserUpdate, error)
	CreateUserUpdate(ctx context.Context, update *UserUpdate) error
}
