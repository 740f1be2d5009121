package inmemory

import (
	"context"
	"sort"

	activitydomain "team-tracker-go/internal/domain/activity"
)

type ActivityRepository struct {
	store *Store
}

func (r *ActivityRepository) Create(ctx context.Context, activity *activitydomain.Activity) error {
	r.store.mu.Lock()
	r.store.activities[activity.ID] = *activity
	r.store.mu.Unlock()
	return nil
}

func (r *ActivityRepository) ListByUser(ctx context.Context, userID string, limit int) ([]activitydomain.Activity, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]activitydomain.Activity, 0)
	for _, activity := range r.store.activities {
		if activity.UserID == userID {
			result = append(result, activity)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return limitSlice(result, limit), nil
}
