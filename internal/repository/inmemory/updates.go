package inmemory

import (
	"context"
	"sort"

	updatedomain "team-tracker-go/internal/domain/update"
)

type UpdateRepository struct {
	store *Store
}

func (r *UpdateRepository) ListDaily(ctx context.Context, userID string, filter updatedomain.DailyFilter) ([]updatedomain.DailyUpdate, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]updatedomain.DailyUpdate, 0)
	for _, item := range r.store.dailyUpdates {
		if item.UserID != userID {
			continue
		}
		// YYYY-MM-DD compares lexically in date order.
		if filter.From != "" && item.Date < filter.From {
			continue
		}
		if filter.To != "" && item.Date > filter.To {
			continue
		}
		result = append(result, item)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date > result[j].Date
	})
	return limitSlice(result, filter.Limit), nil
}

func (r *UpdateRepository) GetDaily(ctx context.Context, userID, date string) (*updatedomain.DailyUpdate, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	item, ok := r.findDaily(userID, date)
	if !ok {
		return nil, updatedomain.ErrDailyUpdateNotFound
	}
	return &item, nil
}

func (r *UpdateRepository) CreateDaily(ctx context.Context, update *updatedomain.DailyUpdate) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.findDaily(update.UserID, update.Date); ok {
		return updatedomain.ErrDailyUpdateExists
	}
	r.store.dailyUpdates[update.ID] = *update
	return nil
}

func (r *UpdateRepository) UpdateDaily(ctx context.Context, update *updatedomain.DailyUpdate) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.dailyUpdates[update.ID]; !ok {
		return updatedomain.ErrDailyUpdateNotFound
	}
	r.store.dailyUpdates[update.ID] = *update
	return nil
}

func (r *UpdateRepository) ListUserUpdates(ctx context.Context, filter updatedomain.UserUpdateFilter) ([]updatedomain.UserUpdate, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]updatedomain.UserUpdate, 0)
	for _, item := range r.store.userUpdates {
		if filter.UserID != "" && item.UserID != filter.UserID {
			continue
		}
		if filter.TeamID != "" && (item.TeamID == nil || *item.TeamID != filter.TeamID) {
			continue
		}
		if filter.Date != "" && item.Date != filter.Date {
			continue
		}
		result = append(result, item)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *UpdateRepository) CreateUserUpdate(ctx context.Context, update *updatedomain.UserUpdate) error {
	r.store.mu.Lock()
	r.store.userUpdates[update.ID] = *update
	r.store.mu.Unlock()
	return nil
}

func (r *UpdateRepository) findDaily(userID, date string) (updatedomain.DailyUpdate, bool) {
	for _, item := range r.store.dailyUpdates {
		if item.UserID == userID && item.Date == date {
			return item, true
		}
	}
	return updatedomain.DailyUpdate{}, false
}
