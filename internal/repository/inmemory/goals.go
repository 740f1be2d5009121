package inmemory

import (
	"context"
	"sort"

	goaldomain "team-tracker-go/internal/domain/goal"
)

type GoalRepository struct {
	store *Store
}

func (r *GoalRepository) List(ctx context.Context, userID string, activeOnly bool) ([]goaldomain.Goal, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]goaldomain.Goal, 0)
	for _, goal := range r.store.goals {
		if goal.UserID != userID || (activeOnly && !goal.IsActive) {
			continue
		}
		result = append(result, goal)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *GoalRepository) Get(ctx context.Context, userID, id string) (*goaldomain.Goal, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	goal, ok := r.store.goals[id]
	if !ok || goal.UserID != userID {
		return nil, goaldomain.ErrGoalNotFound
	}
	return &goal, nil
}

func (r *GoalRepository) Create(ctx context.Context, goal *goaldomain.Goal) error {
	r.store.mu.Lock()
	r.store.goals[goal.ID] = *goal
	r.store.mu.Unlock()
	return nil
}

func (r *GoalRepository) Update(ctx context.Context, goal *goaldomain.Goal) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	existing, ok := r.store.goals[goal.ID]
	if !ok || existing.UserID != goal.UserID {
		return goaldomain.ErrGoalNotFound
	}
	r.store.goals[goal.ID] = *goal
	return nil
}

func (r *GoalRepository) Delete(ctx context.Context, userID, id string) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	goal, ok := r.store.goals[id]
	if !ok || goal.UserID != userID {
		return false, nil
	}
	delete(r.store.goals, id)
	return true, nil
}
