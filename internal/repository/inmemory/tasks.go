package inmemory

import (
	"context"
	"sort"

	taskdomain "team-tracker-go/internal/domain/task"
)

type TaskRepository struct {
	store *Store
}

func (r *TaskRepository) List(ctx context.Context, userID string, filter taskdomain.ListFilter) ([]taskdomain.Task, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]taskdomain.Task, 0)
	for _, task := range r.store.tasks {
		if task.UserID != userID {
			continue
		}
		if filter.Status != nil && task.Status != *filter.Status {
			continue
		}
		if filter.ProjectID != "" && (task.ProjectID == nil || *task.ProjectID != filter.ProjectID) {
			continue
		}
		if filter.TeamID != "" && (task.TeamID == nil || *task.TeamID != filter.TeamID) {
			continue
		}
		result = append(result, task)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *TaskRepository) Get(ctx context.Context, userID, id string) (*taskdomain.Task, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	task, ok := r.store.tasks[id]
	if !ok || task.UserID != userID {
		return nil, taskdomain.ErrTaskNotFound
	}
	return &task, nil
}

func (r *TaskRepository) Create(ctx context.Context, task *taskdomain.Task) error {
	r.store.mu.Lock()
	r.store.tasks[task.ID] = *task
	r.store.mu.Unlock()
	return nil
}

func (r *TaskRepository) Update(ctx context.Context, task *taskdomain.Task) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	existing, ok := r.store.tasks[task.ID]
	if !ok || existing.UserID != task.UserID {
		return taskdomain.ErrTaskNotFound
	}
	r.store.tasks[task.ID] = *task
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, userID, id string) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	task, ok := r.store.tasks[id]
	if !ok || task.UserID != userID {
		return false, nil
	}
	delete(r.store.tasks, id)
	return true, nil
}

func (r *TaskRepository) CountByStatus(ctx context.Context, userID string) (map[taskdomain.Status]int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	counts := make(map[taskdomain.Status]int64)
	for _, task := range r.store.tasks {
		if task.UserID == userID {
			counts[task.Status]++
		}
	}
	return counts, nil
}
