package inmemory

import (
	"context"
	"slices"
	"sort"

	projectdomain "team-tracker-go/internal/domain/project"
)

type ProjectRepository struct {
	store *Store
}

func (r *ProjectRepository) List(ctx context.Context, filter projectdomain.ListFilter) ([]projectdomain.Project, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]projectdomain.Project, 0)
	for _, project := range r.store.projects {
		if matchesProject(project, filter) {
			result = append(result, project)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *ProjectRepository) Count(ctx context.Context, filter projectdomain.ListFilter) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var count int64
	for _, project := range r.store.projects {
		if matchesProject(project, filter) {
			count++
		}
	}
	return count, nil
}

func (r *ProjectRepository) Get(ctx context.Context, id string) (*projectdomain.Project, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	project, ok := r.store.projects[id]
	if !ok {
		return nil, projectdomain.ErrProjectNotFound
	}
	return &project, nil
}

func (r *ProjectRepository) Create(ctx context.Context, project *projectdomain.Project) error {
	r.store.mu.Lock()
	r.store.projects[project.ID] = *project
	r.store.mu.Unlock()
	return nil
}

func (r *ProjectRepository) Update(ctx context.Context, project *projectdomain.Project) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.projects[project.ID]; !ok {
		return projectdomain.ErrProjectNotFound
	}
	r.store.projects[project.ID] = *project
	return nil
}

func (r *ProjectRepository) ListUpdates(ctx context.Context, projectID string) ([]projectdomain.ProjectUpdate, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]projectdomain.ProjectUpdate, 0)
	for _, update := range r.store.projectUpdates {
		if update.ProjectID == projectID {
			result = append(result, update)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *ProjectRepository) CreateUpdate(ctx context.Context, update *projectdomain.ProjectUpdate) error {
	r.store.mu.Lock()
	r.store.projectUpdates[update.ID] = *update
	r.store.mu.Unlock()
	return nil
}

func matchesProject(project projectdomain.Project, filter projectdomain.ListFilter) bool {
	if filter.TeamIDs != nil && !slices.Contains(filter.TeamIDs, project.TeamID) {
		return false
	}
	if filter.TeamID != "" && project.TeamID != filter.TeamID {
		return false
	}
	if filter.Status != nil && project.Status != *filter.Status {
		return false
	}
	return true
}
