package inmemory

import (
	"context"
	"sort"

	userdomain "team-tracker-go/internal/domain/user"
)

type UserRepository struct {
	store *Store
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*userdomain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	user, ok := r.store.users[id]
	if !ok {
		return nil, userdomain.ErrUserNotFound
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*userdomain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	if user, ok := r.findByEmail(email); ok {
		return &user, nil
	}
	return nil, userdomain.ErrUserNotFound
}

func (r *UserRepository) Create(ctx context.Context, user *userdomain.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if user.Email != nil {
		if _, ok := r.findByEmail(*user.Email); ok {
			return userdomain.ErrEmailTaken
		}
	}
	now := r.store.now().UTC()
	user.CreatedAt, user.UpdatedAt = now, now
	r.store.users[user.ID] = *user
	return nil
}

func (r *UserRepository) UpsertFederated(ctx context.Context, user *userdomain.User) (*userdomain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if user.Email != nil {
		if other, ok := r.findByEmail(*user.Email); ok && other.ID != user.ID {
			return nil, userdomain.ErrEmailTaken
		}
	}

	now := r.store.now().UTC()
	existing, ok := r.store.users[user.ID]
	if !ok {
		created := *user
		created.CreatedAt, created.UpdatedAt = now, now
		r.store.users[user.ID] = created
		return &created, nil
	}

	existing.Email = user.Email
	existing.FirstName = user.FirstName
	existing.LastName = user.LastName
	existing.ProfileImageURL = user.ProfileImageURL
	existing.UpdatedAt = now
	r.store.users[user.ID] = existing
	return &existing, nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id string, input userdomain.ProfileInput) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	user, ok := r.store.users[id]
	if !ok {
		return userdomain.ErrUserNotFound
	}
	if input.FirstName != nil {
		user.FirstName = nilIfEmpty(*input.FirstName)
	}
	if input.LastName != nil {
		user.LastName = nilIfEmpty(*input.LastName)
	}
	if input.ProfileImageURL != nil {
		user.ProfileImageURL = nilIfEmpty(*input.ProfileImageURL)
	}
	user.UpdatedAt = r.store.now().UTC()
	r.store.users[id] = user
	return nil
}

func (r *UserRepository) UpdateAccess(ctx context.Context, id string, role *userdomain.Role, status *userdomain.Status) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	user, ok := r.store.users[id]
	if !ok {
		return userdomain.ErrUserNotFound
	}
	if role != nil {
		user.Role = *role
	}
	if status != nil {
		user.Status = *status
	}
	user.UpdatedAt = r.store.now().UTC()
	r.store.users[id] = user
	return nil
}

func (r *UserRepository) List(ctx context.Context, filter userdomain.ListFilter) ([]userdomain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]userdomain.User, 0, len(r.store.users))
	for _, user := range r.store.users {
		if filter.Status != nil && user.Status != *filter.Status {
			continue
		}
		result = append(result, user)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *UserRepository) findByEmail(email string) (userdomain.User, bool) {
	for _, user := range r.store.users {
		if user.Email != nil && *user.Email == email {
			return user, true
		}
	}
	return userdomain.User{}, false
}

func nilIfEmpty(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
