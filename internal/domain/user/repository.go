package user

import "context"

type Repository interface {
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, user *User) error
	// UpsertFederated inserts the user or refreshes its profile columns. Role and status are never touched.
	UpsertFederated(ctx context.Context, user *User) (*User, error)
	UpdateProfile(ctx context.Context, id string, input ProfileInput) error
	UpdateAccess(ctx context.Context, id string, role *Role, status *Status) error
	List(ctx context.Context, filter ListFilter) ([]User, error)
}
