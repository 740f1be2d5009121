package user

import (
	"context"
	"errors"
	"testing"

	"team-tracker-go/internal/domain/validation"
)

type fakeUserRepo struct {
	users map[string]*User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*User)}
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	for _, user := range r.users {
		if user.Email != nil && *user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *fakeUserRepo) Create(ctx context.Context, user *User) error {
	if user.Email != nil {
		if _, err := r.GetByEmail(ctx, *user.Email); err == nil {
			return ErrEmailTaken
		}
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) UpsertFederated(ctx context.Context, user *User) (*User, error) {
	existing, ok := r.users[user.ID]
	if !ok {
		clone := *user
		r.users[user.ID] = &clone
		return r.GetByID(ctx, user.ID)
	}
	existing.Email = user.Email
	existing.FirstName = user.FirstName
	existing.LastName = user.LastName
	existing.ProfileImageURL = user.ProfileImageURL
	return r.GetByID(ctx, user.ID)
}

func (r *fakeUserRepo) UpdateProfile(ctx context.Context, id string, input ProfileInput) error {
	user, ok := r.users[id]
	if !ok {
		return ErrUserNotFound
	}
	if input.FirstName != nil {
		user.FirstName = input.FirstName
	}
	if input.LastName != nil {
		user.LastName = input.LastName
	}
	if input.ProfileImageURL != nil {
		user.ProfileImageURL = input.ProfileImageURL
	}
	return nil
}

func (r *fakeUserRepo) UpdateAccess(ctx context.Context, id string, role *Role, status *Status) error {
	user, ok := r.users[id]
	if !ok {
		return ErrUserNotFound
	}
	if role != nil {
		user.Role = *role
	}
	if status != nil {
		user.Status = *status
	}
	return nil
}

func (r *fakeUserRepo) List(ctx context.Context, filter ListFilter) ([]User, error) {
	result := make([]User, 0, len(r.users))
	for _, user := range r.users {
		if filter.Status != nil && user.Status != *filter.Status {
			continue
		}
		result = append(result, *user)
	}
	return result, nil
}

func TestRegisterCreatesPendingUser(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo)

	result, err := svc.Register(context.Background(), RegisterInput{
		Email:     "  Ada@Example.com ",
		Password:  "correct horse",
		FirstName: "Ada",
		LastName:  "Lovelace",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.Role != RoleUser || result.Status != StatusPending {
		t.Fatalf("expected USER/PENDING, got %s/%s", result.Role, result.Status)
	}
	if result.Email == nil || *result.Email != "ada@example.com" {
		t.Fatalf("expected normalized email, got %v", result.Email)
	}
	if result.PasswordHash != nil {
		t.Fatalf("returned user must not carry the password hash")
	}

	stored := repo.users[result.ID]
	if stored.PasswordHash == nil || *stored.PasswordHash == "correct horse" {
		t.Fatalf("expected stored hash, got %v", stored.PasswordHash)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo)

	input := RegisterInput{Email: "ada@example.com", Password: "correct horse"}
	if _, err := svc.Register(context.Background(), input); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	_, err := svc.Register(context.Background(), input)
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := NewService(newFakeUserRepo())

	_, err := svc.Register(context.Background(), RegisterInput{Email: "nope", Password: "short"})
	var verr validation.Errors
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation errors, got %v", err)
	}
	if len(verr) != 2 {
		t.Fatalf("expected email and password errors, got %v", verr)
	}
}

func TestAuthenticateDoesNotDiscloseExistence(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo)

	if _, err := svc.Register(context.Background(), RegisterInput{Email: "ada@example.com", Password: "correct horse"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	unknown, err := svc.Authenticate(context.Background(), "nobody@example.com", "correct horse")
	if err != nil || unknown != nil {
		t.Fatalf("expected nil user and nil error for unknown email, got %v %v", unknown, err)
	}

	wrong, err := svc.Authenticate(context.Background(), "ada@example.com", "wrong password")
	if err != nil || wrong != nil {
		t.Fatalf("expected nil user and nil error for wrong password, got %v %v", wrong, err)
	}

	ok, err := svc.Authenticate(context.Background(), "ADA@example.com", "correct horse")
	if err != nil || ok == nil {
		t.Fatalf("expected user, got %v %v", ok, err)
	}
	if ok.PasswordHash != nil {
		t.Fatalf("authenticated user must not carry the password hash")
	}
}

func TestAuthenticateFederatedOnlyAccount(t *testing.T) {
	repo := newFakeUserRepo()
	email := "fed@example.com"
	repo.users["sub-1"] = &User{ID: "sub-1", Email: &email, Role: RoleUser, Status: StatusApproved}
	svc := NewService(repo)

	result, err := svc.Authenticate(context.Background(), email, "anything at all")
	if err != nil || result != nil {
		t.Fatalf("expected nil, nil for account without password, got %v %v", result, err)
	}
}

func TestAuthenticatePropagatesMalformedHash(t *testing.T) {
	repo := newFakeUserRepo()
	email := "broken@example.com"
	hash := "garbage"
	repo.users["u-1"] = &User{ID: "u-1", Email: &email, PasswordHash: &hash, Role: RoleUser, Status: StatusApproved}
	svc := NewService(repo)

	if _, err := svc.Authenticate(context.Background(), email, "whatever1"); err == nil {
		t.Fatalf("expected malformed hash to surface as an error")
	}
}

func TestUpsertFederatedIsIdempotent(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo)

	first, err := svc.UpsertFederated(context.Background(), FederatedProfile{Subject: "sub-42", Email: "a@example.com", FirstName: "Ada"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if first.Status != StatusPending || first.Role != RoleUser {
		t.Fatalf("expected new federated user to be USER/PENDING, got %s/%s", first.Role, first.Status)
	}

	repo.users["sub-42"].Status = StatusApproved

	second, err := svc.UpsertFederated(context.Background(), FederatedProfile{Subject: "sub-42", Email: "a@example.com", FirstName: "Augusta"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(repo.users) != 1 {
		t.Fatalf("expected a single user row, got %d", len(repo.users))
	}
	if second.FirstName == nil || *second.FirstName != "Augusta" {
		t.Fatalf("expected profile refreshed, got %v", second.FirstName)
	}
	if second.Status != StatusApproved {
		t.Fatalf("login must not reset status, got %s", second.Status)
	}
}

func TestUpdateAccess(t *testing.T) {
	repo := newFakeUserRepo()
	repo.users["admin"] = &User{ID: "admin", Role: RoleAdmin, Status: StatusApproved}
	repo.users["u-1"] = &User{ID: "u-1", Role: RoleUser, Status: StatusPending}
	svc := NewService(repo)

	approved := "APPROVED"
	result, err := svc.UpdateAccess(context.Background(), "admin", "u-1", AccessInput{Status: &approved})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.Status != StatusApproved {
		t.Fatalf("expected APPROVED, got %s", result.Status)
	}

	bogus := "SUPERUSER"
	_, err = svc.UpdateAccess(context.Background(), "admin", "u-1", AccessInput{Role: &bogus})
	var verr validation.Errors
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}

	demote := "USER"
	_, err = svc.UpdateAccess(context.Background(), "admin", "admin", AccessInput{Role: &demote})
	if !errors.Is(err, ErrCannotChangeOwnAccess) {
		t.Fatalf("expected ErrCannotChangeOwnAccess, got %v", err)
	}

	_, err = svc.UpdateAccess(context.Background(), "admin", "missing", AccessInput{Role: &demote})
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestPromoteAdmin(t *testing.T) {
	repo := newFakeUserRepo()
	email := "boss@example.com"
	repo.users["u-1"] = &User{ID: "u-1", Email: &email, Role: RoleUser, Status: StatusPending}
	svc := NewService(repo)

	result, err := svc.PromoteAdmin(context.Background(), "Boss@Example.com")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !result.IsAdmin() || !result.IsApproved() {
		t.Fatalf("expected approved admin, got %s/%s", result.Role, result.Status)
	}
}
