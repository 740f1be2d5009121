package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"team-tracker-go/internal/auth"
	"team-tracker-go/internal/domain/validation"
)

const minPasswordLength = 8

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context, id string) (*User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.Sanitized(), nil
}

// Register always creates an unapproved USER account, whatever the caller sends.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*User, error) {
	email := normalizeEmail(input.Email)

	var v validation.Checker
	v.Email("email", email)
	if v.Required("password", input.Password) {
		v.MinLength("password", input.Password, minPasswordLength)
		v.MaxLength("password", input.Password, 72)
	}
	v.MaxLength("firstName", input.FirstName, 100)
	v.MaxLength("lastName", input.LastName, 100)
	if err := v.Err(); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := User{
		ID:           uuid.NewString(),
		Email:        &email,
		PasswordHash: &hash,
		FirstName:    optionalString(input.FirstName),
		LastName:     optionalString(input.LastName),
		Role:         RoleUser,
		Status:       StatusPending,
	}
	if err := s.repo.Create(ctx, &user); err != nil {
		return nil, err
	}
	return user.Sanitized(), nil
}

// Authenticate returns nil without an error when the email is unknown, the account has no password
// or the password does not match. Callers cannot tell these cases apart.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	user, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			auth.BurnPasswordCheck(password)
			return nil, nil
		}
		return nil, err
	}
	if user.PasswordHash == nil || *user.PasswordHash == "" {
		auth.BurnPasswordCheck(password)
		return nil, nil
	}

	ok, err := auth.VerifyPassword(password, *user.PasswordHash)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return user.Sanitized(), nil
}

// UpsertFederated is idempotent per subject: the first login inserts a PENDING user, later logins
// only refresh profile fields.
func (s *Service) UpsertFederated(ctx context.Context, profile FederatedProfile) (*User, error) {
	subject := strings.TrimSpace(profile.Subject)
	if subject == "" {
		return nil, fmt.Errorf("federated subject is required")
	}

	user := User{
		ID:              subject,
		FirstName:       optionalString(profile.FirstName),
		LastName:        optionalString(profile.LastName),
		ProfileImageURL: optionalString(profile.ProfileImageURL),
		Role:            RoleUser,
		Status:          StatusPending,
	}
	if email := normalizeEmail(profile.Email); email != "" {
		user.Email = &email
	}

	saved, err := s.repo.UpsertFederated(ctx, &user)
	if err != nil {
		return nil, err
	}
	return saved.Sanitized(), nil
}

func (s *Service) UpdateProfile(ctx context.Context, id string, input ProfileInput) (*User, error) {
	var v validation.Checker
	if input.FirstName != nil {
		v.MaxLength("firstName", *input.FirstName, 100)
	}
	if input.LastName != nil {
		v.MaxLength("lastName", *input.LastName, 100)
	}
	if input.ProfileImageURL != nil {
		v.OptionalURL("profileImageUrl", *input.ProfileImageURL)
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	if input.FirstName == nil && input.LastName == nil && input.ProfileImageURL == nil {
		return s.Get(ctx, id)
	}
	if err := s.repo.UpdateProfile(ctx, id, input); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]User, error) {
	users, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].PasswordHash = nil
	}
	return users, nil
}

// UpdateAccess changes role and/or status on behalf of an admin.
func (s *Service) UpdateAccess(ctx context.Context, actorID, targetID string, input AccessInput) (*User, error) {
	var (
		v      validation.Checker
		role   *Role
		status *Status
	)
	if input.Role != nil {
		parsed, err := ParseRole(*input.Role)
		v.Check(err == nil, "role", "must be USER or ADMIN")
		role = &parsed
	}
	if input.Status != nil {
		parsed, err := ParseStatus(*input.Status)
		v.Check(err == nil, "status", "must be PENDING, APPROVED or REJECTED")
		status = &parsed
	}
	v.Check(role != nil || status != nil, "role", "role or status is required")
	if err := v.Err(); err != nil {
		return nil, err
	}

	if actorID == targetID {
		return nil, ErrCannotChangeOwnAccess
	}
	if _, err := s.repo.GetByID(ctx, targetID); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateAccess(ctx, targetID, role, status); err != nil {
		return nil, err
	}
	return s.Get(ctx, targetID)
}

// PromoteAdmin grants ADMIN and APPROVED to an existing account. Used for bootstrapping the first admin.
func (s *Service) PromoteAdmin(ctx context.Context, email string) (*User, error) {
	user, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}
	role, status := RoleAdmin, StatusApproved
	if err := s.repo.UpdateAccess(ctx, user.ID, &role, &status); err != nil {
		return nil, err
	}
	return s.Get(ctx, user.ID)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func optionalString(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}
