package user

import (
	"database/sql/driver"
	"time"

	"team-tracker-go/internal/domain/enum"
)

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

var roles = []Role{RoleUser, RoleAdmin}

func ParseRole(value string) (Role, error) {
	return enum.Parse("user role", value, roles...)
}

func (r *Role) Scan(src any) error {
	return enum.Scan(r, src, "user role", roles...)
}

func (r Role) Value() (driver.Value, error) {
	return enum.Value(r, "user role", roles...)
}

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

var statuses = []Status{StatusPending, StatusApproved, StatusRejected}

func ParseStatus(value string) (Status, error) {
	return enum.Parse("user status", value, statuses...)
}

func (s *Status) Scan(src any) error {
	return enum.Scan(s, src, "user status", statuses...)
}

func (s Status) Value() (driver.Value, error) {
	return enum.Value(s, "user status", statuses...)
}

// User is keyed by a generated uuid for local accounts and by the issuer subject for federated ones.
type User struct {
	ID              string  `gorm:"primaryKey"`
	Email           *string `gorm:"uniqueIndex"`
	PasswordHash    *string `gorm:"column:password_hash" json:"-"`
	FirstName       *string
	LastName        *string
	ProfileImageURL *string `gorm:"column:profile_image_url"`
	Role            Role    `gorm:"type:varchar(16);not null"`
	Status          Status  `gorm:"type:varchar(16);not null;index"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) IsApproved() bool {
	return u.Status == StatusApproved
}

// Sanitized returns a copy without credential material.
func (u *User) Sanitized() *User {
	clone := *u
	clone.PasswordHash = nil
	return &clone
}

type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// FederatedProfile carries the identity claims received from the issuer.
type FederatedProfile struct {
	Subject         string
	Email           string
	FirstName       string
	LastName        string
	ProfileImageURL string
}

type ProfileInput struct {
	FirstName       *string
	LastName        *string
	ProfileImageURL *string
}

type AccessInput struct {
	Role   *string
	Status *string
}

type ListFilter struct {
	Status *Status
}
