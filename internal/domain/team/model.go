package team

import (
	"database/sql/driver"
	"time"

	"team-tracker-go/internal/domain/enum"
)

type MemberRole string

const (
	MemberRoleMember MemberRole = "MEMBER"
	MemberRoleLead   MemberRole = "LEAD"
)

var memberRoles = []MemberRole{MemberRoleMember, MemberRoleLead}

func ParseMemberRole(value string) (MemberRole, error) {
	return enum.Parse("membership role", value, memberRoles...)
}

func (r *MemberRole) Scan(src any) error {
	return enum.Scan(r, src, "membership role", memberRoles...)
}

func (r MemberRole) Value() (driver.Value, error) {
	return enum.Value(r, "membership role", memberRoles...)
}

type MemberStatus string

const (
	MemberStatusPending  MemberStatus = "PENDING"
	MemberStatusActive   MemberStatus = "ACTIVE"
	MemberStatusInactive MemberStatus = "INACTIVE"
)

var memberStatuses = []MemberStatus{MemberStatusPending, MemberStatusActive, MemberStatusInactive}

func ParseMemberStatus(value string) (MemberStatus, error) {
	return enum.Parse("membership status", value, memberStatuses...)
}

func (s *MemberStatus) Scan(src any) error {
	return enum.Scan(s, src, "membership status", memberStatuses...)
}

func (s MemberStatus) Value() (driver.Value, error) {
	return enum.Value(s, "membership status", memberStatuses...)
}

type Team struct {
	ID          string `gorm:"primaryKey"`
	Name        string `gorm:"not null"`
	Description *string
	CreatedBy   string `gorm:"column:created_by;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Membership struct {
	ID        string       `gorm:"primaryKey"`
	TeamID    string       `gorm:"column:team_id;not null"`
	UserID    string       `gorm:"column:user_id;not null"`
	Role      MemberRole   `gorm:"type:varchar(16);not null"`
	Status    MemberStatus `gorm:"type:varchar(16);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Membership) TableName() string {
	return "team_memberships"
}

type CreateTeamInput struct {
	Name        string
	Description string
}

// DecisionInput approves (ACTIVE) or rejects (INACTIVE) a membership, optionally changing its role.
type DecisionInput struct {
	Status string
	Role   *string
}

type MembershipFilter struct {
	TeamID string
	UserID string
	Status *MemberStatus
}
