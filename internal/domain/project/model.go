package project

import (
	"database/sql/driver"
	"time"

	"team-tracker-go/internal/domain/enum"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusArchived  Status = "archived"
)

var statuses = []Status{StatusActive, StatusCompleted, StatusArchived}

func ParseStatus(value string) (Status, error) {
	return enum.Parse("project status", value, statuses...)
}

func (s *Status) Scan(src any) error {
	return enum.Scan(s, src, "project status", statuses...)
}

func (s Status) Value() (driver.Value, error) {
	return enum.Value(s, "project status", statuses...)
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

var priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

func ParsePriority(value string) (Priority, error) {
	return enum.Parse("project priority", value, priorities...)
}

func (p *Priority) Scan(src any) error {
	return enum.Scan(p, src, "project priority", priorities...)
}

func (p Priority) Value() (driver.Value, error) {
	return enum.Value(p, "project priority", priorities...)
}

type Project struct {
	ID          string `gorm:"primaryKey"`
	TeamID      string `gorm:"column:team_id;not null;index"`
	CreatedBy   string `gorm:"column:created_by;not null"`
	Name        string `gorm:"not null"`
	Description *string
	Status      Status   `gorm:"type:varchar(16);not null"`
	Priority    Priority `gorm:"type:varchar(16);not null"`
	Progress    int      `gorm:"not null"`
	StartDate   *string  `gorm:"column:start_date;type:varchar(10)"`
	DueDate     *string  `gorm:"column:due_date;type:varchar(10)"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProjectUpdate logs work on a project. HoursWorked is stored in minutes.
type ProjectUpdate struct {
	ID          string  `gorm:"primaryKey"`
	ProjectID   string  `gorm:"column:project_id;not null;index"`
	UserID      string  `gorm:"column:user_id;not null"`
	Description string  `gorm:"not null"`
	Progress    *int    `gorm:"column:progress"`
	HoursWorked int     `gorm:"column:hours_worked;not null"`
	Status      *Status `gorm:"type:varchar(16)"`
	CreatedAt   time.Time
}

// Actor is the caller on whose behalf project access is decided.
type Actor struct {
	UserID string
	Admin  bool
}

type CreateInput struct {
	TeamID      string
	Name        string
	Description string
	Status      string
	Priority    string
	Progress    int
	StartDate   *string
	DueDate     *string
}

type UpdateInput struct {
	Name        *string
	Description *string
	Status      *string
	Priority    *string
	Progress    *int
	StartDate   *string
	DueDate     *string
}

type UpdateEntryInput struct {
	Description string
	Progress    *int
	HoursWorked int
	Status      *string
}

type ListFilter struct {
	// TeamIDs restricts the listing to these teams when non-nil.
	TeamIDs []string
	TeamID  string
	Status  *Status
}
