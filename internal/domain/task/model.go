package task

import (
	"database/sql/driver"
	"time"

	"team-tracker-go/internal/domain/enum"
)

type Status string

const (
	StatusTodo       Status = "TODO"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusBlocked    Status = "BLOCKED"
	StatusReview     Status = "REVIEW"
)

var statuses = []Status{StatusTodo, StatusInProgress, StatusCompleted, StatusBlocked, StatusReview}

func ParseStatus(value string) (Status, error) {
	return enum.Parse("task status", value, statuses...)
}

func (s *Status) Scan(src any) error {
	return enum.Scan(s, src, "task status", statuses...)
}

func (s Status) Value() (driver.Value, error) {
	return enum.Value(s, "task status", statuses...)
}

type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

var priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

func ParsePriority(value string) (Priority, error) {
	return enum.Parse("task priority", value, priorities...)
}

func (p *Priority) Scan(src any) error {
	return enum.Scan(p, src, "task priority", priorities...)
}

func (p Priority) Value() (driver.Value, error) {
	return enum.Value(p, "task priority", priorities...)
}

type Task struct {
	ID             string  `gorm:"primaryKey"`
	UserID         string  `gorm:"column:user_id;not null;index"`
	TeamID         *string `gorm:"column:team_id"`
	ProjectID      *string `gorm:"column:project_id"`
	Title          string  `gorm:"not null"`
	Description    *string
	Status         Status   `gorm:"type:varchar(16);not null"`
	Priority       Priority `gorm:"type:varchar(16);not null"`
	DueDate        *string  `gorm:"column:due_date;type:varchar(10)"`
	EstimatedHours *int     `gorm:"column:estimated_hours"`
	ActualHours    *int     `gorm:"column:actual_hours"`
	CompletedAt    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type CreateInput struct {
	Title          string
	Description    string
	Status         string
	Priority       string
	TeamID         *string
	ProjectID      *string
	DueDate        *string
	EstimatedHours *int
	ActualHours    *int
}

type UpdateInput struct {
	Title          *string
	Description    *string
	Status         *string
	Priority       *string
	TeamID         *string
	ProjectID      *string
	DueDate        *string
	EstimatedHours *int
	ActualHours    *int
}

type ListFilter struct {
	Status    *Status
	ProjectID string
	TeamID    string
}

type Stats struct {
	Total          int64   `json:"total"`
	Completed      int64   `json:"completed"`
	CompletionRate float64 `json:"completionRate"`
}
