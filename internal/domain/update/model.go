package update

import (
	"time"

	"team-tracker-go/internal/domain/task"
)

const (
	MaxMinutesPerDay = 24 * 60
	MinMood          = 1
	MaxMood          = 5
)

// DailyUpdate is unique per user and date. HoursWorked is stored in minutes.
type DailyUpdate struct {
	ID             string `gorm:"primaryKey"`
	UserID         string `gorm:"column:user_id;not null;uniqueIndex:idx_daily_updates_user_date"`
	Date           string `gorm:"type:varchar(10);not null;uniqueIndex:idx_daily_updates_user_date"`
	TasksCompleted int    `gorm:"column:tasks_completed;not null"`
	HoursWorked    int    `gorm:"column:hours_worked;not null"`
	Mood           int    `gorm:"not null"`
	Notes          *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// UserUpdate is a free-form progress note, optionally tied to a team, project or task.
type UserUpdate struct {
	ID          string      `gorm:"primaryKey"`
	UserID      string      `gorm:"column:user_id;not null;index"`
	TeamID      *string     `gorm:"column:team_id"`
	ProjectID   *string     `gorm:"column:project_id"`
	TaskID      *string     `gorm:"column:task_id"`
	Date        string      `gorm:"type:varchar(10);not null"`
	Description string      `gorm:"not null"`
	Status      task.Status `gorm:"type:varchar(16);not null"`
	HoursWorked int         `gorm:"column:hours_worked;not null"`
	Blockers    *string
	CreatedAt   time.Time
}

type DailyInput struct {
	Date           string
	TasksCompleted int
	HoursWorked    int
	Mood           int
	Notes          string
}

type DailyFilter struct {
	From  string
	To    string
	Limit int
}

type UserUpdateInput struct {
	TeamID      *string
	ProjectID   *string
	TaskID      *string
	Date        string
	Description string
	Status      string
	HoursWorked int
	Blockers    string
}

type UserUpdateFilter struct {
	UserID string
	TeamID string
	Date   string
}
