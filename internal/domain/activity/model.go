package activity

import "time"

const (
	TypeDailyUpdate   = "daily_update"
	TypeUserUpdate    = "user_update"
	TypeTaskCompleted = "task_completed"
	TypeGoalCreated   = "goal_created"
	TypeProjectUpdate = "project_update"
)

// Activity is an append-only feed entry written as a side effect of other writes.
type Activity struct {
	ID          string `gorm:"primaryKey"`
	UserID      string `gorm:"column:user_id;not null;index"`
	Type        string `gorm:"not null"`
	Description string `gorm:"not null"`
	CreatedAt   time.Time
}
