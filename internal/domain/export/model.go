package export

import (
	"time"

	"team-tracker-go/internal/domain/activity"
	"team-tracker-go/internal/domain/goal"
	"team-tracker-go/internal/domain/task"
	"team-tracker-go/internal/domain/update"
	"team-tracker-go/internal/domain/user"
)

// Snapshot is everything the tracker stores about one user.
type Snapshot struct {
	ExportedAt   time.Time
	User         *user.User
	DailyUpdates []update.DailyUpdate
	UserUpdates  []update.UserUpdate
	Tasks        []task.Task
	Goals        []goal.Goal
	Activities   []activity.Activity
}
