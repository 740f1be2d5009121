package analytics

import (
	"context"

	"team-tracker-go/internal/domain/goal"
	"team-tracker-go/internal/domain/project"
	"team-tracker-go/internal/domain/task"
	"team-tracker-go/internal/domain/update"
)

// DailyUpdates and the other sources below are read sides; aggregation happens in Go, not in SQL.
type DailyUpdates interface {
	ListDaily(ctx context.Context, userID string, filter update.DailyFilter) ([]update.DailyUpdate, error)
}

type TaskStats interface {
	Stats(ctx context.Context, userID string) (task.Stats, error)
}

type Goals interface {
	List(ctx context.Context, userID string, activeOnly bool) ([]goal.Goal, error)
}

type Projects interface {
	CountActive(ctx context.Context, actor project.Actor) (int64, error)
}
