package export

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"team-tracker-go/internal/domain/activity"
	"team-tracker-go/internal/domain/goal"
	"team-tracker-go/internal/domain/task"
	"team-tracker-go/internal/domain/update"
	"team-tracker-go/internal/domain/user"
)

type Users interface {
	Get(ctx context.Context, id string) (*user.User, error)
}

type Updates interface {
	ListDaily(ctx context.Context, userID string, filter update.DailyFilter) ([]update.DailyUpdate, error)
	ListUserUpdates(ctx context.Context, filter update.UserUpdateFilter) ([]update.UserUpdate, error)
}

type Tasks interface {
	List(ctx context.Context, userID string, filter task.ListFilter) ([]task.Task, error)
}

type Goals interface {
	List(ctx context.Context, userID string, activeOnly bool) ([]goal.Goal, error)
}

type Activities interface {
	All(ctx context.Context, userID string) ([]activity.Activity, error)
}

type Service struct {
	users      Users
	updates    Updates
	tasks      Tasks
	goals      Goals
	activities Activities
	now        func() time.Time
}

func NewService(users Users, updates Updates, tasks Tasks, goals Goals, activities Activities) *Service {
	return &Service{
		users:      users,
		updates:    updates,
		tasks:      tasks,
		goals:      goals,
		activities: activities,
		now:        time.Now,
	}
}

// Snapshot reads all of a user's data concurrently. Any failed read fails the export.
func (s *Service) Snapshot(ctx context.Context, userID string) (*Snapshot, error) {
	snapshot := &Snapshot{ExportedAt: s.now().UTC()}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		u, err := s.users.Get(gctx, userID)
		if err != nil {
			return fmt.Errorf("export user: %w", err)
		}
		snapshot.User = u
		return nil
	})
	g.Go(func() error {
		items, err := s.updates.ListDaily(gctx, userID, update.DailyFilter{})
		if err != nil {
			return fmt.Errorf("export daily updates: %w", err)
		}
		snapshot.DailyUpdates = items
		return nil
	})
	g.Go(func() error {
		items, err := s.updates.ListUserUpdates(gctx, update.UserUpdateFilter{UserID: userID})
		if err != nil {
			return fmt.Errorf("export user updates: %w", err)
		}
		snapshot.UserUpdates = items
		return nil
	})
	g.Go(func() error {
		items, err := s.tasks.List(gctx, userID, task.ListFilter{})
		if err != nil {
			return fmt.Errorf("export tasks: %w", err)
		}
		snapshot.Tasks = items
		return nil
	})
	g.Go(func() error {
		items, err := s.goals.List(gctx, userID, false)
		if err != nil {
			return fmt.Errorf("export goals: %w", err)
		}
		snapshot.Goals = items
		return nil
	})
	g.Go(func() error {
		items, err := s.activities.All(gctx, userID)
		if err != nil {
			return fmt.Errorf("export activities: %w", err)
		}
		snapshot.Activities = items
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snapshot, nil
}
