package goal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"team-tracker-go/internal/domain/activity"
	"team-tracker-go/internal/domain/validation"
)

type ActivityRecorder interface {
	Record(ctx context.Context, userID, activityType, description string) error
}

type Service struct {
	repo       Repository
	activities ActivityRecorder
	now        func() time.Time
}

func NewService(repo Repository, activities ActivityRecorder) *Service {
	return &Service{repo: repo, activities: activities, now: time.Now}
}

func (s *Service) List(ctx context.Context, userID string, activeOnly bool) ([]Goal, error) {
	return s.repo.List(ctx, userID, activeOnly)
}

func (s *Service) Create(ctx context.Context, userID string, input CreateInput) (*Goal, error) {
	var v validation.Checker
	title := strings.TrimSpace(input.Title)
	if v.Required("title", title) {
		v.MaxLength("title", title, 200)
	}
	goalType, err := ParseType(input.Type)
	v.Check(err == nil, "type", "must be daily, weekly or monthly")
	v.Check(input.Target > 0, "target", "must be greater than 0")
	v.Check(input.Current >= 0, "current", "must not be negative")
	if err := v.Err(); err != nil {
		return nil, err
	}

	active := true
	if input.IsActive != nil {
		active = *input.IsActive
	}

	now := s.now().UTC()
	goal := Goal{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     title,
		Type:      goalType,
		Target:    input.Target,
		Current:   input.Current,
		IsActive:  active,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, &goal); err != nil {
		return nil, err
	}
	if err := s.activities.Record(ctx, userID, activity.TypeGoalCreated, fmt.Sprintf("Set a %s goal: %s", goal.Type, goal.Title)); err != nil {
		return nil, err
	}
	return &goal, nil
}

func (s *Service) Update(ctx context.Context, userID, id string, input UpdateInput) (*Goal, error) {
	var (
		v        validation.Checker
		goalType *Type
	)
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if v.Required("title", title) {
			v.MaxLength("title", title, 200)
		}
		input.Title = &title
	}
	if input.Type != nil {
		parsed, err := ParseType(*input.Type)
		v.Check(err == nil, "type", "must be daily, weekly or monthly")
		goalType = &parsed
	}
	if input.Target != nil {
		v.Check(*input.Target > 0, "target", "must be greater than 0")
	}
	if input.Current != nil {
		v.Check(*input.Current >= 0, "current", "must not be negative")
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	goal, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if input.Title != nil {
		goal.Title = *input.Title
	}
	if goalType != nil {
		goal.Type = *goalType
	}
	if input.Target != nil {
		goal.Target = *input.Target
	}
	if input.Current != nil {
		goal.Current = *input.Current
	}
	if input.IsActive != nil {
		goal.IsActive = *input.IsActive
	}
	goal.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, goal); err != nil {
		return nil, err
	}
	return goal, nil
}

func (s *Service) Delete(ctx context.Context, userID, id string) error {
	deleted, err := s.repo.Delete(ctx, userID, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrGoalNotFound
	}
	return nil
}
