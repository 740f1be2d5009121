package update

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"team-tracker-go/internal/domain/activity"
	"team-tracker-go/internal/domain/project"
	"team-tracker-go/internal/domain/task"
	"team-tracker-go/internal/domain/validation"
)

const maxListLimit = 366

// Scopes checks that the caller may post under a team and project.
type Scopes interface {
	CheckScope(ctx context.Context, actor project.Actor, teamID, projectID string) error
}

// Tasks resolves the caller's own tasks.
type Tasks interface {
	Get(ctx context.Context, userID, id string) (*task.Task, error)
}

type ActivityRecorder interface {
	Record(ctx context.Context, userID, activityType, description string) error
}

type Service struct {
	repo       Repository
	scopes     Scopes
	tasks      Tasks
	activities ActivityRecorder
	now        func() time.Time
}

func NewService(repo Repository, scopes Scopes, tasks Tasks, activities ActivityRecorder) *Service {
	return &Service{repo: repo, scopes: scopes, tasks: tasks, activities: activities, now: time.Now}
}

func (s *Service) ListDaily(ctx context.Context, userID string, filter DailyFilter) ([]DailyUpdate, error) {
	var v validation.Checker
	v.OptionalDate("from", &filter.From)
	v.OptionalDate("to", &filter.To)
	if filter.Limit < 0 || filter.Limit > maxListLimit {
		v.Add("limit", fmt.Sprintf("must be between 0 and %d", maxListLimit))
	}
	if err := v.Err(); err != nil {
		return nil, err
	}
	return s.repo.ListDaily(ctx, userID, filter)
}

func (s *Service) GetDaily(ctx context.Context, userID, date string) (*DailyUpdate, error) {
	var v validation.Checker
	v.Date("date", date)
	if err := v.Err(); err != nil {
		return nil, err
	}
	return s.repo.GetDaily(ctx, userID, date)
}

// UpsertDaily creates the user's update for input.Date or overwrites the existing one. The returned flag
// reports whether a new row was created. A concurrent first write for the same date loses to a plain
// overwrite. The activity entry is a separate write.
func (s *Service) UpsertDaily(ctx context.Context, userID string, input DailyInput) (*DailyUpdate, bool, error) {
	var v validation.Checker
	v.Date("date", input.Date)
	v.Check(input.TasksCompleted >= 0, "tasksCompleted", "must not be negative")
	v.IntRange("hoursWorked", input.HoursWorked, 0, MaxMinutesPerDay)
	v.IntRange("mood", input.Mood, MinMood, MaxMood)
	v.MaxLength("notes", input.Notes, 5000)
	if err := v.Err(); err != nil {
		return nil, false, err
	}

	now := s.now().UTC()
	existing, err := s.repo.GetDaily(ctx, userID, input.Date)
	if err != nil && !errors.Is(err, ErrDailyUpdateNotFound) {
		return nil, false, err
	}

	created := existing == nil
	if created {
		existing = &DailyUpdate{
			ID:        uuid.NewString(),
			UserID:    userID,
			Date:      input.Date,
			CreatedAt: now,
		}
	}
	existing.TasksCompleted = input.TasksCompleted
	existing.HoursWorked = input.HoursWorked
	existing.Mood = input.Mood
	existing.Notes = optionalText(input.Notes)
	existing.UpdatedAt = now

	if created {
		err = s.repo.CreateDaily(ctx, existing)
		if errors.Is(err, ErrDailyUpdateExists) {
			existing, err = s.overwriteDaily(ctx, userID, existing)
			created = false
		}
	} else {
		err = s.repo.UpdateDaily(ctx, existing)
	}
	if err != nil {
		return nil, false, err
	}

	description := fmt.Sprintf("Completed %d tasks on %s", input.TasksCompleted, input.Date)
	if err := s.activities.Record(ctx, userID, activity.TypeDailyUpdate, description); err != nil {
		return nil, false, err
	}
	return existing, created, nil
}

// overwriteDaily copies the values of a lost insert onto the row that won it.
func (s *Service) overwriteDaily(ctx context.Context, userID string, lost *DailyUpdate) (*DailyUpdate, error) {
	winner, err := s.repo.GetDaily(ctx, userID, lost.Date)
	if err != nil {
		return nil, err
	}
	winner.TasksCompleted = lost.TasksCompleted
	winner.HoursWorked = lost.HoursWorked
	winner.Mood = lost.Mood
	winner.Notes = lost.Notes
	winner.UpdatedAt = lost.UpdatedAt
	if err := s.repo.UpdateDaily(ctx, winner); err != nil {
		return nil, err
	}
	return winner, nil
}

func (s *Service) ListUserUpdates(ctx context.Context, filter UserUpdateFilter) ([]UserUpdate, error) {
	if filter.Date != "" {
		var v validation.Checker
		v.Date("date", filter.Date)
		if err := v.Err(); err != nil {
			return nil, err
		}
	}
	return s.repo.ListUserUpdates(ctx, filter)
}

// CreateUserUpdate posts a progress note. A referenced team or project must be open to the caller
// and a referenced task must be the caller's own.
func (s *Service) CreateUserUpdate(ctx context.Context, actor project.Actor, input UserUpdateInput) (*UserUpdate, error) {
	var v validation.Checker
	date := input.Date
	if date == "" {
		date = s.now().UTC().Format(validation.DateLayout)
	}
	v.Date("date", date)
	description := strings.TrimSpace(input.Description)
	if v.Required("description", description) {
		v.MaxLength("description", description, 5000)
	}
	status := task.StatusInProgress
	if input.Status != "" {
		parsed, err := task.ParseStatus(input.Status)
		v.Check(err == nil, "status", "must be one of TODO, IN_PROGRESS, COMPLETED, BLOCKED, REVIEW")
		status = parsed
	}
	v.IntRange("hoursWorked", input.HoursWorked, 0, MaxMinutesPerDay)
	if err := v.Err(); err != nil {
		return nil, err
	}
	if err := s.scopes.CheckScope(ctx, actor, deref(input.TeamID), deref(input.ProjectID)); err != nil {
		return nil, err
	}
	if taskID := deref(input.TaskID); taskID != "" {
		if _, err := s.tasks.Get(ctx, actor.UserID, taskID); err != nil {
			return nil, err
		}
	}

	update := UserUpdate{
		ID:          uuid.NewString(),
		UserID:      actor.UserID,
		TeamID:      emptyToNil(input.TeamID),
		ProjectID:   emptyToNil(input.ProjectID),
		TaskID:      emptyToNil(input.TaskID),
		Date:        date,
		Description: description,
		Status:      status,
		HoursWorked: input.HoursWorked,
		Blockers:    optionalText(input.Blockers),
		CreatedAt:   s.now().UTC(),
	}
	if err := s.repo.CreateUserUpdate(ctx, &update); err != nil {
		return nil, err
	}
	if err := s.activities.Record(ctx, actor.UserID, activity.TypeUserUpdate, "Posted a progress update"); err != nil {
		return nil, err
	}
	return &update, nil
}

func optionalText(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}

func emptyToNil(value *string) *string {
	if value == nil {
		return nil
	}
	return optionalText(*value)
}

func deref(value *string) string {
	if trimmed := emptyToNil(value); trimmed != nil {
		return *trimmed
	}
	return ""
}
