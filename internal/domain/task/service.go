package task

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"team-tracker-go/internal/domain/activity"
	"team-tracker-go/internal/domain/project"
	"team-tracker-go/internal/domain/validation"
)

// Scopes checks that the caller may file work under a team and project.
type Scopes interface {
	CheckScope(ctx context.Context, actor project.Actor, teamID, projectID string) error
}

type ActivityRecorder interface {
	Record(ctx context.Context, userID, activityType, description string) error
}

type Service struct {
	repo       Repository
	scopes     Scopes
	activities ActivityRecorder
	now        func() time.Time
}

func NewService(repo Repository, scopes Scopes, activities ActivityRecorder) *Service {
	return &Service{repo: repo, scopes: scopes, activities: activities, now: time.Now}
}

func (s *Service) List(ctx context.Context, userID string, filter ListFilter) ([]Task, error) {
	return s.repo.List(ctx, userID, filter)
}

func (s *Service) Get(ctx context.Context, userID, id string) (*Task, error) {
	return s.repo.Get(ctx, userID, id)
}

func (s *Service) Create(ctx context.Context, actor project.Actor, input CreateInput) (*Task, error) {
	var v validation.Checker
	title := strings.TrimSpace(input.Title)
	if v.Required("title", title) {
		v.MaxLength("title", title, 200)
	}

	status := StatusTodo
	if input.Status != "" {
		parsed, err := ParseStatus(input.Status)
		v.Check(err == nil, "status", "must be one of TODO, IN_PROGRESS, COMPLETED, BLOCKED, REVIEW")
		status = parsed
	}
	priority := PriorityMedium
	if input.Priority != "" {
		parsed, err := ParsePriority(input.Priority)
		v.Check(err == nil, "priority", "must be one of LOW, MEDIUM, HIGH, URGENT")
		priority = parsed
	}
	v.OptionalDate("dueDate", input.DueDate)
	checkHours(&v, "estimatedHours", input.EstimatedHours)
	checkHours(&v, "actualHours", input.ActualHours)
	if err := v.Err(); err != nil {
		return nil, err
	}
	if err := s.scopes.CheckScope(ctx, actor, deref(input.TeamID), deref(input.ProjectID)); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	task := Task{
		ID:             uuid.NewString(),
		UserID:         actor.UserID,
		TeamID:         emptyToNil(input.TeamID),
		ProjectID:      emptyToNil(input.ProjectID),
		Title:          title,
		Description:    optionalText(input.Description),
		Status:         status,
		Priority:       priority,
		DueDate:        emptyToNil(input.DueDate),
		EstimatedHours: input.EstimatedHours,
		ActualHours:    input.ActualHours,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if status == StatusCompleted {
		task.CompletedAt = &now
	}

	if err := s.repo.Create(ctx, &task); err != nil {
		return nil, err
	}
	if status == StatusCompleted {
		if err := s.recordCompletion(ctx, &task); err != nil {
			return nil, err
		}
	}
	return &task, nil
}

// Update applies a partial change. Moving into COMPLETED stamps completed_at and records an activity;
// moving out of it clears the stamp. A changed team or project is checked as a pair.
func (s *Service) Update(ctx context.Context, actor project.Actor, id string, input UpdateInput) (*Task, error) {
	var (
		v        validation.Checker
		status   *Status
		priority *Priority
	)
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if v.Required("title", title) {
			v.MaxLength("title", title, 200)
		}
		input.Title = &title
	}
	if input.Status != nil {
		parsed, err := ParseStatus(*input.Status)
		v.Check(err == nil, "status", "must be one of TODO, IN_PROGRESS, COMPLETED, BLOCKED, REVIEW")
		status = &parsed
	}
	if input.Priority != nil {
		parsed, err := ParsePriority(*input.Priority)
		v.Check(err == nil, "priority", "must be one of LOW, MEDIUM, HIGH, URGENT")
		priority = &parsed
	}
	v.OptionalDate("dueDate", input.DueDate)
	checkHours(&v, "estimatedHours", input.EstimatedHours)
	checkHours(&v, "actualHours", input.ActualHours)
	if err := v.Err(); err != nil {
		return nil, err
	}

	task, err := s.repo.Get(ctx, actor.UserID, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = optionalText(*input.Description)
	}
	if priority != nil {
		task.Priority = *priority
	}
	if input.TeamID != nil {
		task.TeamID = emptyToNil(input.TeamID)
	}
	if input.ProjectID != nil {
		task.ProjectID = emptyToNil(input.ProjectID)
	}
	if input.DueDate != nil {
		task.DueDate = emptyToNil(input.DueDate)
	}
	if input.EstimatedHours != nil {
		task.EstimatedHours = input.EstimatedHours
	}
	if input.ActualHours != nil {
		task.ActualHours = input.ActualHours
	}
	if input.TeamID != nil || input.ProjectID != nil {
		if err := s.scopes.CheckScope(ctx, actor, deref(task.TeamID), deref(task.ProjectID)); err != nil {
			return nil, err
		}
	}

	now := s.now().UTC()
	completed := false
	if status != nil && *status != task.Status {
		switch {
		case *status == StatusCompleted:
			task.CompletedAt = &now
			completed = true
		case task.Status == StatusCompleted:
			task.CompletedAt = nil
		}
		task.Status = *status
	}
	task.UpdatedAt = now

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}
	if completed {
		if err := s.recordCompletion(ctx, task); err != nil {
			return nil, err
		}
	}
	return task, nil
}

func (s *Service) Delete(ctx context.Context, userID, id string) error {
	deleted, err := s.repo.Delete(ctx, userID, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrTaskNotFound
	}
	return nil
}

// Stats returns task totals and the completion rate in percent, 0 when the user has no tasks.
func (s *Service) Stats(ctx context.Context, userID string) (Stats, error) {
	counts, err := s.repo.CountByStatus(ctx, userID)
	if err != nil {
		return Stats{}, err
	}
	var stats Stats
	for _, count := range counts {
		stats.Total += count
	}
	stats.Completed = counts[StatusCompleted]
	stats.CompletionRate = CompletionRate(stats.Completed, stats.Total)
	return stats, nil
}

func CompletionRate(completed, total int64) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(completed) / float64(total) * 100)
}

func (s *Service) recordCompletion(ctx context.Context, task *Task) error {
	return s.activities.Record(ctx, task.UserID, activity.TypeTaskCompleted, fmt.Sprintf("Completed task %q", task.Title))
}

func checkHours(v *validation.Checker, field string, value *int) {
	if value != nil {
		v.IntRange(field, *value, 0, 10_000)
	}
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
