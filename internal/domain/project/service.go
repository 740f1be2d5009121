package project

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"team-tracker-go/internal/domain/activity"
	"team-tracker-go/internal/domain/team"
	"team-tracker-go/internal/domain/validation"
)

// Teams answers the membership questions project access depends on.
type Teams interface {
	Get(ctx context.Context, id string) (*team.Team, error)
	IsActiveMember(ctx context.Context, teamID, userID string) (bool, error)
	ActiveTeamIDs(ctx context.Context, userID string) ([]string, error)
}

type ActivityRecorder interface {
	Record(ctx context.Context, userID, activityType, description string) error
}

type Service struct {
	repo       Repository
	teams      Teams
	activities ActivityRecorder
	now        func() time.Time
}

func NewService(repo Repository, teams Teams, activities ActivityRecorder) *Service {
	return &Service{repo: repo, teams: teams, activities: activities, now: time.Now}
}

// List returns every project for admins and the projects of the caller's active teams otherwise.
func (s *Service) List(ctx context.Context, actor Actor, filter ListFilter) ([]Project, error) {
	scoped, err := s.scope(ctx, actor, filter)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, scoped)
}

// CountActive counts the active projects visible to the caller.
func (s *Service) CountActive(ctx context.Context, actor Actor) (int64, error) {
	active := StatusActive
	scoped, err := s.scope(ctx, actor, ListFilter{Status: &active})
	if err != nil {
		return 0, err
	}
	return s.repo.Count(ctx, scoped)
}

func (s *Service) Get(ctx context.Context, actor Actor, id string) (*Project, error) {
	project, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, actor, project.TeamID); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *Service) Create(ctx context.Context, actor Actor, input CreateInput) (*Project, error) {
	var v validation.Checker
	name := strings.TrimSpace(input.Name)
	if v.Required("name", name) {
		v.MaxLength("name", name, 200)
	}
	v.Required("teamId", input.TeamID)
	status := StatusActive
	if input.Status != "" {
		parsed, err := ParseStatus(input.Status)
		v.Check(err == nil, "status", "must be active, completed or archived")
		status = parsed
	}
	priority := PriorityMedium
	if input.Priority != "" {
		parsed, err := ParsePriority(input.Priority)
		v.Check(err == nil, "priority", "must be low, medium, high or urgent")
		priority = parsed
	}
	v.IntRange("progress", input.Progress, 0, 100)
	v.OptionalDate("startDate", input.StartDate)
	v.OptionalDate("dueDate", input.DueDate)
	if err := v.Err(); err != nil {
		return nil, err
	}

	if _, err := s.teams.Get(ctx, input.TeamID); err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, actor, input.TeamID); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	project := Project{
		ID:          uuid.NewString(),
		TeamID:      input.TeamID,
		CreatedBy:   actor.UserID,
		Name:        name,
		Description: optionalText(input.Description),
		Status:      status,
		Priority:    priority,
		Progress:    input.Progress,
		StartDate:   emptyToNil(input.StartDate),
		DueDate:     emptyToNil(input.DueDate),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

func (s *Service) Update(ctx context.Context, actor Actor, id string, input UpdateInput) (*Project, error) {
	var (
		v        validation.Checker
		status   *Status
		priority *Priority
	)
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if v.Required("name", name) {
			v.MaxLength("name", name, 200)
		}
		input.Name = &name
	}
	if input.Status != nil {
		parsed, err := ParseStatus(*input.Status)
		v.Check(err == nil, "status", "must be active, completed or archived")
		status = &parsed
	}
	if input.Priority != nil {
		parsed, err := ParsePriority(*input.Priority)
		v.Check(err == nil, "priority", "must be low, medium, high or urgent")
		priority = &parsed
	}
	if input.Progress != nil {
		v.IntRange("progress", *input.Progress, 0, 100)
	}
	v.OptionalDate("startDate", input.StartDate)
	v.OptionalDate("dueDate", input.DueDate)
	if err := v.Err(); err != nil {
		return nil, err
	}

	project, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		project.Name = *input.Name
	}
	if input.Description != nil {
		project.Description = optionalText(*input.Description)
	}
	if status != nil {
		project.Status = *status
	}
	if priority != nil {
		project.Priority = *priority
	}
	if input.Progress != nil {
		project.Progress = *input.Progress
	}
	if input.StartDate != nil {
		project.StartDate = emptyToNil(input.StartDate)
	}
	if input.DueDate != nil {
		project.DueDate = emptyToNil(input.DueDate)
	}
	project.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *Service) ListUpdates(ctx context.Context, actor Actor, projectID string) ([]ProjectUpdate, error) {
	if _, err := s.Get(ctx, actor, projectID); err != nil {
		return nil, err
	}
	return s.repo.ListUpdates(ctx, projectID)
}

// AddUpdate logs work on a project. A provided progress or status also moves the project itself.
func (s *Service) AddUpdate(ctx context.Context, actor Actor, projectID string, input UpdateEntryInput) (*ProjectUpdate, error) {
	var (
		v      validation.Checker
		status *Status
	)
	description := strings.TrimSpace(input.Description)
	if v.Required("description", description) {
		v.MaxLength("description", description, 5000)
	}
	if input.Progress != nil {
		v.IntRange("progress", *input.Progress, 0, 100)
	}
	v.Check(input.HoursWorked >= 0, "hoursWorked", "must not be negative")
	if input.Status != nil {
		parsed, err := ParseStatus(*input.Status)
		v.Check(err == nil, "status", "must be active, completed or archived")
		status = &parsed
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	project, err := s.Get(ctx, actor, projectID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	entry := ProjectUpdate{
		ID:          uuid.NewString(),
		ProjectID:   projectID,
		UserID:      actor.UserID,
		Description: description,
		Progress:    input.Progress,
		HoursWorked: input.HoursWorked,
		Status:      status,
		CreatedAt:   now,
	}
	if err := s.repo.CreateUpdate(ctx, &entry); err != nil {
		return nil, err
	}

	if input.Progress != nil || status != nil {
		if input.Progress != nil {
			project.Progress = *input.Progress
		}
		if status != nil {
			project.Status = *status
		}
		project.UpdatedAt = now
		if err := s.repo.Update(ctx, project); err != nil {
			return nil, err
		}
	}

	description = fmt.Sprintf("Posted an update on %s", project.Name)
	if err := s.activities.Record(ctx, actor.UserID, activity.TypeProjectUpdate, description); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *Service) scope(ctx context.Context, actor Actor, filter ListFilter) (ListFilter, error) {
	if actor.Admin {
		filter.TeamIDs = nil
		return filter, nil
	}
	teamIDs, err := s.teams.ActiveTeamIDs(ctx, actor.UserID)
	if err != nil {
		return ListFilter{}, err
	}
	filter.TeamIDs = teamIDs
	if filter.TeamIDs == nil {
		filter.TeamIDs = []string{}
	}
	return filter, nil
}

// CheckScope verifies the caller may file work under teamID and projectID. Empty ids are skipped.
// When both are given the project must belong to that team.
func (s *Service) CheckScope(ctx context.Context, actor Actor, teamID, projectID string) error {
	if teamID != "" {
		if _, err := s.teams.Get(ctx, teamID); err != nil {
			return err
		}
		if err := s.authorize(ctx, actor, teamID); err != nil {
			return err
		}
	}
	if projectID == "" {
		return nil
	}
	project, err := s.Get(ctx, actor, projectID)
	if err != nil {
		return err
	}
	if teamID != "" && project.TeamID != teamID {
		var v validation.Checker
		v.Add("projectId", "must belong to the given team")
		return v.Err()
	}
	return nil
}

func (s *Service) authorize(ctx context.Context, actor Actor, teamID string) error {
	if actor.Admin {
		return nil
	}
	ok, err := s.teams.IsActiveMember(ctx, teamID, actor.UserID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotTeamMember
	}
	return nil
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
