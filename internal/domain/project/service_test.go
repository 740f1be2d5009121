package project

import (
	"context"
	"errors"
	"slices"
	"testing"

	"team-tracker-go/internal/domain/team"
	"team-tracker-go/internal/domain/validation"
)

type fakeProjectRepo struct {
	projects map[string]Project
	updates  []ProjectUpdate
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{projects: map[string]Project{}}
}

func (r *fakeProjectRepo) matches(project Project, filter ListFilter) bool {
	if filter.TeamIDs != nil && !slices.Contains(filter.TeamIDs, project.TeamID) {
		return false
	}
	if filter.TeamID != "" && project.TeamID != filter.TeamID {
		return false
	}
	if filter.Status != nil && project.Status != *filter.Status {
		return false
	}
	return true
}

func (r *fakeProjectRepo) List(ctx context.Context, filter ListFilter) ([]Project, error) {
	var result []Project
	for _, project := range r.projects {
		if r.matches(project, filter) {
			result = append(result, project)
		}
	}
	return result, nil
}

func (r *fakeProjectRepo) Count(ctx context.Context, filter ListFilter) (int64, error) {
	items, _ := r.List(ctx, filter)
	return int64(len(items)), nil
}

func (r *fakeProjectRepo) Get(ctx context.Context, id string) (*Project, error) {
	project, ok := r.projects[id]
	if !ok {
		return nil, ErrProjectNotFound
	}
	return &project, nil
}

func (r *fakeProjectRepo) Create(ctx context.Context, project *Project) error {
	r.projects[project.ID] = *project
	return nil
}

func (r *fakeProjectRepo) Update(ctx context.Context, project *Project) error {
	r.projects[project.ID] = *project
	return nil
}

func (r *fakeProjectRepo) ListUpdates(ctx context.Context, projectID string) ([]ProjectUpdate, error) {
	var result []ProjectUpdate
	for _, update := range r.updates {
		if update.ProjectID == projectID {
			result = append(result, update)
		}
	}
	return result, nil
}

func (r *fakeProjectRepo) CreateUpdate(ctx context.Context, update *ProjectUpdate) error {
	r.updates = append(r.updates, *update)
	return nil
}

// fakeTeams knows team "t1" with "member" active and "pending" waiting.
type fakeTeams struct{}

func (fakeTeams) Get(ctx context.Context, id string) (*team.Team, error) {
	if id != "t1" && id != "t2" {
		return nil, team.ErrTeamNotFound
	}
	return &team.Team{ID: id}, nil
}

func (fakeTeams) IsActiveMember(ctx context.Context, teamID, userID string) (bool, error) {
	return teamID == "t1" && userID == "member", nil
}

func (fakeTeams) ActiveTeamIDs(ctx context.Context, userID string) ([]string, error) {
	if userID == "member" {
		return []string{"t1"}, nil
	}
	return nil, nil
}

type nopRecorder struct{}

func (nopRecorder) Record(ctx context.Context, userID, activityType, description string) error {
	return nil
}

var (
	member   = Actor{UserID: "member"}
	outsider = Actor{UserID: "pending"}
	admin    = Actor{UserID: "admin", Admin: true}
)

func TestCreateRequiresMembership(t *testing.T) {
	svc := NewService(newFakeProjectRepo(), fakeTeams{}, nopRecorder{})

	project, err := svc.Create(context.Background(), member, CreateInput{TeamID: "t1", Name: "Launch"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if project.Status != StatusActive || project.Priority != PriorityMedium || project.CreatedBy != "member" {
		t.Fatalf("unexpected defaults: %+v", project)
	}

	if _, err := svc.Create(context.Background(), outsider, CreateInput{TeamID: "t1", Name: "Sneaky"}); !errors.Is(err, ErrNotTeamMember) {
		t.Fatalf("expected ErrNotTeamMember, got %v", err)
	}
	if _, err := svc.Create(context.Background(), admin, CreateInput{TeamID: "t2", Name: "Admin project"}); err != nil {
		t.Fatalf("admin may create in any team, got %v", err)
	}
	if _, err := svc.Create(context.Background(), admin, CreateInput{TeamID: "missing", Name: "Nowhere"}); !errors.Is(err, team.ErrTeamNotFound) {
		t.Fatalf("expected ErrTeamNotFound, got %v", err)
	}
}

func TestListIsScopedToActiveTeams(t *testing.T) {
	repo := newFakeProjectRepo()
	repo.projects["p1"] = Project{ID: "p1", TeamID: "t1", Status: StatusActive}
	repo.projects["p2"] = Project{ID: "p2", TeamID: "t2", Status: StatusActive}
	repo.projects["p3"] = Project{ID: "p3", TeamID: "t1", Status: StatusArchived}
	svc := NewService(repo, fakeTeams{}, nopRecorder{})

	items, err := svc.List(context.Background(), member, ListFilter{})
	if err != nil || len(items) != 2 {
		t.Fatalf("expected 2 projects for member, got %d %v", len(items), err)
	}
	items, err = svc.List(context.Background(), outsider, ListFilter{})
	if err != nil || len(items) != 0 {
		t.Fatalf("expected no projects for outsider, got %d %v", len(items), err)
	}
	items, err = svc.List(context.Background(), admin, ListFilter{TeamIDs: []string{"ignored"}})
	if err != nil || len(items) != 3 {
		t.Fatalf("expected all projects for admin, got %d %v", len(items), err)
	}

	count, err := svc.CountActive(context.Background(), member)
	if err != nil || count != 1 {
		t.Fatalf("expected 1 active project, got %d %v", count, err)
	}
}

func TestAddUpdateMovesProgress(t *testing.T) {
	repo := newFakeProjectRepo()
	repo.projects["p1"] = Project{ID: "p1", TeamID: "t1", Name: "Launch", Status: StatusActive, Progress: 10}
	svc := NewService(repo, fakeTeams{}, nopRecorder{})

	progress := 60
	entry, err := svc.AddUpdate(context.Background(), member, "p1", UpdateEntryInput{Description: "Halfway", Progress: &progress, HoursWorked: 90})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if entry.UserID != "member" {
		t.Fatalf("expected update authored by caller")
	}
	if repo.projects["p1"].Progress != 60 {
		t.Fatalf("expected project progress 60, got %d", repo.projects["p1"].Progress)
	}

	if _, err := svc.AddUpdate(context.Background(), outsider, "p1", UpdateEntryInput{Description: "x"}); !errors.Is(err, ErrNotTeamMember) {
		t.Fatalf("expected ErrNotTeamMember, got %v", err)
	}
	if _, err := svc.ListUpdates(context.Background(), member, "missing"); !errors.Is(err, ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
}

func TestCheckScope(t *testing.T) {
	repo := newFakeProjectRepo()
	repo.projects["p1"] = Project{ID: "p1", TeamID: "t1"}
	repo.projects["p2"] = Project{ID: "p2", TeamID: "t2"}
	svc := NewService(repo, fakeTeams{}, nopRecorder{})
	ctx := context.Background()

	if err := svc.CheckScope(ctx, outsider, "", ""); err != nil {
		t.Fatalf("expected empty scope to pass, got %v", err)
	}
	if err := svc.CheckScope(ctx, member, "t1", "p1"); err != nil {
		t.Fatalf("expected member scope to pass, got %v", err)
	}
	if err := svc.CheckScope(ctx, member, "missing", ""); !errors.Is(err, team.ErrTeamNotFound) {
		t.Fatalf("expected ErrTeamNotFound, got %v", err)
	}
	if err := svc.CheckScope(ctx, outsider, "t1", ""); !errors.Is(err, ErrNotTeamMember) {
		t.Fatalf("expected ErrNotTeamMember for team, got %v", err)
	}
	if err := svc.CheckScope(ctx, outsider, "", "p1"); !errors.Is(err, ErrNotTeamMember) {
		t.Fatalf("expected ErrNotTeamMember for project, got %v", err)
	}
	if err := svc.CheckScope(ctx, member, "", "does-not-exist"); !errors.Is(err, ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}

	var verr validation.Errors
	if err := svc.CheckScope(ctx, admin, "t1", "p2"); !errors.As(err, &verr) || len(verr) != 1 || verr[0].Field != "projectId" {
		t.Fatalf("expected projectId validation error, got %v", err)
	}
	if err := svc.CheckScope(ctx, admin, "t2", "p2"); err != nil {
		t.Fatalf("admin may file under any team, got %v", err)
	}
}
