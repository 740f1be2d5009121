package project

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	domain "team-tracker-go/internal/domain/project"
	"team-tracker-go/internal/repository/postgres/postgrestest"
)

func TestCount_EmptyTeamScopeMatchesNothing(t *testing.T) {
	db, mock := postgrestest.New(t)
	repo := NewPostgres(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "projects" WHERE 1 = 0`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	total, err := repo.Count(context.Background(), domain.ListFilter{TeamIDs: []string{}})
	if err != nil || total != 0 {
		t.Fatalf("expected 0, got %d %v", total, err)
	}
}

func TestList_ScopesByTeamAndStatus(t *testing.T) {
	db, mock := postgrestest.New(t)
	repo := NewPostgres(db)

	rows := sqlmock.NewRows([]string{"id", "team_id", "name", "status", "priority", "progress"}).
		AddRow("p-1", "t-1", "Launch", "active", "high", 40)
	mock.ExpectQuery(`SELECT \* FROM "projects" WHERE team_id IN \(\$1,\$2\) AND status = \$3 ORDER BY created_at desc`).
		WillReturnRows(rows)

	active := domain.StatusActive
	projects, err := repo.List(context.Background(), domain.ListFilter{TeamIDs: []string{"t-1", "t-2"}, Status: &active})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(projects) != 1 || projects[0].Priority != domain.PriorityHigh {
		t.Fatalf("unexpected projects: %+v", projects)
	}
}
