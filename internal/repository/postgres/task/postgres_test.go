package task

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	domain "team-tracker-go/internal/domain/task"
	"team-tracker-go/internal/repository/postgres/postgrestest"
)

func TestCountByStatus(t *testing.T) {
	db, mock := postgrestest.New(t)
	repo := NewPostgres(db)

	rows := sqlmock.NewRows([]string{"status", "total"}).
		AddRow("COMPLETED", 3).
		AddRow("TODO", 5)
	mock.ExpectQuery(`SELECT status, COUNT\(\*\) AS total FROM "tasks" WHERE user_id = \$1 GROUP BY "status"`).
		WillReturnRows(rows)

	counts, err := repo.CountByStatus(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("CountByStatus error: %v", err)
	}
	if counts[domain.StatusCompleted] != 3 || counts[domain.StatusTodo] != 5 {
		t.Fatalf("unexpected counts: %v", counts)
	}
}

func TestDelete_ReportsWhetherRowExisted(t *testing.T) {
	db, mock := postgrestest.New(t)
	repo := NewPostgres(db)

	mock.ExpectExec(`DELETE FROM "tasks" WHERE user_id = \$1 AND id = \$2`).WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := repo.Delete(context.Background(), "u-1", "t-1")
	if err != nil || deleted {
		t.Fatalf("expected nothing deleted, got %v %v", deleted, err)
	}
}
