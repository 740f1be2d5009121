package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	domain "team-tracker-go/internal/domain/session"
	"team-tracker-go/internal/repository/postgres/postgrestest"
)

func TestGet_DecodesSessionPayload(t *testing.T) {
	db, mock := postgrestest.New(t)
	store := NewPostgres(db)

	expire := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return expire.Add(-time.Hour) }

	payload := []byte(`{"userId":"u-1","mode":"oidc","claims":{"sub":"u-1","email":"ada@example.com"},"refreshToken":"r-1","createdAt":"2024-01-01T00:00:00Z"}`)
	rows := sqlmock.NewRows([]string{"sid", "sess", "expire"}).AddRow("sid-1", payload, expire)
	mock.ExpectQuery(`SELECT \* FROM "sessions" WHERE sid = \$1 AND expire > \$2`).WillReturnRows(rows)

	got, err := store.Get(context.Background(), "sid-1")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.Data.UserID != "u-1" || got.Data.Mode != domain.ModeOIDC || got.Data.Claims.Email != "ada@example.com" {
		t.Fatalf("unexpected session data: %+v", got.Data)
	}
	if !got.Authenticated() || !got.ExpiresAt.Equal(expire) {
		t.Fatalf("unexpected session: %+v", got)
	}
}

func TestGet_Missing(t *testing.T) {
	db, mock := postgrestest.New(t)
	store := NewPostgres(db)

	mock.ExpectQuery(`SELECT \* FROM "sessions"`).WillReturnRows(sqlmock.NewRows([]string{"sid"}))

	if _, err := store.Get(context.Background(), "gone"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestDeleteExpired_ReportsRows(t *testing.T) {
	db, mock := postgrestest.New(t)
	store := NewPostgres(db)

	mock.ExpectExec(`DELETE FROM "sessions" WHERE expire <= \$1`).WillReturnResult(sqlmock.NewResult(0, 3))

	deleted, err := store.DeleteExpired(context.Background(), time.Now())
	if err != nil || deleted != 3 {
		t.Fatalf("expected 3 deleted, got %d %v", deleted, err)
	}
}
