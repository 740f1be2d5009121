package session

import (
	"context"
	"time"
)

type Store interface {
	// Get returns ErrSessionNotFound for unknown and expired sessions alike.
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, session *Session) error
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type Refresher interface {
	Refresh(ctx context.Context, refreshToken string) (*TokenSet, error)
}
