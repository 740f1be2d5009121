package inmemory

import (
	"context"
	"time"

	sessiondomain "team-tracker-go/internal/domain/session"
)

type SessionStore struct {
	store *Store
}

// Get treats an expired entry as missing and evicts it.
func (s *SessionStore) Get(ctx context.Context, id string) (*sessiondomain.Session, error) {
	now := s.store.now()

	s.store.mu.RLock()
	sess, ok := s.store.sessions[id]
	s.store.mu.RUnlock()
	if !ok {
		return nil, sessiondomain.ErrSessionNotFound
	}

	if !sess.ExpiresAt.After(now) {
		s.store.mu.Lock()
		sess, ok = s.store.sessions[id]
		if ok && !sess.ExpiresAt.After(now) {
			delete(s.store.sessions, id)
		}
		s.store.mu.Unlock()
		return nil, sessiondomain.ErrSessionNotFound
	}
	return &sess, nil
}

func (s *SessionStore) Save(ctx context.Context, sess *sessiondomain.Session) error {
	s.store.mu.Lock()
	s.store.sessions[sess.ID] = *sess
	s.store.mu.Unlock()
	return nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	s.store.mu.Lock()
	delete(s.store.sessions, id)
	s.store.mu.Unlock()
	return nil
}

func (s *SessionStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	var deleted int64
	for id, sess := range s.store.sessions {
		if !sess.ExpiresAt.After(now) {
			delete(s.store.sessions, id)
			deleted++
		}
	}
	return deleted, nil
}
