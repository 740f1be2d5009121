package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"team-tracker-go/internal/config"
	sessiondomain "team-tracker-go/internal/domain/session"
	userdomain "team-tracker-go/internal/domain/user"
	"team-tracker-go/pkg/logger"
)

type fakeSessions struct {
	sessions  map[string]*sessiondomain.Session
	destroyed []string
}

func (f *fakeSessions) Load(ctx context.Context, id string) (*sessiondomain.Session, error) {
	sess, ok := f.sessions[id]
	if !ok {
		return nil, sessiondomain.ErrSessionNotFound
	}
	return sess, nil
}

func (f *fakeSessions) EnsureFresh(ctx context.Context, sess *sessiondomain.Session) error {
	if !sess.Authenticated() {
		return sessiondomain.ErrNotAuthenticated
	}
	return nil
}

func (f *fakeSessions) Destroy(ctx context.Context, id string) error {
	f.destroyed = append(f.destroyed, id)
	delete(f.sessions, id)
	return nil
}

type fakeUsers map[string]*userdomain.User

func (f fakeUsers) Get(ctx context.Context, id string) (*userdomain.User, error) {
	user, ok := f[id]
	if !ok {
		return nil, userdomain.ErrUserNotFound
	}
	return user, nil
}

func newAuthFixture(t *testing.T, users fakeUsers) (*SessionAuth, *fakeSessions, *http.Cookie) {
	t.Helper()
	cookies := NewCookies(config.SessionConfig{
		Secret:     strings.Repeat("k", 32),
		TTL:        time.Hour,
		CookieName: "tracker.sid",
	})
	sess := &sessiondomain.Session{
		ID:        "sid-1",
		Data:      sessiondomain.Data{UserID: "user-1", Mode: sessiondomain.ModeLocal, CreatedAt: time.Now()},
		ExpiresAt: time.Now().Add(time.Hour),
	}
	sessions := &fakeSessions{sessions: map[string]*sessiondomain.Session{sess.ID: sess}}

	rec := httptest.NewRecorder()
	require.NoError(t, cookies.Set(rec, sess))
	cookie := rec.Result().Cookies()[0]

	return NewSessionAuth(cookies, sessions, users, logger.Nop()), sessions, cookie
}

func TestRequireSessionPassesUser(t *testing.T) {
	auth, _, cookie := newAuthFixture(t, fakeUsers{"user-1": {ID: "user-1"}})

	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, _ := UserFromContext(r.Context())
		seen = user.ID
	})
	req := httptest.NewRequest(http.MethodGet, "/api/auth/user", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	auth.RequireSession(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", seen)
}

func TestRequireSessionDestroysSessionOfMissingUser(t *testing.T) {
	auth, sessions, cookie := newAuthFixture(t, fakeUsers{})

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("handler must not run for a deleted user")
	})
	req := httptest.NewRequest(http.MethodGet, "/api/auth/user", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	auth.RequireSession(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, []string{"sid-1"}, sessions.destroyed)

	cleared := rec.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Equal(t, "tracker.sid", cleared[0].Name)
	assert.Equal(t, -1, cleared[0].MaxAge)
}
