package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	sessiondomain "team-tracker-go/internal/domain/session"
	userdomain "team-tracker-go/internal/domain/user"
	"team-tracker-go/pkg/logger"
)

type contextKey int

const (
	userKey contextKey = iota
	sessionKey
)

type Sessions interface {
	Load(ctx context.Context, id string) (*sessiondomain.Session, error)
	EnsureFresh(ctx context.Context, sess *sessiondomain.Session) error
	Destroy(ctx context.Context, id string) error
}

type Users interface {
	Get(ctx context.Context, id string) (*userdomain.User, error)
}

// SessionAuth resolves the session cookie into an authenticated user.
type SessionAuth struct {
	cookies  *Cookies
	sessions Sessions
	users    Users
	log      logger.Logger
}

func NewSessionAuth(cookies *Cookies, sessions Sessions, users Users, log logger.Logger) *SessionAuth {
	return &SessionAuth{
		cookies:  cookies,
		sessions: sessions,
		users:    users,
		log:      log,
	}
}

// RequireSession rejects the request with 401 unless the cookie names a live, fresh, authenticated session
// whose user still exists. An expired federated session gets one refresh attempt inside EnsureFresh.
func (a *SessionAuth) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := a.cookies.SessionID(r)
		if err != nil {
			unauthorized(w)
			return
		}

		sess, err := a.sessions.Load(ctx, id)
		if err != nil {
			if errors.Is(err, sessiondomain.ErrSessionNotFound) {
				a.cookies.Clear(w)
				unauthorized(w)
				return
			}
			a.log.InternalError("auth.session: load session failed", err)
			internalError(w)
			return
		}

		if err := a.sessions.EnsureFresh(ctx, sess); err != nil {
			if errors.Is(err, sessiondomain.ErrSessionExpired) || errors.Is(err, sessiondomain.ErrNotAuthenticated) {
				a.log.BusinessError("auth.session: session not usable", err, "session_user_id", sess.Data.UserID)
				a.cookies.Clear(w)
				unauthorized(w)
				return
			}
			a.log.InternalError("auth.session: refresh session failed", err, "user_id", sess.Data.UserID)
			internalError(w)
			return
		}

		user, err := a.users.Get(ctx, sess.Data.UserID)
		if err != nil {
			if errors.Is(err, userdomain.ErrUserNotFound) {
				a.log.BusinessError("auth.session: session user missing", err, "user_id", sess.Data.UserID)
				if err := a.sessions.Destroy(ctx, sess.ID); err != nil {
					a.log.InternalError("auth.session: destroy orphaned session failed", err, "user_id", sess.Data.UserID)
				}
				a.cookies.Clear(w)
				unauthorized(w)
				return
			}
			a.log.InternalError("auth.session: load user failed", err, "user_id", sess.Data.UserID)
			internalError(w)
			return
		}

		ctx = WithSession(ctx, sess)
		ctx = WithUser(ctx, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireApproved lets through APPROVED users only. Must run after RequireSession.
func RequireApproved(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			unauthorized(w)
			return
		}
		switch user.Status {
		case userdomain.StatusApproved:
			next.ServeHTTP(w, r)
		case userdomain.StatusRejected:
			writeError(w, http.StatusForbidden, "account_rejected", "account has been rejected")
		default:
			writeError(w, http.StatusForbidden, "account_pending", "account is awaiting approval")
		}
	})
}

// RequireAdmin lets through ADMIN users only. Must run after RequireSession.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			unauthorized(w)
			return
		}
		if !user.IsAdmin() {
			writeError(w, http.StatusForbidden, "forbidden", "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func unauthorized(w http.ResponseWriter) {
	writeError(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
}

func internalError(w http.ResponseWriter) {
	writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
}

func WithUser(ctx context.Context, user *userdomain.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

func UserFromContext(ctx context.Context) (*userdomain.User, bool) {
	user, ok := ctx.Value(userKey).(*userdomain.User)
	if !ok || user == nil || user.ID == "" {
		return nil, false
	}
	return user, true
}

func WithSession(ctx context.Context, sess *sessiondomain.Session) context.Context {
	return context.WithValue(ctx, sessionKey, sess)
}

func SessionFromContext(ctx context.Context) (*sessiondomain.Session, bool) {
	sess, ok := ctx.Value(sessionKey).(*sessiondomain.Session)
	if !ok || sess == nil {
		return nil, false
	}
	return sess, true
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
