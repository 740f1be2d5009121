package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"team-tracker-go/pkg/logger"
)

const DefaultTTL = 7 * 24 * time.Hour

// refreshedTokenLifetime is assumed for a refreshed access token whose response carries no expiry.
const refreshedTokenLifetime = 5 * time.Minute

type Service struct {
	store     Store
	refresher Refresher
	ttl       time.Duration
	now       func() time.Time
}

// NewService wires the session store with an optional token refresher. Without a refresher an expired
// federated session can only end in re-authentication.
func NewService(store Store, refresher Refresher, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{
		store:     store,
		refresher: refresher,
		ttl:       ttl,
		now:       time.Now,
	}
}

func (s *Service) TTL() time.Duration {
	return s.ttl
}

// BeginLogin stores a pending-callback session for the federated flow.
func (s *Service) BeginLogin(ctx context.Context, pending PendingLogin) (*Session, error) {
	return s.create(ctx, Data{Pending: &pending})
}

// Establish starts an authenticated session. A previous session, if any, is discarded so the
// session id always changes on privilege change.
func (s *Service) Establish(ctx context.Context, previousID string, data Data) (*Session, error) {
	if data.UserID == "" {
		return nil, fmt.Errorf("establish session: user id is required")
	}
	data.Pending = nil

	if previousID != "" {
		if err := s.store.Delete(ctx, previousID); err != nil {
			return nil, fmt.Errorf("discard previous session: %w", err)
		}
	}
	return s.create(ctx, data)
}

func (s *Service) Load(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return nil, ErrSessionNotFound
	}
	return s.store.Get(ctx, id)
}

func (s *Service) Destroy(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	return s.store.Delete(ctx, id)
}

// EnsureFresh runs on every authenticated request. A session whose access token has expired gets
// exactly one refresh attempt; if that is impossible or fails, the session is destroyed and
// ErrSessionExpired is returned.
func (s *Service) EnsureFresh(ctx context.Context, sess *Session) error {
	if !sess.Authenticated() {
		return ErrNotAuthenticated
	}

	expiresAt := sess.Data.TokenExpiresAt
	if expiresAt == nil || !s.now().After(*expiresAt) {
		return nil
	}

	if sess.Data.RefreshToken == "" || s.refresher == nil {
		s.discard(ctx, sess.ID)
		return ErrSessionExpired
	}

	tokens, err := s.refresher.Refresh(ctx, sess.Data.RefreshToken)
	if err != nil {
		s.discard(ctx, sess.ID)
		return fmt.Errorf("%w: refresh failed: %v", ErrSessionExpired, err)
	}

	applyTokens(&sess.Data, tokens)
	if tokens.ExpiresAt == nil {
		fallback := s.now().Add(refreshedTokenLifetime)
		sess.Data.TokenExpiresAt = &fallback
	}
	if err := s.store.Save(ctx, sess); err != nil {
		return fmt.Errorf("save refreshed session: %w", err)
	}
	return nil
}

// Prune removes expired sessions and returns how many were deleted.
func (s *Service) Prune(ctx context.Context) (int64, error) {
	return s.store.DeleteExpired(ctx, s.now())
}

// RunPruner deletes expired sessions every interval until ctx is done.
func (s *Service) RunPruner(ctx context.Context, interval time.Duration, log logger.Logger) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deleted, err := s.Prune(ctx)
			if err != nil {
				if !errors.Is(err, context.Canceled) {
					log.InternalError("sessions.prune: delete expired failed", err)
				}
				continue
			}
			if deleted > 0 {
				log.Debug("sessions.prune: deleted expired sessions", "count", deleted)
			}
		}
	}
}

func (s *Service) create(ctx context.Context, data Data) (*Session, error) {
	now := s.now()
	data.CreatedAt = now
	sess := &Session{
		ID:        uuid.NewString(),
		Data:      data,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return sess, nil
}

func (s *Service) discard(ctx context.Context, id string) {
	_ = s.store.Delete(ctx, id)
}

// applyTokens copies a token set into the session payload. An empty refresh token keeps the old one,
// as issuers are not required to rotate it. A missing expiry keeps the old one too.
func applyTokens(data *Data, tokens *TokenSet) {
	data.AccessToken = tokens.AccessToken
	if tokens.RefreshToken != "" {
		data.RefreshToken = tokens.RefreshToken
	}
	if tokens.IDToken != "" {
		data.IDToken = tokens.IDToken
	}
	if tokens.ExpiresAt != nil {
		data.TokenExpiresAt = tokens.ExpiresAt
	}
	if tokens.Claims != nil {
		data.Claims = *tokens.Claims
	}
}

// DataFromTokens builds the payload of a freshly federated session.
func DataFromTokens(userID string, tokens *TokenSet) Data {
	data := Data{UserID: userID, Mode: ModeOIDC}
	applyTokens(&data, tokens)
	return data
}
