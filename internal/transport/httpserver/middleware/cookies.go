package middleware

import (
	"net/http"
	"time"

	"team-tracker-go/internal/config"
	sessiondomain "team-tracker-go/internal/domain/session"
)

// Cookies reads and writes the signed session cookie.
type Cookies struct {
	name   string
	secure bool
	ttl    time.Duration
	codec  sessiondomain.CookieCodec
	now    func() time.Time
}

func NewCookies(cfg config.SessionConfig) *Cookies {
	return &Cookies{
		name:   cfg.CookieName,
		secure: cfg.CookieSecure,
		ttl:    cfg.TTL,
		codec:  sessiondomain.NewCookieCodec(cfg.Secret),
		now:    time.Now,
	}
}

// SessionID returns the session id from a valid cookie, or ErrInvalidCookie.
func (c *Cookies) SessionID(r *http.Request) (string, error) {
	cookie, err := r.Cookie(c.name)
	if err != nil || cookie.Value == "" {
		return "", sessiondomain.ErrInvalidCookie
	}
	return c.codec.Decode(cookie.Value, c.now())
}

func (c *Cookies) Set(w http.ResponseWriter, sess *sessiondomain.Session) error {
	value, err := c.codec.Encode(sess)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     c.name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(c.ttl / time.Second),
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (c *Cookies) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
