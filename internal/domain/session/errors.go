package session

import "errors"

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrNotAuthenticated = errors.New("session not authenticated")
	ErrSessionExpired   = errors.New("session expired")
	ErrInvalidCookie    = errors.New("invalid session cookie")
)
