package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieCodec signs the session id into the cookie value so a forged id is rejected before any
// store lookup.
type CookieCodec struct {
	secret []byte
}

func NewCookieCodec(secret string) CookieCodec {
	return CookieCodec{secret: []byte(secret)}
}

func (c CookieCodec) Encode(sess *Session) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        sess.ID,
		IssuedAt:  jwt.NewNumericDate(sess.Data.CreatedAt),
		ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
	})
	value, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign session cookie: %w", err)
	}
	return value, nil
}

// Decode returns the session id carried by a cookie value.
func (c CookieCodec) Decode(value string, now time.Time) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	token, err := parser.ParseWithClaims(value, claims, func(*jwt.Token) (interface{}, error) {
		return c.secret, nil
	})
	if err != nil || !token.Valid || claims.ID == "" {
		return "", ErrInvalidCookie
	}
	return claims.ID, nil
}
