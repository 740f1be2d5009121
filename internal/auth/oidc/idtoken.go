package oidc

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"team-tracker-go/internal/domain/session"
)

var ErrInvalidIDToken = errors.New("invalid id token")

type idTokenClaims struct {
	Email           string `json:"email"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	ProfileImageURL string `json:"profile_image_url"`
	GivenName       string `json:"given_name"`
	FamilyName      string `json:"family_name"`
	Picture         string `json:"picture"`
	jwt.RegisteredClaims
}

// parseIDToken reads the identity claims of an id token received directly from the token endpoint
// over TLS. Issuer and audience must match this client.
func parseIDToken(raw, issuer, clientID string) (*session.Claims, *time.Time, error) {
	claims := &idTokenClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidIDToken, err)
	}
	if claims.Issuer != issuer {
		return nil, nil, fmt.Errorf("%w: unexpected issuer %q", ErrInvalidIDToken, claims.Issuer)
	}
	if !slices.Contains(claims.Audience, clientID) {
		return nil, nil, fmt.Errorf("%w: audience mismatch", ErrInvalidIDToken)
	}

	var expiresAt *time.Time
	if claims.ExpiresAt != nil {
		value := claims.ExpiresAt.Time.UTC()
		expiresAt = &value
	}

	return &session.Claims{
		Subject:         claims.Subject,
		Email:           claims.Email,
		FirstName:       firstNonEmpty(claims.FirstName, claims.GivenName),
		LastName:        firstNonEmpty(claims.LastName, claims.FamilyName),
		ProfileImageURL: firstNonEmpty(claims.ProfileImageURL, claims.Picture),
	}, expiresAt, nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
