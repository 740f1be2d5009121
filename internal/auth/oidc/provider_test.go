package oidc

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"team-tracker-go/internal/auth/oidc/oidctest"
)

const testClientID = "tracker-client"

func newTestProvider(t *testing.T) (*Provider, *oidctest.Issuer) {
	t.Helper()
	issuer := oidctest.NewIssuer(t, testClientID)
	provider := NewProvider(Config{
		IssuerURL:    issuer.URL(),
		ClientID:     testClientID,
		ClientSecret: "secret",
		DiscoveryTTL: time.Hour,
	}, issuer.Server.Client())
	return provider, issuer
}

func TestDiscoverIsCachedUntilExpiry(t *testing.T) {
	provider, issuer := newTestProvider(t)
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	provider.now = func() time.Time { return now }

	for range 3 {
		_, err := provider.Discover(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, 1, issuer.DiscoveryCalls())

	now = now.Add(59 * time.Minute)
	_, err := provider.Discover(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, issuer.DiscoveryCalls())

	now = now.Add(2 * time.Minute)
	doc, err := provider.Discover(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, issuer.DiscoveryCalls())
	assert.Equal(t, issuer.URL()+"/token", doc.TokenEndpoint)
}

func TestDiscoverFailureIsNotCached(t *testing.T) {
	provider := NewProvider(Config{IssuerURL: "http://127.0.0.1:1", ClientID: testClientID, HTTPTimeout: time.Second}, nil)

	_, err := provider.Discover(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDiscovery))
	assert.Nil(t, provider.discovery)
}

func TestAuthCodeURLCarriesPKCEAndPrompt(t *testing.T) {
	provider, _ := newTestProvider(t)
	state, verifier := NewLoginState()
	require.NotEqual(t, state, verifier)

	raw, err := provider.AuthCodeURL(context.Background(), state, verifier, "https://tracker.example.com/api/callback")
	require.NoError(t, err)

	parsed, err := url.Parse(raw)
	require.NoError(t, err)
	query := parsed.Query()
	assert.Equal(t, "/authorize", parsed.Path)
	assert.Equal(t, state, query.Get("state"))
	assert.Equal(t, "S256", query.Get("code_challenge_method"))
	assert.NotEmpty(t, query.Get("code_challenge"))
	assert.NotEqual(t, verifier, query.Get("code_challenge"))
	assert.Equal(t, "login consent", query.Get("prompt"))
	assert.Equal(t, "openid email profile offline_access", query.Get("scope"))
	assert.Equal(t, testClientID, query.Get("client_id"))
}

func TestExchangeReadsClaims(t *testing.T) {
	provider, issuer := newTestProvider(t)
	issuer.SetProfile(oidctest.Profile{Subject: "sub-7", Email: "ada@example.com", FirstName: "Ada", LastName: "Lovelace"})

	state, verifier := NewLoginState()
	authURL, err := provider.AuthCodeURL(context.Background(), state, verifier, "https://tracker.example.com/api/callback")
	require.NoError(t, err)
	redirect := issuer.Approve(t, authURL)

	tokens, err := provider.Exchange(context.Background(), redirect.Query().Get("code"), verifier, "https://tracker.example.com/api/callback")
	require.NoError(t, err)
	require.NotNil(t, tokens.Claims)
	assert.Equal(t, "sub-7", tokens.Claims.Subject)
	assert.Equal(t, "ada@example.com", tokens.Claims.Email)
	assert.Equal(t, "Ada", tokens.Claims.FirstName)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.NotEmpty(t, tokens.IDToken)
	require.NotNil(t, tokens.ExpiresAt)
	assert.True(t, tokens.ExpiresAt.After(time.Now()))
}

func TestExchangeRejectsWrongVerifier(t *testing.T) {
	provider, issuer := newTestProvider(t)
	state, verifier := NewLoginState()
	authURL, err := provider.AuthCodeURL(context.Background(), state, verifier, "https://tracker.example.com/api/callback")
	require.NoError(t, err)
	redirect := issuer.Approve(t, authURL)

	_, err = provider.Exchange(context.Background(), redirect.Query().Get("code"), "some-other-verifier-value-that-is-long-enough", "https://tracker.example.com/api/callback")
	assert.Error(t, err)
}

func TestExchangeRejectsForeignAudience(t *testing.T) {
	provider, issuer := newTestProvider(t)
	issuer.Audience = "someone-else"

	state, verifier := NewLoginState()
	authURL, err := provider.AuthCodeURL(context.Background(), state, verifier, "https://tracker.example.com/api/callback")
	require.NoError(t, err)
	redirect := issuer.Approve(t, authURL)

	_, err = provider.Exchange(context.Background(), redirect.Query().Get("code"), verifier, "https://tracker.example.com/api/callback")
	assert.ErrorIs(t, err, ErrInvalidIDToken)
}

func TestRefresh(t *testing.T) {
	provider, issuer := newTestProvider(t)

	tokens, err := provider.Refresh(context.Background(), "refresh-old")
	require.NoError(t, err)
	assert.Equal(t, 1, issuer.RefreshCalls())
	assert.NotEmpty(t, tokens.AccessToken)
	require.NotNil(t, tokens.ExpiresAt)

	issuer.RefreshFails = true
	_, err = provider.Refresh(context.Background(), "refresh-old")
	assert.Error(t, err)
	assert.Equal(t, 2, issuer.RefreshCalls())
}

func TestEndSessionURL(t *testing.T) {
	provider, issuer := newTestProvider(t)

	raw, err := provider.EndSessionURL(context.Background(), "https://tracker.example.com")
	require.NoError(t, err)
	parsed, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "/session/end", parsed.Path)
	assert.Equal(t, testClientID, parsed.Query().Get("client_id"))
	assert.Equal(t, "https://tracker.example.com", parsed.Query().Get("post_logout_redirect_uri"))

	issuer.NoEndSession = true
	provider.expiresAt = time.Time{}
	raw, err = provider.EndSessionURL(context.Background(), "https://tracker.example.com")
	require.NoError(t, err)
	assert.Empty(t, raw)
}
