// Package oidctest runs an in-process OpenID Connect issuer for tests.
package oidctest

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type Profile struct {
	Subject         string
	Email           string
	FirstName       string
	LastName        string
	ProfileImageURL string
}

type grant struct {
	challenge   string
	redirectURI string
	profile     Profile
}

type Issuer struct {
	Server   *httptest.Server
	ClientID string

	// Audience overrides the id token audience when set.
	Audience string
	// ExpiresIn is the access token lifetime in seconds.
	ExpiresIn int
	// RefreshFails makes every refresh_token grant answer invalid_grant.
	RefreshFails bool
	// NoEndSession hides end_session_endpoint from discovery.
	NoEndSession bool

	mu             sync.Mutex
	profile        Profile
	grants         map[string]grant
	discoveryCalls int
	tokenCalls     int
	refreshCalls   int
}

func NewIssuer(t testing.TB, clientID string) *Issuer {
	t.Helper()
	issuer := &Issuer{
		ClientID:  clientID,
		ExpiresIn: 3600,
		grants:    make(map[string]grant),
		profile: Profile{
			Subject:   "subject-1",
			Email:     "federated@example.com",
			FirstName: "Fed",
			LastName:  "Erated",
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/.well-known/openid-configuration", issuer.handleDiscovery)
	mux.HandleFunc("/token", issuer.handleToken)
	issuer.Server = httptest.NewServer(mux)
	t.Cleanup(issuer.Server.Close)
	return issuer
}

func (i *Issuer) URL() string {
	return i.Server.URL
}

func (i *Issuer) SetProfile(profile Profile) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.profile = profile
}

func (i *Issuer) DiscoveryCalls() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.discoveryCalls
}

func (i *Issuer) TokenCalls() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.tokenCalls
}

func (i *Issuer) RefreshCalls() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.refreshCalls
}

// Approve plays the user at the authorize endpoint: it records the PKCE challenge of authURL and returns
// the redirect the issuer would send the browser to.
func (i *Issuer) Approve(t testing.TB, authURL string) *url.URL {
	t.Helper()
	parsed, err := url.Parse(authURL)
	if err != nil {
		t.Fatalf("parse authorize url: %v", err)
	}
	query := parsed.Query()
	if query.Get("code_challenge_method") != "S256" {
		t.Fatalf("expected S256 challenge, got %q", query.Get("code_challenge_method"))
	}

	code := uuid.NewString()
	i.mu.Lock()
	i.grants[code] = grant{
		challenge:   query.Get("code_challenge"),
		redirectURI: query.Get("redirect_uri"),
		profile:     i.profile,
	}
	i.mu.Unlock()

	redirect, err := url.Parse(query.Get("redirect_uri"))
	if err != nil {
		t.Fatalf("parse redirect uri: %v", err)
	}
	values := redirect.Query()
	values.Set("code", code)
	values.Set("state", query.Get("state"))
	redirect.RawQuery = values.Encode()
	return redirect
}

func (i *Issuer) handleDiscovery(w http.ResponseWriter, r *http.Request) {
	i.mu.Lock()
	i.discoveryCalls++
	i.mu.Unlock()

	doc := map[string]string{
		"issuer":                 i.URL(),
		"authorization_endpoint": i.URL() + "/authorize",
		"token_endpoint":         i.URL() + "/token",
		"jwks_uri":               i.URL() + "/jwks",
	}
	if !i.NoEndSession {
		doc["end_session_endpoint"] = i.URL() + "/session/end"
	}
	writeJSON(w, http.StatusOK, doc)
}

func (i *Issuer) handleToken(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_request"})
		return
	}

	switch r.PostForm.Get("grant_type") {
	case "authorization_code":
		i.mu.Lock()
		i.tokenCalls++
		granted, ok := i.grants[r.PostForm.Get("code")]
		delete(i.grants, r.PostForm.Get("code"))
		i.mu.Unlock()

		if !ok || challengeOf(r.PostForm.Get("code_verifier")) != granted.challenge {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_grant"})
			return
		}
		i.writeTokens(w, granted.profile)
	case "refresh_token":
		i.mu.Lock()
		i.refreshCalls++
		profile := i.profile
		i.mu.Unlock()

		if i.RefreshFails || r.PostForm.Get("refresh_token") == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_grant"})
			return
		}
		i.writeTokens(w, profile)
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unsupported_grant_type"})
	}
}

func (i *Issuer) writeTokens(w http.ResponseWriter, profile Profile) {
	audience := i.ClientID
	if i.Audience != "" {
		audience = i.Audience
	}
	now := time.Now()
	idToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iss":               i.URL(),
		"aud":               audience,
		"sub":               profile.Subject,
		"email":             profile.Email,
		"first_name":        profile.FirstName,
		"last_name":         profile.LastName,
		"profile_image_url": profile.ProfileImageURL,
		"iat":               now.Unix(),
		"exp":               now.Add(time.Duration(i.ExpiresIn) * time.Second).Unix(),
	}).SignedString([]byte("oidctest-signing-key"))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "server_error"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"access_token":  "access-" + uuid.NewString(),
		"refresh_token": "refresh-" + uuid.NewString(),
		"token_type":    "Bearer",
		"expires_in":    i.ExpiresIn,
		"id_token":      idToken,
	})
}

func challengeOf(verifier string) string {
	sum := sha256.Sum256([]byte(verifier))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
