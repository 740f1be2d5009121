package oidc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/oauth2"

	"team-tracker-go/internal/domain/session"
)

const (
	defaultDiscoveryTTL = time.Hour
	defaultHTTPTimeout  = 10 * time.Second
	discoveryPath       = "/.well-known/openid-configuration"
)

var ErrDiscovery = errors.New("oidc discovery failed")

type Config struct {
	IssuerURL    string
	ClientID     string
	ClientSecret string
	Scopes       []string
	DiscoveryTTL time.Duration
	HTTPTimeout  time.Duration
}

// Discovery is the subset of the issuer metadata document the login flow needs.
type Discovery struct {
	Issuer                string `json:"issuer"`
	AuthorizationEndpoint string `json:"authorization_endpoint"`
	TokenEndpoint         string `json:"token_endpoint"`
	UserinfoEndpoint      string `json:"userinfo_endpoint"`
	EndSessionEndpoint    string `json:"end_session_endpoint"`
	JWKSURI               string `json:"jwks_uri"`
}

// Provider talks to one OpenID Connect issuer. The discovery document is held in a single-entry cache
// that is re-fetched once its expiry timestamp has passed.
type Provider struct {
	cfg    Config
	client *http.Client
	now    func() time.Time

	mu        sync.Mutex
	discovery *Discovery
	expiresAt time.Time
}

func NewProvider(cfg Config, client *http.Client) *Provider {
	cfg.IssuerURL = strings.TrimRight(cfg.IssuerURL, "/")
	if cfg.DiscoveryTTL <= 0 {
		cfg.DiscoveryTTL = defaultDiscoveryTTL
	}
	if len(cfg.Scopes) == 0 {
		cfg.Scopes = []string{"openid", "email", "profile", "offline_access"}
	}
	if client == nil {
		timeout := cfg.HTTPTimeout
		if timeout <= 0 {
			timeout = defaultHTTPTimeout
		}
		client = &http.Client{Timeout: timeout}
	}
	return &Provider{
		cfg:    cfg,
		client: client,
		now:    time.Now,
	}
}

// Discover returns the cached issuer metadata, fetching it when the cache is empty or expired.
func (p *Provider) Discover(ctx context.Context) (*Discovery, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.discovery != nil && p.now().Before(p.expiresAt) {
		return p.discovery, nil
	}

	doc, err := p.fetchDiscovery(ctx)
	if err != nil {
		return nil, err
	}
	p.discovery = doc
	p.expiresAt = p.now().Add(p.cfg.DiscoveryTTL)
	return doc, nil
}

func (p *Provider) fetchDiscovery(ctx context.Context) (*Discovery, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.cfg.IssuerURL+discoveryPath, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDiscovery, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDiscovery, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: unexpected status %d", ErrDiscovery, resp.StatusCode)
	}

	var doc Discovery
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrDiscovery, err)
	}
	if doc.AuthorizationEndpoint == "" || doc.TokenEndpoint == "" {
		return nil, fmt.Errorf("%w: missing endpoints", ErrDiscovery)
	}
	if doc.Issuer == "" {
		doc.Issuer = p.cfg.IssuerURL
	}
	return &doc, nil
}

func (p *Provider) oauthConfig(doc *Discovery, redirectURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     p.cfg.ClientID,
		ClientSecret: p.cfg.ClientSecret,
		RedirectURL:  redirectURL,
		Scopes:       p.cfg.Scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:   doc.AuthorizationEndpoint,
			TokenURL:  doc.TokenEndpoint,
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
}

func (p *Provider) clientContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, p.client)
}

// NewLoginState returns a random state value and PKCE verifier for one login attempt.
func NewLoginState() (state, verifier string) {
	return oauth2.GenerateVerifier(), oauth2.GenerateVerifier()
}

// AuthCodeURL builds the authorize redirect. The issuer is asked to show its login and consent screens
// every time.
func (p *Provider) AuthCodeURL(ctx context.Context, state, verifier, redirectURL string) (string, error) {
	doc, err := p.Discover(ctx)
	if err != nil {
		return "", err
	}
	return p.oauthConfig(doc, redirectURL).AuthCodeURL(
		state,
		oauth2.S256ChallengeOption(verifier),
		oauth2.SetAuthURLParam("prompt", "login consent"),
	), nil
}

// Exchange trades an authorization code for tokens and reads the identity claims from the id token.
func (p *Provider) Exchange(ctx context.Context, code, verifier, redirectURL string) (*session.TokenSet, error) {
	doc, err := p.Discover(ctx)
	if err != nil {
		return nil, err
	}

	token, err := p.oauthConfig(doc, redirectURL).Exchange(p.clientContext(ctx), code, oauth2.VerifierOption(verifier))
	if err != nil {
		return nil, fmt.Errorf("exchange code: %w", err)
	}

	tokens, err := p.tokenSet(doc, token)
	if err != nil {
		return nil, err
	}
	if tokens.Claims == nil || tokens.Claims.Subject == "" {
		return nil, fmt.Errorf("%w: subject missing", ErrInvalidIDToken)
	}
	return tokens, nil
}

// Refresh implements session.Refresher with a single refresh_token grant.
func (p *Provider) Refresh(ctx context.Context, refreshToken string) (*session.TokenSet, error) {
	doc, err := p.Discover(ctx)
	if err != nil {
		return nil, err
	}

	source := p.oauthConfig(doc, "").TokenSource(p.clientContext(ctx), &oauth2.Token{RefreshToken: refreshToken})
	token, err := source.Token()
	if err != nil {
		return nil, fmt.Errorf("refresh token: %w", err)
	}
	return p.tokenSet(doc, token)
}

// EndSessionURL returns the issuer logout URL, or an empty string when the issuer has none.
func (p *Provider) EndSessionURL(ctx context.Context, postLogoutRedirectURI string) (string, error) {
	doc, err := p.Discover(ctx)
	if err != nil {
		return "", err
	}
	if doc.EndSessionEndpoint == "" {
		return "", nil
	}

	endpoint, err := url.Parse(doc.EndSessionEndpoint)
	if err != nil {
		return "", fmt.Errorf("parse end session endpoint: %w", err)
	}
	query := endpoint.Query()
	query.Set("client_id", p.cfg.ClientID)
	query.Set("post_logout_redirect_uri", postLogoutRedirectURI)
	endpoint.RawQuery = query.Encode()
	return endpoint.String(), nil
}

func (p *Provider) tokenSet(doc *Discovery, token *oauth2.Token) (*session.TokenSet, error) {
	tokens := &session.TokenSet{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
	}
	if !token.Expiry.IsZero() {
		expiry := token.Expiry.UTC()
		tokens.ExpiresAt = &expiry
	}

	rawIDToken, _ := token.Extra("id_token").(string)
	if rawIDToken == "" {
		return tokens, nil
	}

	claims, expiresAt, err := parseIDToken(rawIDToken, doc.Issuer, p.cfg.ClientID)
	if err != nil {
		return nil, err
	}
	tokens.IDToken = rawIDToken
	tokens.Claims = claims
	if tokens.ExpiresAt == nil {
		tokens.ExpiresAt = expiresAt
	}
	return tokens, nil
}
