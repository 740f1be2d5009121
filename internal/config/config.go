package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"team-tracker-go/pkg/logger"
)

const minSessionSecretLength = 32

type Config struct {
	HTTPPort           string
	Env                string
	CORSAllowedOrigins []string
	BootstrapAdmin     string
	// MembershipCacheTTL bounds how long a user's active team list is reused. Zero disables the cache.
	MembershipCacheTTL time.Duration
	DB                 DBConfig
	Session            SessionConfig
	OIDC               OIDCConfig
}

type DBConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Enabled reports whether the relational store is configured. Without it the in-memory store is used.
func (c DBConfig) Enabled() bool {
	return strings.TrimSpace(c.URL) != ""
}

type SessionConfig struct {
	Secret        string
	TTL           time.Duration
	CookieName    string
	CookieSecure  bool
	PruneInterval time.Duration
}

type OIDCConfig struct {
	Enabled        bool
	IssuerURL      string
	ClientID       string
	ClientSecret   string
	AllowedDomains []string
	Scopes         []string
	DiscoveryTTL   time.Duration
	HTTPTimeout    time.Duration
}

func Load(log logger.Logger) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if err := loadDotEnv(v, log); err != nil {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := fromViper(v)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173")
	v.SetDefault("TEAM_MEMBERSHIP_CACHE_TTL", "30s")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "30m")
	v.SetDefault("SESSION_TTL", "168h")
	v.SetDefault("SESSION_COOKIE_NAME", "tracker.sid")
	v.SetDefault("SESSION_COOKIE_SECURE", true)
	v.SetDefault("SESSION_PRUNE_INTERVAL", "15m")
	v.SetDefault("AUTH_FEDERATED_ENABLED", true)
	v.SetDefault("OIDC_ISSUER_URL", "https://replit.com/oidc")
	v.SetDefault("OIDC_SCOPES", "openid email profile offline_access")
	v.SetDefault("OIDC_DISCOVERY_TTL", "1h")
	v.SetDefault("OIDC_HTTP_TIMEOUT", "10s")
}

func fromViper(v *viper.Viper) Config {
	return Config{
		HTTPPort:           v.GetString("HTTP_PORT"),
		Env:                v.GetString("ENV"),
		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS"), ","),
		BootstrapAdmin:     strings.TrimSpace(v.GetString("BOOTSTRAP_ADMIN_EMAIL")),
		MembershipCacheTTL: v.GetDuration("TEAM_MEMBERSHIP_CACHE_TTL"),
		DB: DBConfig{
			URL:             v.GetString("DATABASE_URL"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
		},
		Session: SessionConfig{
			Secret:        v.GetString("SESSION_SECRET"),
			TTL:           v.GetDuration("SESSION_TTL"),
			CookieName:    v.GetString("SESSION_COOKIE_NAME"),
			CookieSecure:  v.GetBool("SESSION_COOKIE_SECURE"),
			PruneInterval: v.GetDuration("SESSION_PRUNE_INTERVAL"),
		},
		OIDC: OIDCConfig{
			Enabled:        v.GetBool("AUTH_FEDERATED_ENABLED"),
			IssuerURL:      strings.TrimRight(strings.TrimSpace(v.GetString("OIDC_ISSUER_URL")), "/"),
			ClientID:       strings.TrimSpace(v.GetString("OIDC_CLIENT_ID")),
			ClientSecret:   v.GetString("OIDC_CLIENT_SECRET"),
			AllowedDomains: splitList(v.GetString("OIDC_ALLOWED_DOMAINS"), ","),
			Scopes:         strings.Fields(v.GetString("OIDC_SCOPES")),
			DiscoveryTTL:   v.GetDuration("OIDC_DISCOVERY_TTL"),
			HTTPTimeout:    v.GetDuration("OIDC_HTTP_TIMEOUT"),
		},
	}
}

// Validate fails on missing identity and session settings; there are no soft defaults for secrets.
func (c Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Session.Secret) == "" {
		errs = append(errs, errors.New("SESSION_SECRET is required"))
	} else if len(c.Session.Secret) < minSessionSecretLength {
		errs = append(errs, fmt.Errorf("SESSION_SECRET must be at least %d characters", minSessionSecretLength))
	}
	if c.Session.TTL <= 0 {
		errs = append(errs, errors.New("SESSION_TTL must be positive"))
	}

	if c.OIDC.Enabled {
		if c.OIDC.IssuerURL == "" {
			errs = append(errs, errors.New("OIDC_ISSUER_URL is required"))
		}
		if c.OIDC.ClientID == "" {
			errs = append(errs, errors.New("OIDC_CLIENT_ID is required"))
		}
		if strings.TrimSpace(c.OIDC.ClientSecret) == "" {
			errs = append(errs, errors.New("OIDC_CLIENT_SECRET is required"))
		}
		if len(c.OIDC.AllowedDomains) == 0 {
			errs = append(errs, errors.New("OIDC_ALLOWED_DOMAINS is required"))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

func splitList(value, sep string) []string {
	parts := strings.Split(value, sep)
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			result = append(result, part)
		}
	}
	return result
}
