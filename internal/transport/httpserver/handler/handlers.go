package handler

import (
	"context"
	"time"

	activitydomain "team-tracker-go/internal/domain/activity"
	analyticsdomain "team-tracker-go/internal/domain/analytics"
	exportdomain "team-tracker-go/internal/domain/export"
	goaldomain "team-tracker-go/internal/domain/goal"
	projectdomain "team-tracker-go/internal/domain/project"
	sessiondomain "team-tracker-go/internal/domain/session"
	taskdomain "team-tracker-go/internal/domain/task"
	teamdomain "team-tracker-go/internal/domain/team"
	updatedomain "team-tracker-go/internal/domain/update"
	userdomain "team-tracker-go/internal/domain/user"
	"team-tracker-go/internal/transport/httpserver/middleware"
	"team-tracker-go/pkg/logger"
)

// Federated is the issuer side of the sign-in flow. Nil when federated auth is disabled.
type Federated interface {
	AuthCodeURL(ctx context.Context, state, verifier, redirectURL string) (string, error)
	Exchange(ctx context.Context, code, verifier, redirectURL string) (*sessiondomain.TokenSet, error)
	EndSessionURL(ctx context.Context, postLogoutRedirectURI string) (string, error)
}

type Services struct {
	Users      *userdomain.Service
	Sessions   *sessiondomain.Service
	Teams      *teamdomain.Service
	Projects   *projectdomain.Service
	Tasks      *taskdomain.Service
	Updates    *updatedomain.Service
	Goals      *goaldomain.Service
	Activities *activitydomain.Service
	Analytics  *analyticsdomain.Service
	Export     *exportdomain.Service
}

type Handlers struct {
	Services
	cookies        *middleware.Cookies
	federated      Federated
	allowedDomains map[string]struct{}
	log            logger.Logger
	now            func() time.Time
}

func New(services Services, cookies *middleware.Cookies, federated Federated, allowedDomains []string, log logger.Logger) *Handlers {
	domains := make(map[string]struct{}, len(allowedDomains))
	for _, domain := range allowedDomains {
		domains[domain] = struct{}{}
	}
	return &Handlers{
		Services:       services,
		cookies:        cookies,
		federated:      federated,
		allowedDomains: domains,
		log:            log,
		now:            time.Now,
	}
}
