package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"gorm.io/gorm"

	"team-tracker-go/internal/auth/oidc"
	"team-tracker-go/internal/config"
	"team-tracker-go/internal/db"
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
	"team-tracker-go/internal/repository/inmemory"
	activityrepo "team-tracker-go/internal/repository/postgres/activity"
	goalrepo "team-tracker-go/internal/repository/postgres/goal"
	projectrepo "team-tracker-go/internal/repository/postgres/project"
	sessionrepo "team-tracker-go/internal/repository/postgres/session"
	taskrepo "team-tracker-go/internal/repository/postgres/task"
	teamrepo "team-tracker-go/internal/repository/postgres/team"
	updaterepo "team-tracker-go/internal/repository/postgres/update"
	userrepo "team-tracker-go/internal/repository/postgres/user"
	"team-tracker-go/internal/transport/httpserver"
	"team-tracker-go/internal/transport/httpserver/handler"
	"team-tracker-go/internal/transport/httpserver/middleware"
	"team-tracker-go/pkg/logger"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
	log        logger.Logger
	stopPruner context.CancelFunc
}

type repositories struct {
	users      userdomain.Repository
	sessions   sessiondomain.Store
	teams      teamdomain.Repository
	projects   projectdomain.Repository
	tasks      taskdomain.Repository
	updates    updatedomain.Repository
	goals      goaldomain.Repository
	activities activitydomain.Repository
}

func New(log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return NewWithConfig(cfg, log)
}

// NewWithConfig assembles the application. Without a database URL every repository lives in memory.
func NewWithConfig(cfg config.Config, log logger.Logger) (*App, error) {
	var (
		repos  repositories
		dbConn *gorm.DB
	)
	if cfg.DB.Enabled() {
		log.Info("app: initializing database")
		conn, err := db.NewPostgres(cfg.DB, log)
		if err != nil {
			return nil, err
		}
		if err := db.Migrate(conn, log); err != nil {
			closeDB(conn)
			return nil, err
		}
		dbConn = conn
		repos = postgresRepositories(conn)
	} else {
		log.Warn("app: DATABASE_URL not set, using in-memory store")
		repos = memoryRepositories(inmemory.NewStore())
	}

	var provider *oidc.Provider
	if cfg.OIDC.Enabled {
		provider = oidc.NewProvider(oidc.Config{
			IssuerURL:    cfg.OIDC.IssuerURL,
			ClientID:     cfg.OIDC.ClientID,
			ClientSecret: cfg.OIDC.ClientSecret,
			Scopes:       cfg.OIDC.Scopes,
			DiscoveryTTL: cfg.OIDC.DiscoveryTTL,
			HTTPTimeout:  cfg.OIDC.HTTPTimeout,
		}, nil)
	}

	services := buildServices(cfg, repos, provider)

	if cfg.BootstrapAdmin != "" {
		bootstrapAdmin(services.Users, cfg.BootstrapAdmin, log)
	}

	// Interface values must stay nil when federated sign-in is off.
	var federated handler.Federated
	if provider != nil {
		federated = provider
	}

	cookies := middleware.NewCookies(cfg.Session)
	handlers := handler.New(services, cookies, federated, cfg.OIDC.AllowedDomains, log)
	sessionAuth := middleware.NewSessionAuth(cookies, services.Sessions, services.Users, log)

	log.Info("app: initializing router")
	router := httpserver.NewRouter(cfg, handlers, sessionAuth, log)

	log.Info("app: initializing http server")
	srv := httpserver.New(cfg, router)

	pruneCtx, stopPruner := context.WithCancel(context.Background())
	go services.Sessions.RunPruner(pruneCtx, cfg.Session.PruneInterval, log)

	return &App{
		cfg:        cfg,
		httpServer: srv,
		db:         dbConn,
		log:        log,
		stopPruner: stopPruner,
	}, nil
}

func buildServices(cfg config.Config, repos repositories, provider *oidc.Provider) handler.Services {
	var refresher sessiondomain.Refresher
	if provider != nil {
		refresher = provider
	}

	activities := activitydomain.NewService(repos.activities)
	users := userdomain.NewService(repos.users)
	teams := teamdomain.NewService(repos.teams).WithCache(inmemory.NewMembershipCache(), cfg.MembershipCacheTTL)
	projects := projectdomain.NewService(repos.projects, teams, activities)
	tasks := taskdomain.NewService(repos.tasks, projects, activities)
	updates := updatedomain.NewService(repos.updates, projects, tasks, activities)
	goals := goaldomain.NewService(repos.goals, activities)

	return handler.Services{
		Users:      users,
		Sessions:   sessiondomain.NewService(repos.sessions, refresher, cfg.Session.TTL),
		Teams:      teams,
		Projects:   projects,
		Tasks:      tasks,
		Updates:    updates,
		Goals:      goals,
		Activities: activities,
		Analytics:  analyticsdomain.NewService(updates, tasks, goals, projects),
		Export:     exportdomain.NewService(users, updates, tasks, goals, activities),
	}
}

func postgresRepositories(conn *gorm.DB) repositories {
	return repositories{
		users:      userrepo.NewPostgres(conn),
		sessions:   sessionrepo.NewPostgres(conn),
		teams:      teamrepo.NewPostgres(conn),
		projects:   projectrepo.NewPostgres(conn),
		tasks:      taskrepo.NewPostgres(conn),
		updates:    updaterepo.NewPostgres(conn),
		goals:      goalrepo.NewPostgres(conn),
		activities: activityrepo.NewPostgres(conn),
	}
}

func memoryRepositories(store *inmemory.Store) repositories {
	return repositories{
		users:      store.Users(),
		sessions:   store.Sessions(),
		teams:      store.Teams(),
		projects:   store.Projects(),
		tasks:      store.Tasks(),
		updates:    store.Updates(),
		goals:      store.Goals(),
		activities: store.Activities(),
	}
}

func bootstrapAdmin(users *userdomain.Service, email string, log logger.Logger) {
	promoted, err := users.PromoteAdmin(context.Background(), email)
	if err != nil {
		if errors.Is(err, userdomain.ErrUserNotFound) {
			log.Warn("app: bootstrap admin not registered yet", "email", email)
			return
		}
		log.InternalError("app: bootstrap admin failed", err, "email", email)
		return
	}
	log.Info("app: bootstrap admin promoted", "user_id", promoted.ID)
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

// StartupFields are the key/value pairs of the "ready" log line.
func (a *App) StartupFields() []any {
	backend := "memory"
	if a.db != nil {
		backend = "postgres"
	}
	return []any{
		"env", a.cfg.Env,
		"backend", backend,
		"federated_auth", a.cfg.OIDC.Enabled,
		"session_ttl", a.cfg.Session.TTL.String(),
		"session_prune_interval", a.cfg.Session.PruneInterval.String(),
		"membership_cache_ttl", a.cfg.MembershipCacheTTL.String(),
		"bootstrap_admin", a.cfg.BootstrapAdmin != "",
	}
}

func (a *App) Close() error {
	if a.stopPruner != nil {
		a.stopPruner()
	}
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func closeDB(conn *gorm.DB) {
	if sqlDB, err := conn.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
