package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"team-tracker-go/internal/config"
	"team-tracker-go/internal/transport/httpserver/handler"
	authmw "team-tracker-go/internal/transport/httpserver/middleware"
	"team-tracker-go/pkg/logger"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers, auth *authmw.SessionAuth, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(authmw.NewRequestLogger(log))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(authmw.NewCORS(cfg.CORSAllowedOrigins))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)

		r.Get("/login", handlers.FederatedLogin)
		r.Get("/callback", handlers.FederatedCallback)
		r.Get("/logout", handlers.FederatedLogout)

		r.Post("/auth/register", handlers.Register)
		r.Post("/auth/login", handlers.Login)
		r.Post("/auth/logout", handlers.Logout)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireSession)

			// Reachable while the account is still pending or rejected.
			r.Get("/auth/user", handlers.CurrentUser)
			r.Patch("/auth/user", handlers.UpdateCurrentUser)

			r.Group(func(r chi.Router) {
				r.Use(authmw.RequireApproved)

				r.Get("/daily-updates", handlers.ListDailyUpdates)
				r.Post("/daily-updates", handlers.UpsertDailyUpdate)
				r.Get("/daily-updates/{date}", handlers.GetDailyUpdate)

				r.Get("/user-updates", handlers.ListUserUpdates)
				r.Post("/user-updates", handlers.CreateUserUpdate)

				r.Get("/tasks", handlers.ListTasks)
				r.Post("/tasks", handlers.CreateTask)
				r.Put("/tasks/{id}", handlers.UpdateTask)
				r.Delete("/tasks/{id}", handlers.DeleteTask)

				r.Get("/goals", handlers.ListGoals)
				r.Post("/goals", handlers.CreateGoal)
				r.Put("/goals/{id}", handlers.UpdateGoal)
				r.Delete("/goals/{id}", handlers.DeleteGoal)

				r.Get("/activities", handlers.ListActivities)

				r.Get("/projects", handlers.ListProjects)
				r.Post("/projects", handlers.CreateProject)
				r.Get("/projects/{id}", handlers.GetProject)
				r.Put("/projects/{id}", handlers.UpdateProject)
				r.Get("/projects/{id}/updates", handlers.ListProjectUpdates)
				r.Post("/projects/{id}/updates", handlers.AddProjectUpdate)

				r.Get("/teams", handlers.ListTeams)
				r.Post("/teams", handlers.CreateTeam)
				r.Get("/teams/mine", handlers.MyTeams)
				r.Get("/teams/{id}", handlers.GetTeam)
				r.Get("/teams/{id}/members", handlers.TeamMembers)
				r.Post("/teams/{id}/join", handlers.JoinTeam)
				r.Get("/teams/{id}/updates", handlers.ListTeamUpdates)

				r.Get("/analytics/weekly", handlers.WeeklyStats)
				r.Get("/analytics/monthly", handlers.MonthlyStats)
				r.Get("/dashboard/metrics", handlers.Dashboard)

				r.Get("/export", handlers.ExportData)

				r.Route("/admin", func(r chi.Router) {
					r.Use(authmw.RequireAdmin)

					r.Get("/users", handlers.AdminListUsers)
					r.Patch("/users/{id}", handlers.AdminUpdateUser)
					r.Get("/memberships", handlers.AdminListMemberships)
					r.Patch("/memberships/{id}", handlers.AdminDecideMembership)
				})
			})
		})
	})

	return r
}
