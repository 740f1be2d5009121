package handler

import (
	"net/http"
	"time"

	"team-tracker-go/internal/transport/httpserver/middleware"
)

// WeeklyStats answers with the bare seven-entry array.
func (h *Handlers) WeeklyStats(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
		return
	}

	days, err := h.Analytics.Weekly(r.Context(), user.ID)
	if err != nil {
		h.fail(w, "analytics.weekly", err, "user_id", user.ID)
		return
	}
	writeJSON(w, http.StatusOK, days)
}

// MonthlyStats accepts ?month=YYYY-MM and falls back to the current month.
func (h *Handlers) MonthlyStats(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
		return
	}

	month, err := parseMonthParam(r.URL.Query().Get("month"), time.Time{})
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid month")
		return
	}

	stats, err := h.Analytics.Monthly(r.Context(), user.ID, month)
	if err != nil {
		h.fail(w, "analytics.monthly", err, "user_id", user.ID)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *Handlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
		return
	}

	metrics, err := h.Analytics.Dashboard(r.Context(), projectActor(user))
	if err != nil {
		h.fail(w, "analytics.dashboard", err, "user_id", user.ID)
		return
	}
	writeJSON(w, http.StatusOK, metrics)
}
