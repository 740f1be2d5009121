package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	updatedomain "team-tracker-go/internal/domain/update"
	"team-tracker-go/internal/transport/httpserver/middleware"
)

// hoursWorked travels in minutes on the wire, matching storage.
type dailyUpdateRequest struct {
	Date           string `json:"date"`
	TasksCompleted int    `json:"tasksCompleted"`
	HoursWorked    int    `json:"hoursWorked"`
	Mood           int    `json:"mood"`
	Notes          string `json:"notes"`
}

type dailyUpdateResponse struct {
	ID             string  `json:"id"`
	UserID         string  `json:"userId"`
	Date           string  `json:"date"`
	TasksCompleted int     `json:"tasksCompleted"`
	HoursWorked    int     `json:"hoursWorked"`
	Mood           int     `json:"mood"`
	Notes          *string `json:"notes"`
	CreatedAt      string  `json:"createdAt"`
	UpdatedAt      string  `json:"updatedAt"`
}

func toDailyUpdateResponse(item updatedomain.DailyUpdate) dailyUpdateResponse {
	return dailyUpdateResponse{
		ID:             item.ID,
		UserID:         item.UserID,
		Date:           item.Date,
		TasksCompleted: item.TasksCompleted,
		HoursWorked:    item.HoursWorked,
		Mood:           item.Mood,
		Notes:          item.Notes,
		CreatedAt:      formatTime(item.CreatedAt),
		UpdatedAt:      formatTime(item.UpdatedAt),
	}
}

func (h *Handlers) ListDailyUpdates(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
		return
	}

	query := r.URL.Query()
	limit, err := parseIntParam(query.Get("limit"), 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid limit")
		return
	}

	items, err := h.Updates.ListDaily(r.Context(), user.ID, updatedomain.DailyFilter{
		From:  query.Get("from"),
		To:    query.Get("to"),
		Limit: limit,
	})
	if err != nil {
		h.fail(w, "daily_updates.list", err, "user_id", user.ID)
		return
	}

	response := make([]dailyUpdateResponse, 0, len(items))
	for _, item := range items {
		response = append(response, toDailyUpdateResponse(item))
	}
	writeJSON(w, http.StatusOK, newListResponse(response))
}

func (h *Handlers) GetDailyUpdate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
		return
	}
	date := chi.URLParam(r, "date")

	item, err := h.Updates.GetDaily(r.Context(), user.ID, date)
	if err != nil {
		h.fail(w, "daily_updates.get", err, "user_id", user.ID, "date", date)
		return
	}
	writeJSON(w, http.StatusOK, toDailyUpdateResponse(*item))
}

// UpsertDailyUpdate answers 201 when the date had no update yet and 200 when it overwrote one.
func (h *Handlers) UpsertDailyUpdate(w http.ResponseWriter, r *http.Request) {
	var req dailyUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
		return
	}

	item, created, err := h.Updates.UpsertDaily(r.Context(), user.ID, updatedomain.DailyInput{
		Date:           req.Date,
		TasksCompleted: req.TasksCompleted,
		HoursWorked:    req.HoursWorked,
		Mood:           req.Mood,
		Notes:          req.Notes,
	})
	if err != nil {
		h.fail(w, "daily_updates.upsert", err, "user_id", user.ID, "date", req.Date)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, toDailyUpdateResponse(*item))
}
