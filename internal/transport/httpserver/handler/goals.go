package handler

import (
	"math"
	"net/http"

	"github.com/go-chi/chi/v5"

	goaldomain "team-tracker-go/internal/domain/goal"
	"team-tracker-go/internal/transport/httpserver/middleware"
)

type createGoalRequest struct {
	Title    string `json:"title"`
	Type     string `json:"type"`
	Target   int    `json:"target"`
	Current  int    `json:"current"`
	IsActive *bool  `json:"isActive"`
}

type updateGoalRequest struct {
	Title    *string `json:"title"`
	Type     *string `json:"type"`
	Target   *int    `json:"target"`
	Current  *int    `json:"current"`
	IsActive *bool   `json:"isActive"`
}

type goalResponse struct {
	ID        string  `json:"id"`
	UserID    string  `json:"userId"`
	Title     string  `json:"title"`
	Type      string  `json:"type"`
	Target    int     `json:"target"`
	Current   int     `json:"current"`
	IsActive  bool    `json:"isActive"`
	Progress  float64 `json:"progress"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`
}

func toGoalResponse(goal goaldomain.Goal) goalResponse {
	return goalResponse{
		ID:        goal.ID,
		UserID:    goal.UserID,
		Title:     goal.Title,
		Type:      string(goal.Type),
		Target:    goal.Target,
		Current:   goal.Current,
		IsActive:  goal.IsActive,
		Progress:  math.Round(goal.Progress()*100) / 100,
		CreatedAt: formatTime(goal.CreatedAt),
		UpdatedAt: formatTime(goal.UpdatedAt),
	}
}

func (h *Handlers) ListGoals(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
		return
	}

	activeOnly, err := parseBoolParam(r.URL.Query().Get("active"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid active flag")
		return
	}

	goals, err := h.Goals.List(r.Context(), user.ID, activeOnly)
	if err != nil {
		h.fail(w, "goals.list", err, "user_id", user.ID)
		return
	}

	response := make([]goalResponse, 0, len(goals))
	for _, goal := range goals {
		response = append(response, toGoalResponse(goal))
	}
	writeJSON(w, http.StatusOK, newListResponse(response))
}

func (h *Handlers) CreateGoal(w http.ResponseWriter, r *http.Request) {
	var req createGoalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
		return
	}

	created, err := h.Goals.Create(r.Context(), user.ID, goaldomain.CreateInput{
		Title:    req.Title,
		Type:     req.Type,
		Target:   req.Target,
		Current:  req.Current,
		IsActive: req.IsActive,
	})
	if err != nil {
		h.fail(w, "goals.create", err, "user_id", user.ID)
		return
	}
	writeJSON(w, http.StatusCreated, toGoalResponse(*created))
}

func (h *Handlers) UpdateGoal(w http.ResponseWriter, r *http.Request) {
	var req updateGoalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
		return
	}
	goalID := chi.URLParam(r, "id")

	updated, err := h.Goals.Update(r.Context(), user.ID, goalID, goaldomain.UpdateInput{
		Title:    req.Title,
		Type:     req.Type,
		Target:   req.Target,
		Current:  req.Current,
		IsActive: req.IsActive,
	})
	if err != nil {
		h.fail(w, "goals.update", err, "user_id", user.ID, "goal_id", goalID)
		return
	}
	writeJSON(w, http.StatusOK, toGoalResponse(*updated))
}

func (h *Handlers) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
		return
	}
	goalID := chi.URLParam(r, "id")

	if err := h.Goals.Delete(r.Context(), user.ID, goalID); err != nil {
		h.fail(w, "goals.delete", err, "user_id", user.ID, "goal_id", goalID)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
