package handler

import (
	"net/http"

	activitydomain "team-tracker-go/internal/domain/activity"
	"team-tracker-go/internal/transport/httpserver/middleware"
)

type activityResponse struct {
	ID          string `json:"id"`
	UserID      string `json:"userId"`
	Type        string `json:"type"`
	Description string `json:"description"`
	CreatedAt   string `json:"createdAt"`
}

func toActivityResponse(item activitydomain.Activity) activityResponse {
	return activityResponse{
		ID:          item.ID,
		UserID:      item.UserID,
		Type:        item.Type,
		Description: item.Description,
		CreatedAt:   formatTime(item.CreatedAt),
	}
}

func (h *Handlers) ListActivities(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
		return
	}

	limit, err := parseIntParam(r.URL.Query().Get("limit"), activitydomain.DefaultLimit)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid limit")
		return
	}

	items, err := h.Activities.List(r.Context(), user.ID, limit)
	if err != nil {
		h.fail(w, "activities.list", err, "user_id", user.ID)
		return
	}

	response := make([]activityResponse, 0, len(items))
	for _, item := range items {
		response = append(response, toActivityResponse(item))
	}
	writeJSON(w, http.StatusOK, newListResponse(response))
}
