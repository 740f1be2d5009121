package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	projectdomain "team-tracker-go/internal/domain/project"
	updatedomain "team-tracker-go/internal/domain/update"
	"team-tracker-go/internal/transport/httpserver/middleware"
)

type userUpdateRequest struct {
	TeamID      *string `json:"teamId"`
	ProjectID   *string `json:"projectId"`
	TaskID      *string `json:"taskId"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	HoursWorked int     `json:"hoursWorked"`
	Blockers    string  `json:"blockers"`
}

type userUpdateResponse struct {
	ID          string  `json:"id"`
	UserID      string  `json:"userId"`
	TeamID      *string `json:"teamId"`
	ProjectID   *string `json:"projectId"`
	TaskID      *string `json:"taskId"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	HoursWorked int     `json:"hoursWorked"`
	Blockers    *string `json:"blockers"`
	CreatedAt   string  `json:"createdAt"`
}

func toUserUpdateResponse(item updatedomain.UserUpdate) userUpdateResponse {
	return userUpdateResponse{
		ID:          item.ID,
		UserID:      item.UserID,
		TeamID:      item.TeamID,
		ProjectID:   item.ProjectID,
		TaskID:      item.TaskID,
		Date:        item.Date,
		Description: item.Description,
		Status:      string(item.Status),
		HoursWorked: item.HoursWorked,
		Blockers:    item.Blockers,
		CreatedAt:   formatTime(item.CreatedAt),
	}
}

func toUserUpdateList(items []updatedomain.UserUpdate) listResponse[userUpdateResponse] {
	response := make([]userUpdateResponse, 0, len(items))
	for _, item := range items {
		response = append(response, toUserUpdateResponse(item))
	}
	return newListResponse(response)
}

func (h *Handlers) ListUserUpdates(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
		return
	}

	items, err := h.Updates.ListUserUpdates(r.Context(), updatedomain.UserUpdateFilter{
		UserID: user.ID,
		Date:   r.URL.Query().Get("date"),
	})
	if err != nil {
		h.fail(w, "user_updates.list", err, "user_id", user.ID)
		return
	}
	writeJSON(w, http.StatusOK, toUserUpdateList(items))
}

func (h *Handlers) CreateUserUpdate(w http.ResponseWriter, r *http.Request) {
	var req userUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
		return
	}

	created, err := h.Updates.CreateUserUpdate(r.Context(), projectActor(user), updatedomain.UserUpdateInput{
		TeamID:      req.TeamID,
		ProjectID:   req.ProjectID,
		TaskID:      req.TaskID,
		Date:        req.Date,
		Description: req.Description,
		Status:      req.Status,
		HoursWorked: req.HoursWorked,
		Blockers:    req.Blockers,
	})
	if err != nil {
		h.fail(w, "user_updates.create", err, "user_id", user.ID)
		return
	}
	writeJSON(w, http.StatusCreated, toUserUpdateResponse(*created))
}

// ListTeamUpdates is open to admins and ACTIVE members of the team.
func (h *Handlers) ListTeamUpdates(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
		return
	}
	teamID := chi.URLParam(r, "id")

	if _, err := h.Teams.Get(r.Context(), teamID); err != nil {
		h.fail(w, "user_updates.list_team", err, "user_id", user.ID, "team_id", teamID)
		return
	}
	if !user.IsAdmin() {
		active, err := h.Teams.IsActiveMember(r.Context(), teamID, user.ID)
		if err != nil {
			h.fail(w, "user_updates.list_team", err, "user_id", user.ID, "team_id", teamID)
			return
		}
		if !active {
			h.fail(w, "user_updates.list_team", projectdomain.ErrNotTeamMember, "user_id", user.ID, "team_id", teamID)
			return
		}
	}

	items, err := h.Updates.ListUserUpdates(r.Context(), updatedomain.UserUpdateFilter{
		TeamID: teamID,
		Date:   r.URL.Query().Get("date"),
	})
	if err != nil {
		h.fail(w, "user_updates.list_team", err, "user_id", user.ID, "team_id", teamID)
		return
	}
	writeJSON(w, http.StatusOK, toUserUpdateList(items))
}
