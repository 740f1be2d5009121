package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	userdomain "team-tracker-go/internal/domain/user"
	"team-tracker-go/internal/transport/httpserver/middleware"
)

type userResponse struct {
	ID              string  `json:"id"`
	Email           *string `json:"email"`
	FirstName       *string `json:"firstName"`
	LastName        *string `json:"lastName"`
	ProfileImageURL *string `json:"profileImageUrl"`
	Role            string  `json:"role"`
	Status          string  `json:"status"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

func toUserResponse(user *userdomain.User) userResponse {
	return userResponse{
		ID:              user.ID,
		Email:           user.Email,
		FirstName:       user.FirstName,
		LastName:        user.LastName,
		ProfileImageURL: user.ProfileImageURL,
		Role:            string(user.Role),
		Status:          string(user.Status),
		CreatedAt:       formatTime(user.CreatedAt),
		UpdatedAt:       formatTime(user.UpdatedAt),
	}
}

type updateProfileRequest struct {
	FirstName       *string `json:"firstName"`
	LastName        *string `json:"lastName"`
	ProfileImageURL *string `json:"profileImageUrl"`
}

type updateAccessRequest struct {
	Role   *string `json:"role"`
	Status *string `json:"status"`
}

func (h *Handlers) CurrentUser(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(user))
}

func (h *Handlers) UpdateCurrentUser(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
		return
	}

	updated, err := h.Users.UpdateProfile(r.Context(), user.ID, userdomain.ProfileInput{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		ProfileImageURL: req.ProfileImageURL,
	})
	if err != nil {
		h.fail(w, "users.update_profile", err, "user_id", user.ID)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(updated))
}

func (h *Handlers) AdminListUsers(w http.ResponseWriter, r *http.Request) {
	var filter userdomain.ListFilter
	if value := r.URL.Query().Get("status"); value != "" {
		status, err := userdomain.ParseStatus(value)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "invalid status")
			return
		}
		filter.Status = &status
	}

	users, err := h.Users.List(r.Context(), filter)
	if err != nil {
		h.fail(w, "admin.list_users", err)
		return
	}

	items := make([]userResponse, 0, len(users))
	for i := range users {
		items = append(items, toUserResponse(&users[i]))
	}
	writeJSON(w, http.StatusOK, newListResponse(items))
}

func (h *Handlers) AdminUpdateUser(w http.ResponseWriter, r *http.Request) {
	var req updateAccessRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	admin, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
		return
	}
	targetID := chi.URLParam(r, "id")

	updated, err := h.Users.UpdateAccess(r.Context(), admin.ID, targetID, userdomain.AccessInput{
		Role:   req.Role,
		Status: req.Status,
	})
	if err != nil {
		h.fail(w, "admin.update_user", err, "admin_id", admin.ID, "target_id", targetID)
		return
	}
	h.log.Info("admin.update_user: access changed", "admin_id", admin.ID, "target_id", targetID, "role", updated.Role, "status", updated.Status)
	writeJSON(w, http.StatusOK, toUserResponse(updated))
}
