package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	projectdomain "team-tracker-go/internal/domain/project"
	userdomain "team-tracker-go/internal/domain/user"
	"team-tracker-go/internal/transport/httpserver/middleware"
)

type createProjectRequest struct {
	TeamID      string  `json:"teamId"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	Priority    string  `json:"priority"`
	Progress    int     `json:"progress"`
	StartDate   *string `json:"startDate"`
	DueDate     *string `json:"dueDate"`
}

type updateProjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
	Progress    *int    `json:"progress"`
	StartDate   *string `json:"startDate"`
	DueDate     *string `json:"dueDate"`
}

type projectUpdateRequest struct {
	Description string  `json:"description"`
	Progress    *int    `json:"progress"`
	HoursWorked int     `json:"hoursWorked"`
	Status      *string `json:"status"`
}

type projectResponse struct {
	ID          string  `json:"id"`
	TeamID      string  `json:"teamId"`
	CreatedBy   string  `json:"createdBy"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Status      string  `json:"status"`
	Priority    string  `json:"priority"`
	Progress    int     `json:"progress"`
	StartDate   *string `json:"startDate"`
	DueDate     *string `json:"dueDate"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

type projectUpdateResponse struct {
	ID          string  `json:"id"`
	ProjectID   string  `json:"projectId"`
	UserID      string  `json:"userId"`
	Description string  `json:"description"`
	Progress    *int    `json:"progress"`
	HoursWorked int     `json:"hoursWorked"`
	Status      *string `json:"status"`
	CreatedAt   string  `json:"createdAt"`
}

func toProjectResponse(item projectdomain.Project) projectResponse {
	return projectResponse{
		ID:          item.ID,
		TeamID:      item.TeamID,
		CreatedBy:   item.CreatedBy,
		Name:        item.Name,
		Description: item.Description,
		Status:      string(item.Status),
		Priority:    string(item.Priority),
		Progress:    item.Progress,
		StartDate:   item.StartDate,
		DueDate:     item.DueDate,
		CreatedAt:   formatTime(item.CreatedAt),
		UpdatedAt:   formatTime(item.UpdatedAt),
	}
}

func toProjectUpdateResponse(item projectdomain.ProjectUpdate) projectUpdateResponse {
	var status *string
	if item.Status != nil {
		value := string(*item.Status)
		status = &value
	}
	return projectUpdateResponse{
		ID:          item.ID,
		ProjectID:   item.ProjectID,
		UserID:      item.UserID,
		Description: item.Description,
		Progress:    item.Progress,
		HoursWorked: item.HoursWorked,
		Status:      status,
		CreatedAt:   formatTime(item.CreatedAt),
	}
}

func projectActor(user *userdomain.User) projectdomain.Actor {
	return projectdomain.Actor{UserID: user.ID, Admin: user.IsAdmin()}
}

func (h *Handlers) ListProjects(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
		return
	}

	query := r.URL.Query()
	filter := projectdomain.ListFilter{TeamID: query.Get("teamId")}
	if value := query.Get("status"); value != "" {
		status, err := projectdomain.ParseStatus(value)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "invalid status")
			return
		}
		filter.Status = &status
	}

	items, err := h.Projects.List(r.Context(), projectActor(user), filter)
	if err != nil {
		h.fail(w, "projects.list", err, "user_id", user.ID)
		return
	}

	response := make([]projectResponse, 0, len(items))
	for _, item := range items {
		response = append(response, toProjectResponse(item))
	}
	writeJSON(w, http.StatusOK, newListResponse(response))
}

func (h *Handlers) GetProject(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
		return
	}
	projectID := chi.URLParam(r, "id")

	item, err := h.Projects.Get(r.Context(), projectActor(user), projectID)
	if err != nil {
		h.fail(w, "projects.get", err, "user_id", user.ID, "project_id", projectID)
		return
	}
	writeJSON(w, http.StatusOK, toProjectResponse(*item))
}

func (h *Handlers) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req createProjectRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
		return
	}

	created, err := h.Projects.Create(r.Context(), projectActor(user), projectdomain.CreateInput{
		TeamID:      req.TeamID,
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		Progress:    req.Progress,
		StartDate:   req.StartDate,
		DueDate:     req.DueDate,
	})
	if err != nil {
		h.fail(w, "projects.create", err, "user_id", user.ID, "team_id", req.TeamID)
		return
	}
	writeJSON(w, http.StatusCreated, toProjectResponse(*created))
}

func (h *Handlers) UpdateProject(w http.ResponseWriter, r *http.Request) {
	var req updateProjectRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
		return
	}
	projectID := chi.URLParam(r, "id")

	updated, err := h.Projects.Update(r.Context(), projectActor(user), projectID, projectdomain.UpdateInput{
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		Progress:    req.Progress,
		StartDate:   req.StartDate,
		DueDate:     req.DueDate,
	})
	if err != nil {
		h.fail(w, "projects.update", err, "user_id", user.ID, "project_id", projectID)
		return
	}
	writeJSON(w, http.StatusOK, toProjectResponse(*updated))
}

func (h *Handlers) ListProjectUpdates(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
		return
	}
	projectID := chi.URLParam(r, "id")

	items, err := h.Projects.ListUpdates(r.Context(), projectActor(user), projectID)
	if err != nil {
		h.fail(w, "projects.list_updates", err, "user_id", user.ID, "project_id", projectID)
		return
	}

	response := make([]projectUpdateResponse, 0, len(items))
	for _, item := range items {
		response = append(response, toProjectUpdateResponse(item))
	}
	writeJSON(w, http.StatusOK, newListResponse(response))
}

func (h *Handlers) AddProjectUpdate(w http.ResponseWriter, r *http.Request) {
	var req projectUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
		return
	}
	projectID := chi.URLParam(r, "id")

	created, err := h.Projects.AddUpdate(r.Context(), projectActor(user), projectID, projectdomain.UpdateEntryInput{
		Description: req.Description,
		Progress:    req.Progress,
		HoursWorked: req.HoursWorked,
		Status:      req.Status,
	})
	if err != nil {
		h.fail(w, "projects.add_update", err, "user_id", user.ID, "project_id", projectID)
		return
	}
	writeJSON(w, http.StatusCreated, toProjectUpdateResponse(*created))
}
