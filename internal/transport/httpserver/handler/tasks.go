package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	taskdomain "team-tracker-go/internal/domain/task"
	"team-tracker-go/internal/transport/httpserver/middleware"
)

type createTaskRequest struct {
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	Status         string  `json:"status"`
	Priority       string  `json:"priority"`
	TeamID         *string `json:"teamId"`
	ProjectID      *string `json:"projectId"`
	DueDate        *string `json:"dueDate"`
	EstimatedHours *int    `json:"estimatedHours"`
	ActualHours    *int    `json:"actualHours"`
}

type updateTaskRequest struct {
	Title          *string `json:"title"`
	Description    *string `json:"description"`
	Status         *string `json:"status"`
	Priority       *string `json:"priority"`
	TeamID         *string `json:"teamId"`
	ProjectID      *string `json:"projectId"`
	DueDate        *string `json:"dueDate"`
	EstimatedHours *int    `json:"estimatedHours"`
	ActualHours    *int    `json:"actualHours"`
}

type taskResponse struct {
	ID             string  `json:"id"`
	UserID         string  `json:"userId"`
	TeamID         *string `json:"teamId"`
	ProjectID      *string `json:"projectId"`
	Title          string  `json:"title"`
	Description    *string `json:"description"`
	Status         string  `json:"status"`
	Priority       string  `json:"priority"`
	DueDate        *string `json:"dueDate"`
	EstimatedHours *int    `json:"estimatedHours"`
	ActualHours    *int    `json:"actualHours"`
	CompletedAt    *string `json:"completedAt"`
	CreatedAt      string  `json:"createdAt"`
	UpdatedAt      string  `json:"updatedAt"`
}

func toTaskResponse(task taskdomain.Task) taskResponse {
	return taskResponse{
		ID:             task.ID,
		UserID:         task.UserID,
		TeamID:         task.TeamID,
		ProjectID:      task.ProjectID,
		Title:          task.Title,
		Description:    task.Description,
		Status:         string(task.Status),
		Priority:       string(task.Priority),
		DueDate:        task.DueDate,
		EstimatedHours: task.EstimatedHours,
		ActualHours:    task.ActualHours,
		CompletedAt:    formatOptionalTime(task.CompletedAt),
		CreatedAt:      formatTime(task.CreatedAt),
		UpdatedAt:      formatTime(task.UpdatedAt),
	}
}

func (h *Handlers) ListTasks(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
		return
	}

	query := r.URL.Query()
	filter := taskdomain.ListFilter{
		ProjectID: query.Get("projectId"),
		TeamID:    query.Get("teamId"),
	}
	if value := query.Get("status"); value != "" {
		status, err := taskdomain.ParseStatus(value)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "invalid status")
			return
		}
		filter.Status = &status
	}

	tasks, err := h.Tasks.List(r.Context(), user.ID, filter)
	if err != nil {
		h.fail(w, "tasks.list", err, "user_id", user.ID)
		return
	}

	response := make([]taskResponse, 0, len(tasks))
	for _, task := range tasks {
		response = append(response, toTaskResponse(task))
	}
	writeJSON(w, http.StatusOK, newListResponse(response))
}

func (h *Handlers) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
		return
	}

	created, err := h.Tasks.Create(r.Context(), projectActor(user), taskdomain.CreateInput{
		Title:          req.Title,
		Description:    req.Description,
		Status:         req.Status,
		Priority:       req.Priority,
		TeamID:         req.TeamID,
		ProjectID:      req.ProjectID,
		DueDate:        req.DueDate,
		EstimatedHours: req.EstimatedHours,
		ActualHours:    req.ActualHours,
	})
	if err != nil {
		h.fail(w, "tasks.create", err, "user_id", user.ID)
		return
	}
	writeJSON(w, http.StatusCreated, toTaskResponse(*created))
}

func (h *Handlers) UpdateTask(w http.ResponseWriter, r *http.Request) {
	var req updateTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
		return
	}
	taskID := chi.URLParam(r, "id")

	updated, err := h.Tasks.Update(r.Context(), projectActor(user), taskID, taskdomain.UpdateInput{
		Title:          req.Title,
		Description:    req.Description,
		Status:         req.Status,
		Priority:       req.Priority,
		TeamID:         req.TeamID,
		ProjectID:      req.ProjectID,
		DueDate:        req.DueDate,
		EstimatedHours: req.EstimatedHours,
		ActualHours:    req.ActualHours,
	})
	if err != nil {
		h.fail(w, "tasks.update", err, "user_id", user.ID, "task_id", taskID)
		return
	}
	writeJSON(w, http.StatusOK, toTaskResponse(*updated))
}

func (h *Handlers) DeleteTask(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
		return
	}
	taskID := chi.URLParam(r, "id")

	if err := h.Tasks.Delete(r.Context(), user.ID, taskID); err != nil {
		h.fail(w, "tasks.delete", err, "user_id", user.ID, "task_id", taskID)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
