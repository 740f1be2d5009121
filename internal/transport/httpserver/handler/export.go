package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	exportdomain "team-tracker-go/internal/domain/export"
	"team-tracker-go/internal/transport/httpserver/middleware"
)

type exportResponse struct {
	ExportedAt   string                `json:"exportedAt"`
	User         userResponse          `json:"user"`
	DailyUpdates []dailyUpdateResponse `json:"dailyUpdates"`
	UserUpdates  []userUpdateResponse  `json:"userUpdates"`
	Tasks        []taskResponse        `json:"tasks"`
	Goals        []goalResponse        `json:"goals"`
	Activities   []activityResponse    `json:"activities"`
}

func toExportResponse(snapshot *exportdomain.Snapshot) exportResponse {
	response := exportResponse{
		ExportedAt:   formatTime(snapshot.ExportedAt),
		User:         toUserResponse(snapshot.User),
		DailyUpdates: make([]dailyUpdateResponse, 0, len(snapshot.DailyUpdates)),
		UserUpdates:  make([]userUpdateResponse, 0, len(snapshot.UserUpdates)),
		Tasks:        make([]taskResponse, 0, len(snapshot.Tasks)),
		Goals:        make([]goalResponse, 0, len(snapshot.Goals)),
		Activities:   make([]activityResponse, 0, len(snapshot.Activities)),
	}
	for _, item := range snapshot.DailyUpdates {
		response.DailyUpdates = append(response.DailyUpdates, toDailyUpdateResponse(item))
	}
	for _, item := range snapshot.UserUpdates {
		response.UserUpdates = append(response.UserUpdates, toUserUpdateResponse(item))
	}
	for _, item := range snapshot.Tasks {
		response.Tasks = append(response.Tasks, toTaskResponse(item))
	}
	for _, item := range snapshot.Goals {
		response.Goals = append(response.Goals, toGoalResponse(item))
	}
	for _, item := range snapshot.Activities {
		response.Activities = append(response.Activities, toActivityResponse(item))
	}
	return response
}

// ExportData sends every record of the caller as a downloadable JSON document.
func (h *Handlers) ExportData(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
		return
	}

	snapshot, err := h.Export.Snapshot(r.Context(), user.ID)
	if err != nil {
		h.fail(w, "export.snapshot", err, "user_id", user.ID)
		return
	}

	filename := fmt.Sprintf("team-tracker-export-%s.json", snapshot.ExportedAt.Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(toExportResponse(snapshot)); err != nil {
		h.log.InternalError("export.snapshot: write failed", err, "user_id", user.ID)
	}
}
