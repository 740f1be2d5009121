package handler

import (
	"errors"
	"net/http"

	"gorm.io/gorm"

	"team-tracker-go/internal/domain/goal"
	"team-tracker-go/internal/domain/project"
	"team-tracker-go/internal/domain/task"
	"team-tracker-go/internal/domain/team"
	"team-tracker-go/internal/domain/update"
	"team-tracker-go/internal/domain/user"
	"team-tracker-go/internal/domain/validation"
)

type domainError struct {
	err     error
	status  int
	code    string
	message string
}

// domainErrors are the expected failures a client can act on. Anything else is a 500.
var domainErrors = []domainError{
	{user.ErrUserNotFound, http.StatusNotFound, "user_not_found", "user not found"},
	{user.ErrEmailTaken, http.StatusConflict, "email_taken", "email already registered"},
	{user.ErrCannotChangeOwnAccess, http.StatusForbidden, "cannot_change_own_access", "cannot change own role or status"},
	{team.ErrTeamNotFound, http.StatusNotFound, "team_not_found", "team not found"},
	{team.ErrMembershipNotFound, http.StatusNotFound, "membership_not_found", "membership not found"},
	{team.ErrAlreadyMember, http.StatusConflict, "already_member", "membership already exists"},
	{project.ErrProjectNotFound, http.StatusNotFound, "project_not_found", "project not found"},
	{project.ErrNotTeamMember, http.StatusForbidden, "not_team_member", "not an active member of the team"},
	{task.ErrTaskNotFound, http.StatusNotFound, "task_not_found", "task not found"},
	{goal.ErrGoalNotFound, http.StatusNotFound, "goal_not_found", "goal not found"},
	{update.ErrDailyUpdateNotFound, http.StatusNotFound, "daily_update_not_found", "daily update not found"},
	{update.ErrDailyUpdateExists, http.StatusConflict, "daily_update_exists", "daily update already exists for this date"},
	{gorm.ErrForeignKeyViolated, http.StatusBadRequest, "invalid_reference", "referenced record does not exist"},
}

// fail logs err and writes the matching error response. op is the "area.action" prefix of the log line.
func (h *Handlers) fail(w http.ResponseWriter, op string, err error, args ...any) {
	var verr validation.Errors
	if errors.As(err, &verr) {
		h.log.BusinessError(op+": validation failed", err, args...)
		writeValidationError(w, verr)
		return
	}

	for _, known := range domainErrors {
		if errors.Is(err, known.err) {
			h.log.BusinessError(op+": "+known.message, err, args...)
			writeError(w, known.status, known.code, known.message)
			return
		}
	}

	h.log.InternalError(op+": failed", err, args...)
	writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
}
