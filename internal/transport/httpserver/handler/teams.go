package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	teamdomain "team-tracker-go/internal/domain/team"
	"team-tracker-go/internal/transport/httpserver/middleware"
)

type createTeamRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type membershipDecisionRequest struct {
	Status string  `json:"status"`
	Role   *string `json:"role"`
}

type teamResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	CreatedBy   string  `json:"createdBy"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

type membershipResponse struct {
	ID        string `json:"id"`
	TeamID    string `json:"teamId"`
	UserID    string `json:"userId"`
	Role      string `json:"role"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func toTeamResponse(item teamdomain.Team) teamResponse {
	return teamResponse{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		CreatedBy:   item.CreatedBy,
		CreatedAt:   formatTime(item.CreatedAt),
		UpdatedAt:   formatTime(item.UpdatedAt),
	}
}

func toMembershipResponse(item teamdomain.Membership) membershipResponse {
	return membershipResponse{
		ID:        item.ID,
		TeamID:    item.TeamID,
		UserID:    item.UserID,
		Role:      string(item.Role),
		Status:    string(item.Status),
		CreatedAt: formatTime(item.CreatedAt),
		UpdatedAt: formatTime(item.UpdatedAt),
	}
}

func toMembershipList(items []teamdomain.Membership) listResponse[membershipResponse] {
	response := make([]membershipResponse, 0, len(items))
	for _, item := range items {
		response = append(response, toMembershipResponse(item))
	}
	return newListResponse(response)
}

func (h *Handlers) ListTeams(w http.ResponseWriter, r *http.Request) {
	items, err := h.Teams.List(r.Context())
	if err != nil {
		h.fail(w, "teams.list", err)
		return
	}

	response := make([]teamResponse, 0, len(items))
	for _, item := range items {
		response = append(response, toTeamResponse(item))
	}
	writeJSON(w, http.StatusOK, newListResponse(response))
}

func (h *Handlers) GetTeam(w http.ResponseWriter, r *http.Request) {
	teamID := chi.URLParam(r, "id")
	item, err := h.Teams.Get(r.Context(), teamID)
	if err != nil {
		h.fail(w, "teams.get", err, "team_id", teamID)
		return
	}
	writeJSON(w, http.StatusOK, toTeamResponse(*item))
}

func (h *Handlers) CreateTeam(w http.ResponseWriter, r *http.Request) {
	var req createTeamRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
		return
	}

	created, err := h.Teams.Create(r.Context(), user.ID, teamdomain.CreateTeamInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		h.fail(w, "teams.create", err, "user_id", user.ID)
		return
	}
	h.log.Info("teams.create: team created", "user_id", user.ID, "team_id", created.ID)
	writeJSON(w, http.StatusCreated, toTeamResponse(*created))
}

// MyTeams lists the caller's memberships in every status.
func (h *Handlers) MyTeams(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
		return
	}

	items, err := h.Teams.Mine(r.Context(), user.ID)
	if err != nil {
		h.fail(w, "teams.mine", err, "user_id", user.ID)
		return
	}
	writeJSON(w, http.StatusOK, toMembershipList(items))
}

func (h *Handlers) TeamMembers(w http.ResponseWriter, r *http.Request) {
	teamID := chi.URLParam(r, "id")
	items, err := h.Teams.Members(r.Context(), teamID)
	if err != nil {
		h.fail(w, "teams.members", err, "team_id", teamID)
		return
	}
	writeJSON(w, http.StatusOK, toMembershipList(items))
}

func (h *Handlers) JoinTeam(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
		return
	}
	teamID := chi.URLParam(r, "id")

	membership, err := h.Teams.RequestJoin(r.Context(), teamID, user.ID)
	if err != nil {
		h.fail(w, "teams.join", err, "user_id", user.ID, "team_id", teamID)
		return
	}
	writeJSON(w, http.StatusCreated, toMembershipResponse(*membership))
}

// AdminListMemberships defaults to the PENDING queue.
func (h *Handlers) AdminListMemberships(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	status := teamdomain.MemberStatusPending
	if value := query.Get("status"); value != "" {
		parsed, err := teamdomain.ParseMemberStatus(value)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "invalid status")
			return
		}
		status = parsed
	}

	items, err := h.Teams.ListMemberships(r.Context(), teamdomain.MembershipFilter{
		TeamID: query.Get("teamId"),
		Status: &status,
	})
	if err != nil {
		h.fail(w, "admin.memberships.list", err)
		return
	}
	writeJSON(w, http.StatusOK, toMembershipList(items))
}

func (h *Handlers) AdminDecideMembership(w http.ResponseWriter, r *http.Request) {
	var req membershipDecisionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	admin, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
		return
	}
	membershipID := chi.URLParam(r, "id")

	updated, err := h.Teams.Decide(r.Context(), membershipID, teamdomain.DecisionInput{
		Status: req.Status,
		Role:   req.Role,
	})
	if err != nil {
		h.fail(w, "admin.memberships.decide", err, "admin_id", admin.ID, "membership_id", membershipID)
		return
	}
	h.log.Info("admin.memberships.decide: membership updated",
		"admin_id", admin.ID, "membership_id", membershipID, "status", string(updated.Status))
	writeJSON(w, http.StatusOK, toMembershipResponse(*updated))
}
