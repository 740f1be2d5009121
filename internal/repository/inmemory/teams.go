package inmemory

import (
	"context"
	"maps"
	"sort"
	"strings"

	teamdomain "team-tracker-go/internal/domain/team"
)

type TeamRepository struct {
	store *Store
}

// Transaction serializes with other transactions and restores the team maps when fn fails.
func (r *TeamRepository) Transaction(ctx context.Context, fn func(teamdomain.Repository) error) error {
	r.store.txMu.Lock()
	defer r.store.txMu.Unlock()

	r.store.mu.RLock()
	teams := maps.Clone(r.store.teams)
	memberships := maps.Clone(r.store.memberships)
	r.store.mu.RUnlock()

	if err := fn(r); err != nil {
		r.store.mu.Lock()
		r.store.teams = teams
		r.store.memberships = memberships
		r.store.mu.Unlock()
		return err
	}
	return nil
}

func (r *TeamRepository) ListTeams(ctx context.Context) ([]teamdomain.Team, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]teamdomain.Team, 0, len(r.store.teams))
	for _, team := range r.store.teams {
		result = append(result, team)
	}
	sort.Slice(result, func(i, j int) bool {
		return strings.ToLower(result[i].Name) < strings.ToLower(result[j].Name)
	})
	return result, nil
}

func (r *TeamRepository) GetTeam(ctx context.Context, id string) (*teamdomain.Team, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	team, ok := r.store.teams[id]
	if !ok {
		return nil, teamdomain.ErrTeamNotFound
	}
	return &team, nil
}

func (r *TeamRepository) CreateTeam(ctx context.Context, team *teamdomain.Team) error {
	r.store.mu.Lock()
	r.store.teams[team.ID] = *team
	r.store.mu.Unlock()
	return nil
}

func (r *TeamRepository) CreateMembership(ctx context.Context, membership *teamdomain.Membership) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.find(membership.TeamID, membership.UserID); ok {
		return teamdomain.ErrAlreadyMember
	}
	r.store.memberships[membership.ID] = *membership
	return nil
}

func (r *TeamRepository) GetMembership(ctx context.Context, id string) (*teamdomain.Membership, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	membership, ok := r.store.memberships[id]
	if !ok {
		return nil, teamdomain.ErrMembershipNotFound
	}
	return &membership, nil
}

func (r *TeamRepository) FindMembership(ctx context.Context, teamID, userID string) (*teamdomain.Membership, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	membership, ok := r.find(teamID, userID)
	if !ok {
		return nil, teamdomain.ErrMembershipNotFound
	}
	return &membership, nil
}

func (r *TeamRepository) ListMemberships(ctx context.Context, filter teamdomain.MembershipFilter) ([]teamdomain.Membership, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]teamdomain.Membership, 0)
	for _, membership := range r.store.memberships {
		if filter.TeamID != "" && membership.TeamID != filter.TeamID {
			continue
		}
		if filter.UserID != "" && membership.UserID != filter.UserID {
			continue
		}
		if filter.Status != nil && membership.Status != *filter.Status {
			continue
		}
		result = append(result, membership)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (r *TeamRepository) UpdateMembership(ctx context.Context, id string, status teamdomain.MemberStatus, role *teamdomain.MemberRole) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	membership, ok := r.store.memberships[id]
	if !ok {
		return teamdomain.ErrMembershipNotFound
	}
	membership.Status = status
	if role != nil {
		membership.Role = *role
	}
	membership.UpdatedAt = r.store.now().UTC()
	r.store.memberships[id] = membership
	return nil
}

func (r *TeamRepository) find(teamID, userID string) (teamdomain.Membership, bool) {
	for _, membership := range r.store.memberships {
		if membership.TeamID == teamID && membership.UserID == userID {
			return membership, true
		}
	}
	return teamdomain.Membership{}, false
}
