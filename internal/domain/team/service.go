package team

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"team-tracker-go/internal/domain/validation"
)

type Service struct {
	repo     Repository
	cache    Cache
	cacheTTL time.Duration
	now      func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, cache: noopCache{}, now: time.Now}
}

// WithCache enables caching of active team ids. A nil cache or non-positive ttl leaves caching off.
func (s *Service) WithCache(cache Cache, ttl time.Duration) *Service {
	if cache == nil || ttl <= 0 {
		s.cache = noopCache{}
		s.cacheTTL = 0
		return s
	}
	s.cache = cache
	s.cacheTTL = ttl
	return s
}

func (s *Service) List(ctx context.Context) ([]Team, error) {
	return s.repo.ListTeams(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*Team, error) {
	return s.repo.GetTeam(ctx, id)
}

// Create stores the team and makes its creator an active lead in one transaction.
func (s *Service) Create(ctx context.Context, creatorID string, input CreateTeamInput) (*Team, error) {
	name := strings.TrimSpace(input.Name)

	var v validation.Checker
	if v.Required("name", name) {
		v.MaxLength("name", name, 120)
	}
	v.MaxLength("description", input.Description, 2000)
	if err := v.Err(); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	team := Team{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedBy: creatorID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if description := strings.TrimSpace(input.Description); description != "" {
		team.Description = &description
	}

	err := s.repo.Transaction(ctx, func(tx Repository) error {
		if err := tx.CreateTeam(ctx, &team); err != nil {
			return err
		}
		return tx.CreateMembership(ctx, &Membership{
			ID:        uuid.NewString(),
			TeamID:    team.ID,
			UserID:    creatorID,
			Role:      MemberRoleLead,
			Status:    MemberStatusActive,
			CreatedAt: now,
			UpdatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}
	s.cache.DeleteByUserID(creatorID)
	return &team, nil
}

func (s *Service) Members(ctx context.Context, teamID string) ([]Membership, error) {
	if _, err := s.repo.GetTeam(ctx, teamID); err != nil {
		return nil, err
	}
	return s.repo.ListMemberships(ctx, MembershipFilter{TeamID: teamID})
}

// RequestJoin files a pending MEMBER membership. A second request for the same team is a conflict
// whatever the state of the first one.
func (s *Service) RequestJoin(ctx context.Context, teamID, userID string) (*Membership, error) {
	if _, err := s.repo.GetTeam(ctx, teamID); err != nil {
		return nil, err
	}

	_, err := s.repo.FindMembership(ctx, teamID, userID)
	switch {
	case err == nil:
		return nil, ErrAlreadyMember
	case !errors.Is(err, ErrMembershipNotFound):
		return nil, err
	}

	now := s.now().UTC()
	membership := Membership{
		ID:        uuid.NewString(),
		TeamID:    teamID,
		UserID:    userID,
		Role:      MemberRoleMember,
		Status:    MemberStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.CreateMembership(ctx, &membership); err != nil {
		return nil, err
	}
	return &membership, nil
}

func (s *Service) Mine(ctx context.Context, userID string) ([]Membership, error) {
	return s.repo.ListMemberships(ctx, MembershipFilter{UserID: userID})
}

func (s *Service) ListMemberships(ctx context.Context, filter MembershipFilter) ([]Membership, error) {
	return s.repo.ListMemberships(ctx, filter)
}

// Decide sets a membership to ACTIVE or INACTIVE.
func (s *Service) Decide(ctx context.Context, membershipID string, input DecisionInput) (*Membership, error) {
	var (
		v    validation.Checker
		role *MemberRole
	)
	status, err := ParseMemberStatus(input.Status)
	v.Check(err == nil && status != MemberStatusPending, "status", "must be ACTIVE or INACTIVE")
	if input.Role != nil {
		parsed, err := ParseMemberRole(*input.Role)
		v.Check(err == nil, "role", "must be MEMBER or LEAD")
		role = &parsed
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetMembership(ctx, membershipID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateMembership(ctx, membershipID, status, role); err != nil {
		return nil, err
	}
	s.cache.DeleteByUserID(existing.UserID)
	return s.repo.GetMembership(ctx, membershipID)
}

func (s *Service) IsActiveMember(ctx context.Context, teamID, userID string) (bool, error) {
	membership, err := s.repo.FindMembership(ctx, teamID, userID)
	if err != nil {
		if errors.Is(err, ErrMembershipNotFound) {
			return false, nil
		}
		return false, err
	}
	return membership.Status == MemberStatusActive, nil
}

// ActiveTeamIDs lists the teams in which the user holds an ACTIVE membership.
func (s *Service) ActiveTeamIDs(ctx context.Context, userID string) ([]string, error) {
	if ids, ok := s.cache.GetActiveTeams(userID); ok {
		return ids, nil
	}

	active := MemberStatusActive
	memberships, err := s.repo.ListMemberships(ctx, MembershipFilter{UserID: userID, Status: &active})
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(memberships))
	for _, membership := range memberships {
		ids = append(ids, membership.TeamID)
	}
	s.cache.SetActiveTeams(userID, ids, s.cacheTTL)
	return ids, nil
}
