package team

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	ListTeams(ctx context.Context) ([]Team, error)
	GetTeam(ctx context.Context, id string) (*Team, error)
	CreateTeam(ctx context.Context, team *Team) error
	// CreateMembership returns ErrAlreadyMember when the user already has a membership in the team.
	CreateMembership(ctx context.Context, membership *Membership) error
	GetMembership(ctx context.Context, id string) (*Membership, error)
	FindMembership(ctx context.Context, teamID, userID string) (*Membership, error)
	ListMemberships(ctx context.Context, filter MembershipFilter) ([]Membership, error)
	UpdateMembership(ctx context.Context, id string, status MemberStatus, role *MemberRole) error
}
