package team

import "errors"

var (
	ErrTeamNotFound       = errors.New("team not found")
	ErrMembershipNotFound = errors.New("membership not found")
	ErrAlreadyMember      = errors.New("membership already exists")
)
