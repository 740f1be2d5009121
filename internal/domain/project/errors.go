package project

import "errors"

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrNotTeamMember   = errors.New("not an active member of the project team")
)
