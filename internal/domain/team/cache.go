package team

import "time"

// Cache holds the ACTIVE team ids per user. Entries are dropped whenever one of the user's memberships changes.
type Cache interface {
	GetActiveTeams(userID string) ([]string, bool)
	SetActiveTeams(userID string, teamIDs []string, ttl time.Duration)
	DeleteByUserID(userID string)
}

type noopCache struct{}

func (noopCache) GetActiveTeams(string) ([]string, bool) {
	return nil, false
}

func (noopCache) SetActiveTeams(string, []string, time.Duration) {}

func (noopCache) DeleteByUserID(string) {}
