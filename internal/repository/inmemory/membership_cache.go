package inmemory

import (
	"slices"
	"sync"
	"time"
)

type MembershipCache struct {
	mu    sync.RWMutex
	now   func() time.Time
	items map[string]membershipItem
}

type membershipItem struct {
	teamIDs   []string
	expiresAt time.Time
}

func NewMembershipCache() *MembershipCache {
	return &MembershipCache{
		now:   time.Now,
		items: make(map[string]membershipItem),
	}
}

func (c *MembershipCache) GetActiveTeams(userID string) ([]string, bool) {
	now := c.now()

	c.mu.RLock()
	item, ok := c.items[userID]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if !item.expiresAt.After(now) {
		c.mu.Lock()
		item, ok = c.items[userID]
		if ok && !item.expiresAt.After(now) {
			delete(c.items, userID)
		}
		c.mu.Unlock()
		return nil, false
	}

	return slices.Clone(item.teamIDs), true
}

func (c *MembershipCache) SetActiveTeams(userID string, teamIDs []string, ttl time.Duration) {
	if ttl <= 0 {
		c.DeleteByUserID(userID)
		return
	}

	c.mu.Lock()
	c.items[userID] = membershipItem{
		teamIDs:   slices.Clone(teamIDs),
		expiresAt: c.now().Add(ttl),
	}
	c.mu.Unlock()
}

func (c *MembershipCache) DeleteByUserID(userID string) {
	c.mu.Lock()
	delete(c.items, userID)
	c.mu.Unlock()
}
