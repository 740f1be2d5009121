package inmemory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sessiondomain "team-tracker-go/internal/domain/session"
	teamdomain "team-tracker-go/internal/domain/team"
	updatedomain "team-tracker-go/internal/domain/update"
	userdomain "team-tracker-go/internal/domain/user"
)

func fixedStore(now time.Time) *Store {
	store := NewStore()
	store.now = func() time.Time { return now }
	return store
}

func TestUserEmailIsUnique(t *testing.T) {
	repo := NewStore().Users()
	email := "ada@example.com"

	require.NoError(t, repo.Create(context.Background(), &userdomain.User{ID: "u1", Email: &email}))
	err := repo.Create(context.Background(), &userdomain.User{ID: "u2", Email: &email})
	assert.ErrorIs(t, err, userdomain.ErrEmailTaken)
}

func TestSessionExpiry(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	store := fixedStore(now)
	sessions := store.Sessions()
	ctx := context.Background()

	require.NoError(t, sessions.Save(ctx, &sessiondomain.Session{ID: "live", ExpiresAt: now.Add(time.Hour)}))
	require.NoError(t, sessions.Save(ctx, &sessiondomain.Session{ID: "stale", ExpiresAt: now.Add(-time.Second)}))
	require.NoError(t, sessions.Save(ctx, &sessiondomain.Session{ID: "edge", ExpiresAt: now}))

	got, err := sessions.Get(ctx, "live")
	require.NoError(t, err)
	assert.Equal(t, "live", got.ID)

	_, err = sessions.Get(ctx, "stale")
	assert.ErrorIs(t, err, sessiondomain.ErrSessionNotFound)

	deleted, err := sessions.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted, "stale was evicted on read, edge remains to prune")
}

func TestTeamTransactionRollsBack(t *testing.T) {
	teams := NewStore().Teams()
	ctx := context.Background()
	boom := errors.New("boom")

	err := teams.Transaction(ctx, func(tx teamdomain.Repository) error {
		if err := tx.CreateTeam(ctx, &teamdomain.Team{ID: "t1", Name: "Platform"}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = teams.GetTeam(ctx, "t1")
	assert.ErrorIs(t, err, teamdomain.ErrTeamNotFound)
}

func TestMembershipPairIsUnique(t *testing.T) {
	teams := NewStore().Teams()
	ctx := context.Background()

	require.NoError(t, teams.CreateMembership(ctx, &teamdomain.Membership{ID: "m1", TeamID: "t1", UserID: "u1"}))
	err := teams.CreateMembership(ctx, &teamdomain.Membership{ID: "m2", TeamID: "t1", UserID: "u1"})
	assert.ErrorIs(t, err, teamdomain.ErrAlreadyMember)
}

func TestDailyUpdatesAreUniquePerDateAndNewestFirst(t *testing.T) {
	updates := NewStore().Updates()
	ctx := context.Background()

	for i, date := range []string{"2024-01-02", "2024-01-01", "2024-01-03"} {
		require.NoError(t, updates.CreateDaily(ctx, &updatedomain.DailyUpdate{ID: string(rune('a' + i)), UserID: "u1", Date: date}))
	}
	err := updates.CreateDaily(ctx, &updatedomain.DailyUpdate{ID: "dup", UserID: "u1", Date: "2024-01-01"})
	assert.ErrorIs(t, err, updatedomain.ErrDailyUpdateExists)

	items, err := updates.ListDaily(ctx, "u1", updatedomain.DailyFilter{Limit: 2})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "2024-01-03", items[0].Date)
	assert.Equal(t, "2024-01-02", items[1].Date)
}

func TestMembershipCacheExpires(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	cache := NewMembershipCache()
	cache.now = func() time.Time { return now }

	cache.SetActiveTeams("u1", []string{"t1"}, time.Minute)
	ids, ok := cache.GetActiveTeams("u1")
	require.True(t, ok)
	assert.Equal(t, []string{"t1"}, ids)

	now = now.Add(time.Minute)
	_, ok = cache.GetActiveTeams("u1")
	assert.False(t, ok)
}
