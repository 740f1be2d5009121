// Package inmemory keeps every repository in process memory. It backs local development and tests when
// no DATABASE_URL is configured; all maps are guarded by one RWMutex.
package inmemory

import (
	"sync"
	"time"

	activitydomain "team-tracker-go/internal/domain/activity"
	goaldomain "team-tracker-go/internal/domain/goal"
	projectdomain "team-tracker-go/internal/domain/project"
	sessiondomain "team-tracker-go/internal/domain/session"
	taskdomain "team-tracker-go/internal/domain/task"
	teamdomain "team-tracker-go/internal/domain/team"
	updatedomain "team-tracker-go/internal/domain/update"
	userdomain "team-tracker-go/internal/domain/user"
)

type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex
	now  func() time.Time

	users          map[string]userdomain.User
	sessions       map[string]sessiondomain.Session
	teams          map[string]teamdomain.Team
	memberships    map[string]teamdomain.Membership
	projects       map[string]projectdomain.Project
	projectUpdates map[string]projectdomain.ProjectUpdate
	tasks          map[string]taskdomain.Task
	dailyUpdates   map[string]updatedomain.DailyUpdate
	userUpdates    map[string]updatedomain.UserUpdate
	goals          map[string]goaldomain.Goal
	activities     map[string]activitydomain.Activity
}

func NewStore() *Store {
	return &Store{
		now:            time.Now,
		users:          make(map[string]userdomain.User),
		sessions:       make(map[string]sessiondomain.Session),
		teams:          make(map[string]teamdomain.Team),
		memberships:    make(map[string]teamdomain.Membership),
		projects:       make(map[string]projectdomain.Project),
		projectUpdates: make(map[string]projectdomain.ProjectUpdate),
		tasks:          make(map[string]taskdomain.Task),
		dailyUpdates:   make(map[string]updatedomain.DailyUpdate),
		userUpdates:    make(map[string]updatedomain.UserUpdate),
		goals:          make(map[string]goaldomain.Goal),
		activities:     make(map[string]activitydomain.Activity),
	}
}

func (s *Store) Users() *UserRepository {
	return &UserRepository{store: s}
}

func (s *Store) Sessions() *SessionStore {
	return &SessionStore{store: s}
}

func (s *Store) Teams() *TeamRepository {
	return &TeamRepository{store: s}
}

func (s *Store) Projects() *ProjectRepository {
	return &ProjectRepository{store: s}
}

func (s *Store) Tasks() *TaskRepository {
	return &TaskRepository{store: s}
}

func (s *Store) Updates() *UpdateRepository {
	return &UpdateRepository{store: s}
}

func (s *Store) Goals() *GoalRepository {
	return &GoalRepository{store: s}
}

func (s *Store) Activities() *ActivityRepository {
	return &ActivityRepository{store: s}
}

func limitSlice[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}
