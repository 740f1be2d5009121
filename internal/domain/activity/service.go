package activity

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultLimit = 20
	MaxLimit     = 200
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) Record(ctx context.Context, userID, activityType, description string) error {
	activity := Activity{
		ID:          uuid.NewString(),
		UserID:      userID,
		Type:        activityType,
		Description: description,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.repo.Create(ctx, &activity); err != nil {
		return fmt.Errorf("record activity: %w", err)
	}
	return nil
}

func (s *Service) List(ctx context.Context, userID string, limit int) ([]Activity, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return s.repo.ListByUser(ctx, userID, limit)
}

// All returns the whole feed of a user, used by the data export.
func (s *Service) All(ctx context.Context, userID string) ([]Activity, error) {
	return s.repo.ListByUser(ctx, userID, 0)
}
