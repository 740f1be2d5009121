package activity

import (
	"context"
	"sort"
	"testing"
	"time"
)

type fakeActivityRepo struct {
	items     []Activity
	lastLimit int
}

func (r *fakeActivityRepo) Create(ctx context.Context, activity *Activity) error {
	r.items = append(r.items, *activity)
	return nil
}

func (r *fakeActivityRepo) ListByUser(ctx context.Context, userID string, limit int) ([]Activity, error) {
	r.lastLimit = limit
	var result []Activity
	for _, item := range r.items {
		if item.UserID == userID {
			result = append(result, item)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func TestRecordAndList(t *testing.T) {
	repo := &fakeActivityRepo{}
	svc := NewService(repo)
	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	tick := 0
	svc.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	if err := svc.Record(context.Background(), "user-1", TypeDailyUpdate, "first"); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := svc.Record(context.Background(), "user-1", TypeTaskCompleted, "second"); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := svc.Record(context.Background(), "user-2", TypeDailyUpdate, "other"); err != nil {
		t.Fatalf("record: %v", err)
	}

	items, err := svc.List(context.Background(), "user-1", 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if repo.lastLimit != DefaultLimit {
		t.Fatalf("expected default limit, got %d", repo.lastLimit)
	}
	if len(items) != 2 || items[0].Description != "second" {
		t.Fatalf("expected newest first, got %+v", items)
	}

	if _, err := svc.List(context.Background(), "user-1", 10_000); err != nil {
		t.Fatalf("list: %v", err)
	}
	if repo.lastLimit != MaxLimit {
		t.Fatalf("expected capped limit, got %d", repo.lastLimit)
	}
}
