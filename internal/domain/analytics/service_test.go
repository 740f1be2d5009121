package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"team-tracker-go/internal/domain/goal"
	"team-tracker-go/internal/domain/project"
	"team-tracker-go/internal/domain/task"
	"team-tracker-go/internal/domain/update"
)

var today = time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)

func day(offset int) string {
	return today.AddDate(0, 0, offset).Format("2006-01-02")
}

type fakeDaily struct {
	updates []update.DailyUpdate
	err     error
	filters []update.DailyFilter
}

func (f *fakeDaily) ListDaily(ctx context.Context, userID string, filter update.DailyFilter) ([]update.DailyUpdate, error) {
	f.filters = append(f.filters, filter)
	if f.err != nil {
		return nil, f.err
	}
	var result []update.DailyUpdate
	for _, item := range f.updates {
		if filter.From != "" && item.Date < filter.From {
			continue
		}
		if filter.To != "" && item.Date > filter.To {
			continue
		}
		result = append(result, item)
	}
	return result, nil
}

type fakeTaskStats struct{ stats task.Stats }

func (f fakeTaskStats) Stats(ctx context.Context, userID string) (task.Stats, error) {
	return f.stats, nil
}

type fakeGoals struct{ goals []goal.Goal }

func (f fakeGoals) List(ctx context.Context, userID string, activeOnly bool) ([]goal.Goal, error) {
	return f.goals, nil
}

type fakeProjects struct{ count int64 }

func (f fakeProjects) CountActive(ctx context.Context, actor project.Actor) (int64, error) {
	return f.count, nil
}

func newTestService(daily *fakeDaily) *Service {
	svc := NewService(daily, fakeTaskStats{}, fakeGoals{}, fakeProjects{})
	svc.now = func() time.Time { return today.Add(15 * time.Hour) }
	return svc
}

func TestCurrentStreak(t *testing.T) {
	updates := []update.DailyUpdate{
		{Date: day(0), TasksCompleted: 2},
		{Date: day(-1), TasksCompleted: 1},
		{Date: day(-2), TasksCompleted: 4},
		{Date: day(-4), TasksCompleted: 9},
	}
	if got := CurrentStreak(updates, today); got != 3 {
		t.Fatalf("expected streak 3, got %d", got)
	}

	updates[1].TasksCompleted = 0
	if got := CurrentStreak(updates, today); got != 1 {
		t.Fatalf("expected zero-task day to break the streak at 1, got %d", got)
	}

	if got := CurrentStreak(updates[2:], today); got != 0 {
		t.Fatalf("expected no streak without an update today, got %d", got)
	}
}

func TestWeeklyStatsAlwaysSevenDays(t *testing.T) {
	updates := []update.DailyUpdate{
		{Date: day(0), TasksCompleted: 3, HoursWorked: 90},
		{Date: day(-6), TasksCompleted: 1, HoursWorked: 60},
		{Date: day(-7), TasksCompleted: 5, HoursWorked: 60},
	}

	week := WeeklyStats(updates, today)
	if len(week) != 7 {
		t.Fatalf("expected 7 entries, got %d", len(week))
	}
	if week[0].Date != day(-6) || week[6].Date != day(0) {
		t.Fatalf("expected oldest first, got %s..%s", week[0].Date, week[6].Date)
	}
	if week[0].Tasks != 1 || week[0].Hours != 1 {
		t.Fatalf("unexpected first day: %+v", week[0])
	}
	if week[6].Hours != 1.5 {
		t.Fatalf("expected minutes converted to hours, got %v", week[6].Hours)
	}
	for _, entry := range week[1:6] {
		if entry.Tasks != 0 || entry.Hours != 0 {
			t.Fatalf("expected zero-filled day, got %+v", entry)
		}
	}

	if empty := WeeklyStats(nil, today); len(empty) != 7 {
		t.Fatalf("expected 7 entries without updates, got %d", len(empty))
	}
}

func TestMonthlyStats(t *testing.T) {
	first := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	updates := []update.DailyUpdate{
		{Date: "2024-02-01", TasksCompleted: 2, HoursWorked: 120, Mood: 4},
		{Date: "2024-02-10", TasksCompleted: 0, HoursWorked: 0, Mood: 2},
		{Date: "2024-02-29", TasksCompleted: 3, HoursWorked: 30, Mood: 5},
	}

	stats := BuildMonthlyStats(updates, first)
	if stats.DaysInMonth != 29 || len(stats.Days) != 29 {
		t.Fatalf("expected leap february, got %d days", stats.DaysInMonth)
	}
	if stats.TotalTasks != 5 || stats.TotalHours != 2.5 {
		t.Fatalf("unexpected totals: %+v", stats)
	}
	if stats.ActiveDays != 2 {
		t.Fatalf("expected 2 active days, got %d", stats.ActiveDays)
	}
	if stats.AverageMood != 3.7 {
		t.Fatalf("expected average mood 3.7, got %v", stats.AverageMood)
	}

	empty := BuildMonthlyStats(nil, first)
	if empty.AverageMood != 0 || empty.TotalTasks != 0 {
		t.Fatalf("expected zeros without updates, got %+v", empty)
	}
}

func TestWeeklyQueriesSevenDayRange(t *testing.T) {
	daily := &fakeDaily{}
	svc := newTestService(daily)

	week, err := svc.Weekly(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("weekly: %v", err)
	}
	if len(week) != 7 {
		t.Fatalf("expected 7 entries, got %d", len(week))
	}
	if daily.filters[0].From != day(-6) || daily.filters[0].To != day(0) {
		t.Fatalf("unexpected range %+v", daily.filters[0])
	}
}

func TestDashboard(t *testing.T) {
	daily := &fakeDaily{updates: []update.DailyUpdate{
		{Date: day(0), TasksCompleted: 2, HoursWorked: 120},
		{Date: day(-1), TasksCompleted: 3, HoursWorked: 60},
		{Date: day(-10), TasksCompleted: 7, HoursWorked: 600},
	}}
	svc := NewService(daily,
		fakeTaskStats{stats: task.Stats{Total: 4, Completed: 1, CompletionRate: 25}},
		fakeGoals{goals: []goal.Goal{{Target: 10, Current: 5, IsActive: true}, {Target: 4, Current: 4, IsActive: true}}},
		fakeProjects{count: 2},
	)
	svc.now = func() time.Time { return today.Add(15 * time.Hour) }

	metrics, err := svc.Dashboard(context.Background(), project.Actor{UserID: "user-1"})
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if metrics.TodayTasks != 2 || metrics.TodayHours != 2 {
		t.Fatalf("unexpected today metrics: %+v", metrics)
	}
	if metrics.WeekTasks != 5 || metrics.WeekHours != 3 {
		t.Fatalf("unexpected week metrics: %+v", metrics)
	}
	if metrics.CurrentStreak != 2 {
		t.Fatalf("expected streak 2, got %d", metrics.CurrentStreak)
	}
	if metrics.ActiveGoals != 2 || metrics.GoalProgress != 75 {
		t.Fatalf("unexpected goal metrics: %+v", metrics)
	}
	if metrics.CompletionRate != 25 || metrics.ActiveProjects != 2 {
		t.Fatalf("unexpected task/project metrics: %+v", metrics)
	}
}

func TestDashboardPropagatesErrors(t *testing.T) {
	daily := &fakeDaily{err: errors.New("db down")}
	svc := newTestService(daily)

	if _, err := svc.Dashboard(context.Background(), project.Actor{UserID: "user-1"}); err == nil {
		t.Fatalf("expected error")
	}
}
