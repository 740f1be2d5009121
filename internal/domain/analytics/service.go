package analytics

import (
	"context"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"team-tracker-go/internal/domain/goal"
	"team-tracker-go/internal/domain/project"
	"team-tracker-go/internal/domain/task"
	"team-tracker-go/internal/domain/update"
	"team-tracker-go/internal/domain/validation"
)

const weekDays = 7

type Service struct {
	daily    DailyUpdates
	tasks    TaskStats
	goals    Goals
	projects Projects
	now      func() time.Time
}

func NewService(daily DailyUpdates, tasks TaskStats, goals Goals, projects Projects) *Service {
	return &Service{
		daily:    daily,
		tasks:    tasks,
		goals:    goals,
		projects: projects,
		now:      time.Now,
	}
}

// Weekly returns one entry per day from six days ago through today, oldest first.
func (s *Service) Weekly(ctx context.Context, userID string) ([]DayStat, error) {
	today := s.today()
	updates, err := s.daily.ListDaily(ctx, userID, update.DailyFilter{
		From: formatDate(today.AddDate(0, 0, -(weekDays - 1))),
		To:   formatDate(today),
	})
	if err != nil {
		return nil, err
	}
	return WeeklyStats(updates, today), nil
}

// Monthly aggregates the month containing month. A zero month means the current one.
func (s *Service) Monthly(ctx context.Context, userID string, month time.Time) (*MonthlyStats, error) {
	if month.IsZero() {
		month = s.today()
	}
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	updates, err := s.daily.ListDaily(ctx, userID, update.DailyFilter{From: formatDate(first), To: formatDate(last)})
	if err != nil {
		return nil, err
	}
	stats := BuildMonthlyStats(updates, first)
	return &stats, nil
}

func (s *Service) Streak(ctx context.Context, userID string) (int, error) {
	updates, err := s.daily.ListDaily(ctx, userID, update.DailyFilter{To: formatDate(s.today())})
	if err != nil {
		return 0, err
	}
	return CurrentStreak(updates, s.today()), nil
}

// Dashboard gathers the headline metrics. The reads are independent and run concurrently.
func (s *Service) Dashboard(ctx context.Context, actor project.Actor) (*DashboardMetrics, error) {
	today := s.today()

	var (
		updates        []update.DailyUpdate
		taskStats      task.Stats
		activeGoals    []goal.Goal
		activeProjects int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		updates, err = s.daily.ListDaily(gctx, actor.UserID, update.DailyFilter{To: formatDate(today)})
		return err
	})
	g.Go(func() error {
		var err error
		taskStats, err = s.tasks.Stats(gctx, actor.UserID)
		return err
	})
	g.Go(func() error {
		var err error
		activeGoals, err = s.goals.List(gctx, actor.UserID, true)
		return err
	})
	g.Go(func() error {
		var err error
		activeProjects, err = s.projects.CountActive(gctx, actor)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	metrics := &DashboardMetrics{
		CurrentStreak:  CurrentStreak(updates, today),
		ActiveGoals:    len(activeGoals),
		TotalTasks:     taskStats.Total,
		CompletedTasks: taskStats.Completed,
		CompletionRate: taskStats.CompletionRate,
		ActiveProjects: activeProjects,
	}

	week := WeeklyStats(updates, today)
	var weekMinutes int
	for _, day := range week {
		metrics.WeekTasks += day.Tasks
	}
	for _, item := range updates {
		if item.Date >= week[0].Date {
			weekMinutes += item.HoursWorked
		}
		if item.Date == formatDate(today) {
			metrics.TodayTasks = item.TasksCompleted
			metrics.TodayHours = minutesToHours(item.HoursWorked)
		}
	}
	metrics.WeekHours = minutesToHours(weekMinutes)

	if len(activeGoals) > 0 {
		var total float64
		for _, item := range activeGoals {
			total += item.Progress()
		}
		metrics.GoalProgress = roundTo(total/float64(len(activeGoals)), 1)
	}
	return metrics, nil
}

// WeeklyStats lays updates onto the seven days ending today, zero-filling days without an update.
func WeeklyStats(updates []update.DailyUpdate, today time.Time) []DayStat {
	byDate := indexByDate(updates)
	result := make([]DayStat, 0, weekDays)
	for offset := weekDays - 1; offset >= 0; offset-- {
		date := formatDate(today.AddDate(0, 0, -offset))
		result = append(result, dayStat(date, byDate))
	}
	return result
}

// BuildMonthlyStats aggregates the updates falling into the month that starts at first.
func BuildMonthlyStats(updates []update.DailyUpdate, first time.Time) MonthlyStats {
	byDate := indexByDate(updates)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	stats := MonthlyStats{
		Month:       first.Format("2006-01"),
		DaysInMonth: daysInMonth,
		Days:        make([]DayStat, 0, daysInMonth),
	}

	var minutes, moodTotal, moodCount int
	for day := 0; day < daysInMonth; day++ {
		date := formatDate(first.AddDate(0, 0, day))
		stats.Days = append(stats.Days, dayStat(date, byDate))

		item, ok := byDate[date]
		if !ok {
			continue
		}
		stats.TotalTasks += item.TasksCompleted
		minutes += item.HoursWorked
		moodTotal += item.Mood
		moodCount++
		if item.TasksCompleted > 0 || item.HoursWorked > 0 {
			stats.ActiveDays++
		}
	}
	stats.TotalHours = minutesToHours(minutes)
	if moodCount > 0 {
		stats.AverageMood = roundTo(float64(moodTotal)/float64(moodCount), 1)
	}
	return stats
}

// CurrentStreak walks back one day at a time from today while each day has an update with at least
// one completed task. The first missing or zero-task day ends the walk.
func CurrentStreak(updates []update.DailyUpdate, today time.Time) int {
	byDate := indexByDate(updates)
	streak := 0
	for day := today; ; day = day.AddDate(0, 0, -1) {
		item, ok := byDate[formatDate(day)]
		if !ok || item.TasksCompleted <= 0 {
			return streak
		}
		streak++
	}
}

func (s *Service) today() time.Time {
	now := s.now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func indexByDate(updates []update.DailyUpdate) map[string]update.DailyUpdate {
	byDate := make(map[string]update.DailyUpdate, len(updates))
	for _, item := range updates {
		byDate[item.Date] = item
	}
	return byDate
}

func dayStat(date string, byDate map[string]update.DailyUpdate) DayStat {
	item, ok := byDate[date]
	if !ok {
		return DayStat{Date: date}
	}
	return DayStat{Date: date, Tasks: item.TasksCompleted, Hours: minutesToHours(item.HoursWorked)}
}

func formatDate(t time.Time) string {
	return t.Format(validation.DateLayout)
}

func minutesToHours(minutes int) float64 {
	return roundTo(float64(minutes)/60, 2)
}

func roundTo(value float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(value*factor) / factor
}
