package analytics

type DayStat struct {
	Date  string  `json:"date"`
	Tasks int     `json:"tasks"`
	Hours float64 `json:"hours"`
}

type MonthlyStats struct {
	Month       string    `json:"month"`
	TotalTasks  int       `json:"totalTasks"`
	TotalHours  float64   `json:"totalHours"`
	AverageMood float64   `json:"averageMood"`
	ActiveDays  int       `json:"activeDays"`
	DaysInMonth int       `json:"daysInMonth"`
	Days        []DayStat `json:"days"`
}

type DashboardMetrics struct {
	TodayTasks     int     `json:"todayTasks"`
	TodayHours     float64 `json:"todayHours"`
	WeekTasks      int     `json:"weekTasks"`
	WeekHours      float64 `json:"weekHours"`
	CurrentStreak  int     `json:"currentStreak"`
	ActiveGoals    int     `json:"activeGoals"`
	GoalProgress   float64 `json:"goalProgress"`
	TotalTasks     int64   `json:"totalTasks"`
	CompletedTasks int64   `json:"completedTasks"`
	CompletionRate float64 `json:"completionRate"`
	ActiveProjects int64   `json:"activeProjects"`
}
