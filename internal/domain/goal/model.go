package goal

import (
	"database/sql/driver"
	"time"

	"team-tracker-go/internal/domain/enum"
)

type Type string

const (
	TypeDaily   Type = "daily"
	TypeWeekly  Type = "weekly"
	TypeMonthly Type = "monthly"
)

var types = []Type{TypeDaily, TypeWeekly, TypeMonthly}

func ParseType(value string) (Type, error) {
	return enum.Parse("goal type", value, types...)
}

func (t *Type) Scan(src any) error {
	return enum.Scan(t, src, "goal type", types...)
}

func (t Type) Value() (driver.Value, error) {
	return enum.Value(t, "goal type", types...)
}

type Goal struct {
	ID        string `gorm:"primaryKey"`
	UserID    string `gorm:"column:user_id;not null;index"`
	Title     string `gorm:"not null"`
	Type      Type   `gorm:"type:varchar(16);not null"`
	Target    int    `gorm:"not null"`
	Current   int    `gorm:"not null"`
	IsActive  bool   `gorm:"column:is_active;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Progress is current/target in percent, capped at 100.
func (g Goal) Progress() float64 {
	if g.Target <= 0 {
		return 0
	}
	progress := float64(g.Current) / float64(g.Target) * 100
	if progress > 100 {
		return 100
	}
	return progress
}

type CreateInput struct {
	Title    string
	Type     string
	Target   int
	Current  int
	IsActive *bool
}

type UpdateInput struct {
	Title    *string
	Type     *string
	Target   *int
	Current  *int
	IsActive *bool
}
