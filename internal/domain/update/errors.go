package update

import "errors"

var (
	ErrDailyUpdateNotFound = errors.New("daily update not found")
	ErrDailyUpdateExists   = errors.New("daily update already exists for this date")
)
