package presence

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidTimeOfDay = errors.New("invalid time of day")

// TimeOfDay is a naive wall-clock time with minute resolution. All agent
// timestamps are already local; no timezone conversion happens anywhere.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay accepts "15:04" or "15:04:05"; seconds are dropped.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parsed, err := time.Parse("15:04:05", s)
	if err != nil {
		parsed, err = time.Parse("15:04", s)
	}
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}
	return TimeOfDay{Hour: parsed.Hour(), Minute: parsed.Minute()}, nil
}

// TotalMinutes returns minutes since midnight.
func (t TimeOfDay) TotalMinutes() int {
	return t.Hour*60 + t.Minute
}

func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.TotalMinutes() < other.TotalMinutes()
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Sample is one agent-reported presence summary for an employee on a date,
// typically covering a single hour of observation.
type Sample struct {
	EmployeeID    int
	EmployeeName  string
	FakeName      string
	Date          time.Time
	FirstSeen     TimeOfDay
	LastSeen      TimeOfDay
	MinutesOnline int
}

// DailyRecord is the merged attendance record for one (employee, date) pair.
// FirstSeen holds the minimum and LastSeen the maximum over every merged
// sample; TotalMinutes accumulates additively, so each sample must be
// delivered at most once or the total inflates.
type DailyRecord struct {
	EmployeeID    int
	EmployeeName  string
	FakeName      string
	Date          time.Time
	FirstSeen     *TimeOfDay
	LastSeen      *TimeOfDay
	TotalMinutes  int
	HoursPresent  float64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
