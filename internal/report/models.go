package report

import (
	"time"

	"github.com/presenceops/presence-cloud/internal/presence"
)

// Day classification for the employee monthly detail.
const (
	StatusFullDay = "Full day"
	StatusPartial = "Partial"
	StatusAbsent  = "Absent"
	StatusWeekend = "Weekend"
)

// FullDayHours is the span threshold for a full working day.
const FullDayHours = 8.0

type EmployeeStatusView struct {
	EmployeeID   int
	EmployeeName string
	IsPresent    bool
	CurrentArea  string
	LastSeen     time.Time
}

// DailyEntry is one employee's attendance for a single date. HoursPresent is
// the span between first and last seen, not the accumulated online minutes;
// the raw minute total rides along for completeness.
type DailyEntry struct {
	EmployeeID   int
	EmployeeName string
	Date         time.Time
	FirstSeen    *presence.TimeOfDay
	LastSeen     *presence.TimeOfDay
	TotalMinutes int
	HoursPresent float64
}

type MonthlySummary struct {
	EmployeeID     int
	EmployeeName   string
	TotalHours     float64
	DaysPresent    int
	AvgHoursPerDay float64
}

type DayDetail struct {
	Date      time.Time
	DayOfWeek string
	FirstSeen *presence.TimeOfDay
	LastSeen  *presence.TimeOfDay
	Hours     float64
	Status    string
}

type MonthlyDetail struct {
	EmployeeID   int
	EmployeeName string
	Year         int
	Month        time.Month
	Days         []DayDetail
	TotalHours   float64
	DaysPresent  int
}
