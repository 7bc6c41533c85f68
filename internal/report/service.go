// Package report derives the viewer-facing read models from live status and
// daily attendance records. It never mutates persisted state.
package report

import (
	"context"
	"sort"
	"time"

	"github.com/presenceops/presence-cloud/internal/names"
	"github.com/presenceops/presence-cloud/internal/presence"
	"github.com/presenceops/presence-cloud/internal/status"
)

// PresenceReader is the slice of the daily aggregator the reports consume.
type PresenceReader interface {
	RecordsForDate(ctx context.Context, date time.Time) ([]presence.DailyRecord, error)
	RecordsForMonth(ctx context.Context, year int, month time.Month) ([]presence.DailyRecord, error)
	EmployeeRecordsForMonth(ctx context.Context, employeeID, year int, month time.Month) ([]presence.DailyRecord, error)
}

// StatusReader is the read side of the live status tracker.
type StatusReader interface {
	ListAll(ctx context.Context) ([]status.EmployeeStatus, error)
}

type Service struct {
	presence PresenceReader
	status   StatusReader
}

func NewService(presenceReader PresenceReader, statusReader StatusReader) *Service {
	return &Service{presence: presenceReader, status: statusReader}
}

// CurrentStatus returns the live status of every known employee. The call
// itself needs no authentication; the flag only controls name fidelity.
func (s *Service) CurrentStatus(ctx context.Context, authenticated bool) ([]EmployeeStatusView, error) {
	statuses, err := s.status.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]EmployeeStatusView, len(statuses))
	for i, st := range statuses {
		views[i] = EmployeeStatusView{
			EmployeeID:   st.EmployeeID,
			EmployeeName: names.Display(st.EmployeeName, st.FakeName, authenticated),
			IsPresent:    st.IsPresent,
			CurrentArea:  st.CurrentArea,
			LastSeen:     st.LastSeen,
		}
	}
	return views, nil
}

// Daily returns all attendance records for a date. Hours are recomputed from
// the first/last-seen span; the accumulated minute total is carried as-is.
func (s *Service) Daily(ctx context.Context, date time.Time, authenticated bool) ([]DailyEntry, error) {
	records, err := s.presence.RecordsForDate(ctx, date)
	if err != nil {
		return nil, err
	}

	entries := make([]DailyEntry, len(records))
	for i, rec := range records {
		entries[i] = DailyEntry{
			EmployeeID:   rec.EmployeeID,
			EmployeeName: names.Display(rec.EmployeeName, rec.FakeName, authenticated),
			Date:         rec.Date,
			FirstSeen:    rec.FirstSeen,
			LastSeen:     rec.LastSeen,
			TotalMinutes: rec.TotalMinutes,
			HoursPresent: SpanHours(rec.FirstSeen, rec.LastSeen),
		}
	}
	return entries, nil
}

// Monthly groups the month's records by employee. Days present counts
// records, including ones whose span works out to zero.
func (s *Service) Monthly(ctx context.Context, year int, month time.Month, authenticated bool) ([]MonthlySummary, error) {
	records, err := s.presence.RecordsForMonth(ctx, year, month)
	if err != nil {
		return nil, err
	}

	grouped := make(map[int][]presence.DailyRecord)
	for _, rec := range records {
		grouped[rec.EmployeeID] = append(grouped[rec.EmployeeID], rec)
	}

	summaries := make([]MonthlySummary, 0, len(grouped))
	for employeeID, employeeRecords := range grouped {
		var totalHours float64
		for _, rec := range employeeRecords {
			totalHours += SpanHours(rec.FirstSeen, rec.LastSeen)
		}
		daysPresent := len(employeeRecords)

		first := employeeRecords[0]
		summaries = append(summaries, MonthlySummary{
			EmployeeID:     employeeID,
			EmployeeName:   names.Display(first.EmployeeName, first.FakeName, authenticated),
			TotalHours:     totalHours,
			DaysPresent:    daysPresent,
			AvgHoursPerDay: totalHours / float64(daysPresent),
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].EmployeeID < summaries[j].EmployeeID
	})
	return summaries, nil
}

// EmployeeMonthlyDetail classifies every calendar day of the month for one
// employee: recorded days by their span, unrecorded days as weekend or
// absent.
func (s *Service) EmployeeMonthlyDetail(ctx context.Context, employeeID, year int, month time.Month, authenticated bool) (MonthlyDetail, error) {
	records, err := s.presence.EmployeeRecordsForMonth(ctx, employeeID, year, month)
	if err != nil {
		return MonthlyDetail{}, err
	}

	byDate := make(map[string]presence.DailyRecord, len(records))
	for _, rec := range records {
		byDate[rec.Date.Format(time.DateOnly)] = rec
	}

	employeeName, fakeName := "Unknown", "Unknown"
	if len(records) > 0 {
		employeeName = records[0].EmployeeName
		fakeName = records[0].FakeName
	}

	from, to := presence.MonthBounds(year, month)
	daysInMonth := to.Day()

	detail := MonthlyDetail{
		EmployeeID:   employeeID,
		EmployeeName: names.Display(employeeName, fakeName, authenticated),
		Year:         year,
		Month:        month,
		Days:         make([]DayDetail, 0, daysInMonth),
	}

	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		entry := DayDetail{
			Date:      day,
			DayOfWeek: day.Weekday().String(),
		}

		if rec, ok := byDate[day.Format(time.DateOnly)]; ok {
			entry.FirstSeen = rec.FirstSeen
			entry.LastSeen = rec.LastSeen
			entry.Hours = SpanHours(rec.FirstSeen, rec.LastSeen)
			entry.Status = classifySpan(entry.Hours)

			detail.TotalHours += entry.Hours
			if entry.Hours > 0 {
				detail.DaysPresent++
			}
		} else if isWeekend(day.Weekday()) {
			entry.Status = StatusWeekend
		} else {
			entry.Status = StatusAbsent
		}

		detail.Days = append(detail.Days, entry)
	}
	return detail, nil
}

// SpanHours computes hours strictly from the first/last-seen pair at minute
// resolution. Missing sides yield zero; a last-seen earlier than first-seen
// (clock skew, bad input) clamps to zero instead of going negative.
func SpanHours(first, last *presence.TimeOfDay) float64 {
	if first == nil || last == nil {
		return 0
	}
	span := float64(last.TotalMinutes()-first.TotalMinutes()) / 60.0
	if span < 0 {
		return 0
	}
	return span
}

func classifySpan(hours float64) string {
	switch {
	case hours >= FullDayHours:
		return StatusFullDay
	case hours > 0:
		return StatusPartial
	default:
		return StatusAbsent
	}
}

func isWeekend(d time.Weekday) bool {
	return d == time.Saturday || d == time.Sunday
}
