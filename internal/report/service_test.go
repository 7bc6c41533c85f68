package report

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/presenceops/presence-cloud/internal/presence"
	"github.com/presenceops/presence-cloud/internal/status"
)

type fakePresence struct {
	records []presence.DailyRecord
}

func (f *fakePresence) RecordsForDate(_ context.Context, date time.Time) ([]presence.DailyRecord, error) {
	var out []presence.DailyRecord
	for _, rec := range f.records {
		if rec.Date.Equal(date) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakePresence) RecordsForMonth(_ context.Context, year int, month time.Month) ([]presence.DailyRecord, error) {
	from, to := presence.MonthBounds(year, month)
	var out []presence.DailyRecord
	for _, rec := range f.records {
		if !rec.Date.Before(from) && !rec.Date.After(to) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakePresence) EmployeeRecordsForMonth(_ context.Context, employeeID, year int, month time.Month) ([]presence.DailyRecord, error) {
	records, _ := f.RecordsForMonth(context.Background(), year, month)
	var out []presence.DailyRecord
	for _, rec := range records {
		if rec.EmployeeID == employeeID {
			out = append(out, rec)
		}
	}
	return out, nil
}

type fakeStatus struct {
	statuses []status.EmployeeStatus
}

func (f *fakeStatus) ListAll(_ context.Context) ([]status.EmployeeStatus, error) {
	return f.statuses, nil
}

func tod(hour, minute int) *presence.TimeOfDay {
	return &presence.TimeOfDay{Hour: hour, Minute: minute}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newTestService(records []presence.DailyRecord, statuses []status.EmployeeStatus) *Service {
	return NewService(&fakePresence{records: records}, &fakeStatus{statuses: statuses})
}

func TestCurrentStatusAppliesNamePolicy(t *testing.T) {
	lastSeen := time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)
	svc := newTestService(nil, []status.EmployeeStatus{
		{EmployeeID: 1, EmployeeName: "Alice", FakeName: "Falcon", IsPresent: true, CurrentArea: "office", LastSeen: lastSeen},
	})

	views, err := svc.CurrentStatus(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Falcon", views[0].EmployeeName)
	assert.True(t, views[0].IsPresent)
	assert.Equal(t, lastSeen, views[0].LastSeen)

	views, err = svc.CurrentStatus(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, "Alice", views[0].EmployeeName)
}

func TestDailyRecomputesHoursFromSpan(t *testing.T) {
	day := date(2026, time.March, 2)
	svc := newTestService([]presence.DailyRecord{
		{
			EmployeeID: 1, EmployeeName: "Alice", FakeName: "Falcon", Date: day,
			FirstSeen: tod(9, 0), LastSeen: tod(17, 30),
			// accumulated minutes disagree with the span on purpose
			TotalMinutes: 300, HoursPresent: 5.0,
		},
	}, nil)

	entries, err := svc.Daily(context.Background(), day, false)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.InDelta(t, 8.5, entries[0].HoursPresent, 1e-9)
	assert.Equal(t, 300, entries[0].TotalMinutes)
	assert.Equal(t, "Falcon", entries[0].EmployeeName)
}

func TestDailyEmptyDate(t *testing.T) {
	svc := newTestService(nil, nil)
	entries, err := svc.Daily(context.Background(), date(2026, time.March, 2), true)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestMonthlyGroupsByEmployee(t *testing.T) {
	svc := newTestService([]presence.DailyRecord{
		{EmployeeID: 2, EmployeeName: "Bob", FakeName: "Heron", Date: date(2026, time.March, 2), FirstSeen: tod(9, 0), LastSeen: tod(17, 0)},
		{EmployeeID: 2, EmployeeName: "Bob", FakeName: "Heron", Date: date(2026, time.March, 3), FirstSeen: tod(10, 0), LastSeen: tod(14, 0)},
		{EmployeeID: 1, EmployeeName: "Alice", FakeName: "Falcon", Date: date(2026, time.March, 2), FirstSeen: tod(9, 0), LastSeen: tod(9, 0)},
	}, nil)

	summaries, err := svc.Monthly(context.Background(), 2026, time.March, true)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	// sorted by employee id
	alice, bob := summaries[0], summaries[1]

	assert.Equal(t, 1, alice.EmployeeID)
	assert.Equal(t, "Alice", alice.EmployeeName)
	assert.Zero(t, alice.TotalHours)
	assert.Equal(t, 1, alice.DaysPresent, "zero-span records still count as days present")

	assert.Equal(t, 2, bob.EmployeeID)
	assert.InDelta(t, 12.0, bob.TotalHours, 1e-9)
	assert.Equal(t, 2, bob.DaysPresent)
	assert.InDelta(t, 6.0, bob.AvgHoursPerDay, 1e-9)
}

func TestMonthlyEmptyMonth(t *testing.T) {
	svc := newTestService(nil, nil)
	summaries, err := svc.Monthly(context.Background(), 2026, time.March, false)
	require.NoError(t, err)
	assert.Empty(t, summaries)
}

func TestEmployeeMonthlyDetailClassification(t *testing.T) {
	// March 2026: the 1st is a Sunday.
	svc := newTestService([]presence.DailyRecord{
		{EmployeeID: 1, EmployeeName: "Alice", FakeName: "Falcon", Date: date(2026, time.March, 2), FirstSeen: tod(9, 0), LastSeen: tod(17, 30)},
		{EmployeeID: 1, EmployeeName: "Alice", FakeName: "Falcon", Date: date(2026, time.March, 3), FirstSeen: tod(9, 0), LastSeen: tod(13, 0)},
		{EmployeeID: 1, EmployeeName: "Alice", FakeName: "Falcon", Date: date(2026, time.March, 4), FirstSeen: tod(9, 0), LastSeen: tod(9, 0)},
	}, nil)

	detail, err := svc.EmployeeMonthlyDetail(context.Background(), 1, 2026, time.March, true)
	require.NoError(t, err)

	require.Len(t, detail.Days, 31)
	assert.Equal(t, "Alice", detail.EmployeeName)
	assert.Equal(t, 2026, detail.Year)
	assert.Equal(t, time.March, detail.Month)

	byDay := make(map[int]DayDetail)
	for _, d := range detail.Days {
		byDay[d.Date.Day()] = d
	}

	assert.Equal(t, StatusWeekend, byDay[1].Status)
	assert.Equal(t, "Sunday", byDay[1].DayOfWeek)
	assert.Equal(t, StatusFullDay, byDay[2].Status)
	assert.InDelta(t, 8.5, byDay[2].Hours, 1e-9)
	assert.Equal(t, StatusPartial, byDay[3].Status)
	assert.InDelta(t, 4.0, byDay[3].Hours, 1e-9)
	assert.Equal(t, StatusAbsent, byDay[4].Status, "zero span on a recorded day is absent")
	assert.Equal(t, StatusAbsent, byDay[5].Status, "no record on a weekday is absent")
	assert.Equal(t, StatusWeekend, byDay[7].Status)

	assert.InDelta(t, 12.5, detail.TotalHours, 1e-9)
	assert.Equal(t, 2, detail.DaysPresent)
}

func TestEmployeeMonthlyDetailEmptyMonth(t *testing.T) {
	svc := newTestService(nil, nil)

	detail, err := svc.EmployeeMonthlyDetail(context.Background(), 9, 2026, time.February, false)
	require.NoError(t, err)

	require.Len(t, detail.Days, 28)
	assert.Equal(t, "Unknown", detail.EmployeeName)
	assert.Zero(t, detail.TotalHours)
	assert.Zero(t, detail.DaysPresent)

	for _, d := range detail.Days {
		switch d.Date.Weekday() {
		case time.Saturday, time.Sunday:
			assert.Equal(t, StatusWeekend, d.Status, d.Date)
		default:
			assert.Equal(t, StatusAbsent, d.Status, d.Date)
		}
	}
}

func TestSpanHours(t *testing.T) {
	assert.InDelta(t, 8.5, SpanHours(tod(9, 0), tod(17, 30)), 1e-9)
	assert.InDelta(t, 4.0, SpanHours(tod(9, 0), tod(13, 0)), 1e-9)
	assert.Zero(t, SpanHours(nil, tod(13, 0)))
	assert.Zero(t, SpanHours(tod(9, 0), nil))
	assert.Zero(t, SpanHours(tod(14, 0), tod(9, 0)), "inverted spans clamp to zero")
}
