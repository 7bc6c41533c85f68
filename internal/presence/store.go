package presence

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStore persists daily records in the daily_presence table. The merge is a
// single INSERT ... ON CONFLICT statement, so concurrent merges for the same
// (employee, date) key serialize inside Postgres and never lose minutes.
type PGStore struct {
	pool *pgxpool.Pool
}

func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool}
}

const mergeSampleQuery = `
INSERT INTO daily_presence (
	employee_id, employee_name, fake_name, date,
	first_seen, last_seen, total_minutes, hours_present,
	created_at, updated_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $7::integer / 60.0, $8, $8)
ON CONFLICT (employee_id, date) DO UPDATE SET
	employee_name = EXCLUDED.employee_name,
	fake_name     = EXCLUDED.fake_name,
	first_seen    = LEAST(daily_presence.first_seen, EXCLUDED.first_seen),
	last_seen     = GREATEST(daily_presence.last_seen, EXCLUDED.last_seen),
	total_minutes = daily_presence.total_minutes + EXCLUDED.total_minutes,
	hours_present = (daily_presence.total_minutes + EXCLUDED.total_minutes) / 60.0,
	updated_at    = EXCLUDED.updated_at`

func (s *PGStore) MergeSample(ctx context.Context, sample Sample, now time.Time) error {
	_, err := s.pool.Exec(ctx, mergeSampleQuery,
		sample.EmployeeID,
		sample.EmployeeName,
		sample.FakeName,
		sample.Date,
		timeOfDayToPg(&sample.FirstSeen),
		timeOfDayToPg(&sample.LastSeen),
		sample.MinutesOnline,
		pgtype.Timestamp{Time: now, Valid: true},
	)
	return err
}

const selectDailyColumns = `
SELECT employee_id, employee_name, fake_name, date,
       first_seen, last_seen, total_minutes, hours_present,
       created_at, updated_at
FROM daily_presence`

func (s *PGStore) FindByDate(ctx context.Context, date time.Time) ([]DailyRecord, error) {
	rows, err := s.pool.Query(ctx, selectDailyColumns+` WHERE date = $1 ORDER BY employee_id`, date)
	if err != nil {
		return nil, err
	}
	return scanDailyRecords(rows)
}

func (s *PGStore) FindByDateRange(ctx context.Context, from, to time.Time) ([]DailyRecord, error) {
	rows, err := s.pool.Query(ctx,
		selectDailyColumns+` WHERE date BETWEEN $1 AND $2 ORDER BY employee_id, date`, from, to)
	if err != nil {
		return nil, err
	}
	return scanDailyRecords(rows)
}

func (s *PGStore) FindByEmployeeAndDateRange(ctx context.Context, employeeID int, from, to time.Time) ([]DailyRecord, error) {
	rows, err := s.pool.Query(ctx,
		selectDailyColumns+` WHERE employee_id = $1 AND date BETWEEN $2 AND $3 ORDER BY date`,
		employeeID, from, to)
	if err != nil {
		return nil, err
	}
	return scanDailyRecords(rows)
}

func scanDailyRecords(rows pgx.Rows) ([]DailyRecord, error) {
	defer rows.Close()

	var records []DailyRecord
	for rows.Next() {
		var (
			rec                  DailyRecord
			firstSeen, lastSeen  pgtype.Time
			createdAt, updatedAt pgtype.Timestamp
		)
		if err := rows.Scan(
			&rec.EmployeeID, &rec.EmployeeName, &rec.FakeName, &rec.Date,
			&firstSeen, &lastSeen, &rec.TotalMinutes, &rec.HoursPresent,
			&createdAt, &updatedAt,
		); err != nil {
			return nil, err
		}
		rec.FirstSeen = timeOfDayFromPg(firstSeen)
		rec.LastSeen = timeOfDayFromPg(lastSeen)
		rec.CreatedAt = createdAt.Time
		rec.UpdatedAt = updatedAt.Time
		records = append(records, rec)
	}
	return records, rows.Err()
}

func timeOfDayToPg(t *TimeOfDay) pgtype.Time {
	if t == nil {
		return pgtype.Time{}
	}
	return pgtype.Time{
		Microseconds: int64(t.TotalMinutes()) * 60 * 1_000_000,
		Valid:        true,
	}
}

func timeOfDayFromPg(t pgtype.Time) *TimeOfDay {
	if !t.Valid {
		return nil
	}
	totalMinutes := int(t.Microseconds / 60_000_000)
	return &TimeOfDay{Hour: totalMinutes / 60, Minute: totalMinutes % 60}
}
