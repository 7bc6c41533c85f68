package status

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PGStore struct {
	pool *pgxpool.Pool
}

func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool}
}

func (s *PGStore) Upsert(ctx context.Context, st EmployeeStatus) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO current_status (
			employee_id, employee_name, fake_name, is_present,
			current_area, last_seen, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (employee_id) DO UPDATE SET
			employee_name = EXCLUDED.employee_name,
			fake_name     = EXCLUDED.fake_name,
			is_present    = EXCLUDED.is_present,
			current_area  = EXCLUDED.current_area,
			last_seen     = EXCLUDED.last_seen,
			updated_at    = EXCLUDED.updated_at`,
		st.EmployeeID, st.EmployeeName, st.FakeName, st.IsPresent,
		st.CurrentArea,
		pgtype.Timestamp{Time: st.LastSeen, Valid: true},
		pgtype.Timestamp{Time: st.UpdatedAt, Valid: true},
	)
	return err
}

func (s *PGStore) ListAll(ctx context.Context) ([]EmployeeStatus, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT employee_id, employee_name, fake_name, is_present,
		       current_area, last_seen, updated_at
		FROM current_status
		ORDER BY employee_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var statuses []EmployeeStatus
	for rows.Next() {
		var (
			st                  EmployeeStatus
			lastSeen, updatedAt pgtype.Timestamp
		)
		if err := rows.Scan(
			&st.EmployeeID, &st.EmployeeName, &st.FakeName, &st.IsPresent,
			&st.CurrentArea, &lastSeen, &updatedAt,
		); err != nil {
			return nil, err
		}
		st.LastSeen = lastSeen.Time
		st.UpdatedAt = updatedAt.Time
		statuses = append(statuses, st)
	}
	return statuses, rows.Err()
}

// MarkStaleAbsent flips every present row whose last-seen predates the
// cutoff. The WHERE clause is the staleness check, so the decision and the
// write are one statement and a concurrent heartbeat upsert cannot be undone
// by a stale read.
func (s *PGStore) MarkStaleAbsent(ctx context.Context, cutoff, now time.Time) (int, error) {
	tag, err := s.pool.Exec(ctx, `
		UPDATE current_status
		SET is_present = false, updated_at = $2
		WHERE is_present AND last_seen < $1`,
		pgtype.Timestamp{Time: cutoff, Valid: true},
		pgtype.Timestamp{Time: now, Valid: true})
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}
