package downtime

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

func (s *PGStore) Insert(ctx context.Context, w Window) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO agent_downtimes (id, downtime_start, downtime_end, created_at)
		VALUES ($1, $2, $3, $4)`,
		w.ID,
		pgtype.Timestamp{Time: w.DowntimeStart, Valid: true},
		pgtype.Timestamp{Time: w.DowntimeEnd, Valid: true},
		pgtype.Timestamp{Time: w.CreatedAt, Valid: true},
	)
	return err
}

func (s *PGStore) FindByStartRange(ctx context.Context, from, to time.Time) ([]Window, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, downtime_start, downtime_end, created_at
		FROM agent_downtimes
		WHERE downtime_start >= $1 AND downtime_start < $2
		ORDER BY downtime_start`,
		pgtype.Timestamp{Time: from, Valid: true},
		pgtype.Timestamp{Time: to, Valid: true})
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var windows []Window
	for rows.Next() {
		var (
			w                     Window
			start, end, createdAt pgtype.Timestamp
		)
		if err := rows.Scan(&w.ID, &start, &end, &createdAt); err != nil {
			return nil, err
		}
		w.DowntimeStart = start.Time
		w.DowntimeEnd = end.Time
		w.CreatedAt = createdAt.Time
		windows = append(windows, w)
	}
	return windows, rows.Err()
}
