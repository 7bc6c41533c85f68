package agenthealth

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PGStore struct {
	pool *pgxpool.Pool
}

func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool}
}

func (s *PGStore) Upsert(ctx context.Context, h Health) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO agent_health (site_id, last_heartbeat, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (site_id) DO UPDATE SET
			last_heartbeat = EXCLUDED.last_heartbeat,
			updated_at     = EXCLUDED.updated_at`,
		h.SiteID,
		pgtype.Timestamp{Time: h.LastHeartbeat, Valid: true},
		pgtype.Timestamp{Time: h.UpdatedAt, Valid: true},
	)
	return err
}

func (s *PGStore) ListAll(ctx context.Context) ([]Health, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT site_id, last_heartbeat, updated_at
		FROM agent_health
		ORDER BY site_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var healths []Health
	for rows.Next() {
		var (
			h                        Health
			lastHeartbeat, updatedAt pgtype.Timestamp
		)
		if err := rows.Scan(&h.SiteID, &lastHeartbeat, &updatedAt); err != nil {
			return nil, err
		}
		h.LastHeartbeat = lastHeartbeat.Time
		h.UpdatedAt = updatedAt.Time
		healths = append(healths, h)
	}
	return healths, rows.Err()
}
