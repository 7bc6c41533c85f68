package agenthealth

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var ErrMissingSiteID = errors.New("missing site id")

// Health is the raw heartbeat bookkeeping for one site. The tracker stores
// timestamps only; whether a site counts as alive is the reader's call.
type Health struct {
	SiteID        string
	LastHeartbeat time.Time
	UpdatedAt     time.Time
}

type Store interface {
	Upsert(ctx context.Context, h Health) error
	ListAll(ctx context.Context) ([]Health, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) RecordHeartbeat(ctx context.Context, siteID string, observedAt time.Time) error {
	if siteID == "" {
		return ErrMissingSiteID
	}
	err := s.store.Upsert(ctx, Health{
		SiteID:        siteID,
		LastHeartbeat: observedAt,
		UpdatedAt:     observedAt,
	})
	if err != nil {
		return fmt.Errorf("upsert agent health for site %s: %w", siteID, err)
	}
	return nil
}

func (s *Service) ListAll(ctx context.Context) ([]Health, error) {
	healths, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list agent health: %w", err)
	}
	return healths, nil
}

// Alive reports whether a heartbeat was seen within staleAfter of now.
func (h Health) Alive(now time.Time, staleAfter time.Duration) bool {
	return now.Sub(h.LastHeartbeat) <= staleAfter
}
