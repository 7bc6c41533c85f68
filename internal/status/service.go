package status

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Store is the live status collection, keyed by employee id. Upsert must be
// atomic per key, and MarkStaleAbsent must check staleness and flip presence
// in one atomic step so a concurrent upsert can never be overwritten by a
// decision made against a stale read.
type Store interface {
	Upsert(ctx context.Context, s EmployeeStatus) error
	ListAll(ctx context.Context) ([]EmployeeStatus, error)
	MarkStaleAbsent(ctx context.Context, cutoff, now time.Time) (int, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// ApplyHeartbeat upserts the live status of every employee listed in a
// heartbeat batch. Observations with a bad employee id are skipped, the rest
// of the batch still lands. Employees missing from the batch are left alone;
// the stale sweep is what flips them to absent. Returns how many observations
// were applied and how many were rejected.
func (s *Service) ApplyHeartbeat(ctx context.Context, observedAt time.Time, observations []Observation) (accepted, rejected int, err error) {
	for _, obs := range observations {
		if obs.EmployeeID <= 0 {
			slog.Warn("Rejected heartbeat observation", "employee_id", obs.EmployeeID)
			rejected++
			continue
		}
		err := s.store.Upsert(ctx, EmployeeStatus{
			EmployeeID:   obs.EmployeeID,
			EmployeeName: obs.EmployeeName,
			FakeName:     obs.FakeName,
			IsPresent:    obs.IsPresent,
			CurrentArea:  obs.Area,
			LastSeen:     observedAt,
			UpdatedAt:    observedAt,
		})
		if err != nil {
			return accepted, rejected, fmt.Errorf("upsert status for employee %d: %w", obs.EmployeeID, err)
		}
		accepted++
	}
	return accepted, rejected, nil
}

func (s *Service) ListAll(ctx context.Context) ([]EmployeeStatus, error) {
	statuses, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list statuses: %w", err)
	}
	return statuses, nil
}

// SweepStale marks every employee whose last-seen predates now-staleAfter as
// absent. Rows already absent or still fresh are untouched. The staleness
// check and the flip happen in one store call, so a heartbeat landing
// mid-sweep refreshes last-seen before the check sees it and the row is
// left alone.
func (s *Service) SweepStale(ctx context.Context, now time.Time, staleAfter time.Duration) (int, error) {
	swept, err := s.store.MarkStaleAbsent(ctx, now.Add(-staleAfter), now)
	if err != nil {
		return 0, fmt.Errorf("mark stale statuses absent: %w", err)
	}
	return swept, nil
}

// RunSweeper flips stale entries to absent on a fixed interval until the
// context is cancelled.
func (s *Service) RunSweeper(ctx context.Context, interval, staleAfter time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			swept, err := s.SweepStale(ctx, now, staleAfter)
			if err != nil {
				slog.Error("Stale status sweep failed", "error", err)
				continue
			}
			if swept > 0 {
				slog.Info("Marked stale employees absent", "count", swept)
			}
		}
	}
}
