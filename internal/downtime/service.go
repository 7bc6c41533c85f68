package downtime

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidWindow = errors.New("invalid downtime window")

// Window is one agent-reported interval during which the agent was not
// operating. Windows are append-only; every report produces a new row.
type Window struct {
	ID            string
	DowntimeStart time.Time
	DowntimeEnd   time.Time
	CreatedAt     time.Time
}

type Store interface {
	Insert(ctx context.Context, w Window) error
	FindByStartRange(ctx context.Context, from, to time.Time) ([]Window, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// RecordWindow stores one downtime window. Agents serialize timestamps with
// a UTC marker ("Z" or "+00:00") even though the values are site-local wall
// clock; the marker is stripped and the timestamp recorded verbatim, with no
// offset applied.
func (s *Service) RecordWindow(ctx context.Context, startISO, endISO string) (Window, error) {
	start, err := parseNaiveTimestamp(startISO)
	if err != nil {
		return Window{}, fmt.Errorf("%w: start %q: %v", ErrInvalidWindow, startISO, err)
	}
	end, err := parseNaiveTimestamp(endISO)
	if err != nil {
		return Window{}, fmt.Errorf("%w: end %q: %v", ErrInvalidWindow, endISO, err)
	}

	w := Window{
		ID:            uuid.NewString(),
		DowntimeStart: start,
		DowntimeEnd:   end,
		CreatedAt:     time.Now(),
	}
	if err := s.store.Insert(ctx, w); err != nil {
		return Window{}, fmt.Errorf("insert downtime window: %w", err)
	}
	return w, nil
}

// WindowsForDay returns every window whose start falls within
// [date 00:00, date+1 00:00).
func (s *Service) WindowsForDay(ctx context.Context, date time.Time) ([]Window, error) {
	startOfDay := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	endOfDay := startOfDay.AddDate(0, 0, 1)

	windows, err := s.store.FindByStartRange(ctx, startOfDay, endOfDay)
	if err != nil {
		return nil, fmt.Errorf("find downtime windows: %w", err)
	}
	return windows, nil
}

func parseNaiveTimestamp(s string) (time.Time, error) {
	trimmed := strings.TrimSuffix(strings.TrimSuffix(s, "Z"), "+00:00")

	for _, layout := range []string{
		"2006-01-02T15:04:05.999999999",
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
	} {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", s)
}
