package downtime

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	windows []Window
}

func (m *memStore) Insert(_ context.Context, w Window) error {
	m.windows = append(m.windows, w)
	return nil
}

func (m *memStore) FindByStartRange(_ context.Context, from, to time.Time) ([]Window, error) {
	var out []Window
	for _, w := range m.windows {
		if !w.DowntimeStart.Before(from) && w.DowntimeStart.Before(to) {
			out = append(out, w)
		}
	}
	return out, nil
}

func TestRecordWindowStripsUTCMarkers(t *testing.T) {
	store := &memStore{}
	svc := NewService(store)

	tests := []struct {
		name     string
		startISO string
		endISO   string
	}{
		{"zulu suffix", "2026-03-02T10:15:00Z", "2026-03-02T10:45:00Z"},
		{"explicit offset", "2026-03-02T10:15:00+00:00", "2026-03-02T10:45:00+00:00"},
		{"no marker", "2026-03-02T10:15:00", "2026-03-02T10:45:00"},
		{"fractional seconds", "2026-03-02T10:15:00.123456Z", "2026-03-02T10:45:00.5+00:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := svc.RecordWindow(context.Background(), tt.startISO, tt.endISO)
			require.NoError(t, err)

			// markers are stripped, never applied as offsets
			assert.Equal(t, 10, w.DowntimeStart.Hour())
			assert.Equal(t, 15, w.DowntimeStart.Minute())
			assert.Equal(t, 45, w.DowntimeEnd.Minute())
			assert.NotEmpty(t, w.ID)
		})
	}
}

func TestRecordWindowRejectsGarbage(t *testing.T) {
	svc := NewService(&memStore{})

	_, err := svc.RecordWindow(context.Background(), "not-a-timestamp", "2026-03-02T10:45:00")
	assert.ErrorIs(t, err, ErrInvalidWindow)

	_, err = svc.RecordWindow(context.Background(), "2026-03-02T10:15:00", "")
	assert.ErrorIs(t, err, ErrInvalidWindow)
}

func TestWindowsForDay(t *testing.T) {
	store := &memStore{}
	svc := NewService(store)

	_, err := svc.RecordWindow(context.Background(), "2026-03-02T00:00:00Z", "2026-03-02T00:10:00Z")
	require.NoError(t, err)
	_, err = svc.RecordWindow(context.Background(), "2026-03-02T23:59:00Z", "2026-03-03T00:05:00Z")
	require.NoError(t, err)
	_, err = svc.RecordWindow(context.Background(), "2026-03-03T00:00:00Z", "2026-03-03T00:30:00Z")
	require.NoError(t, err)

	windows, err := svc.WindowsForDay(context.Background(), time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, windows, 2, "day start is inclusive, next day start exclusive")

	windows, err = svc.WindowsForDay(context.Background(), time.Date(2026, time.March, 4, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Empty(t, windows)
}
