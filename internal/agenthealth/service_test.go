package agenthealth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	healths map[string]Health
}

func newMemStore() *memStore {
	return &memStore{healths: make(map[string]Health)}
}

func (m *memStore) Upsert(_ context.Context, h Health) error {
	m.healths[h.SiteID] = h
	return nil
}

func (m *memStore) ListAll(_ context.Context) ([]Health, error) {
	var out []Health
	for _, h := range m.healths {
		out = append(out, h)
	}
	return out, nil
}

func TestRecordHeartbeatUpserts(t *testing.T) {
	store := newMemStore()
	svc := NewService(store)
	first := time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)
	second := first.Add(5 * time.Minute)

	require.NoError(t, svc.RecordHeartbeat(context.Background(), "site-1", first))
	require.NoError(t, svc.RecordHeartbeat(context.Background(), "site-1", second))
	require.NoError(t, svc.RecordHeartbeat(context.Background(), "site-2", first))

	healths, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, healths, 2)
	assert.Equal(t, second, store.healths["site-1"].LastHeartbeat)
}

func TestRecordHeartbeatMissingSiteID(t *testing.T) {
	svc := NewService(newMemStore())
	err := svc.RecordHeartbeat(context.Background(), "", time.Now())
	assert.ErrorIs(t, err, ErrMissingSiteID)
}

func TestAlive(t *testing.T) {
	now := time.Date(2026, time.March, 2, 12, 0, 0, 0, time.UTC)
	staleAfter := 10 * time.Minute

	fresh := Health{SiteID: "site-1", LastHeartbeat: now.Add(-9 * time.Minute)}
	stale := Health{SiteID: "site-2", LastHeartbeat: now.Add(-11 * time.Minute)}
	boundary := Health{SiteID: "site-3", LastHeartbeat: now.Add(-staleAfter)}

	assert.True(t, fresh.Alive(now, staleAfter))
	assert.False(t, stale.Alive(now, staleAfter))
	assert.True(t, boundary.Alive(now, staleAfter))
}
