package auth

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuardOpensUntilThreshold(t *testing.T) {
	guard := NewLockoutGuard(5, 15*time.Minute)

	for i := 0; i < 4; i++ {
		guard.RecordFailure()
		assert.False(t, guard.IsLockedOut(), "attempt %d should not lock", i+1)
	}

	guard.RecordFailure()
	assert.True(t, guard.IsLockedOut(), "5th failure locks")

	minutes := guard.MinutesRemaining()
	assert.GreaterOrEqual(t, minutes, int64(0))
	assert.LessOrEqual(t, minutes, int64(15))
}

func TestGuardAutoResetsAfterExpiry(t *testing.T) {
	guard := NewLockoutGuard(2, 20*time.Millisecond)

	guard.RecordFailure()
	guard.RecordFailure()
	require.True(t, guard.IsLockedOut())

	time.Sleep(30 * time.Millisecond)

	assert.False(t, guard.IsLockedOut(), "expired lockout reopens on the next check")
	assert.Zero(t, guard.MinutesRemaining())

	// the reset also cleared the counter: one more failure must not re-lock
	guard.RecordFailure()
	assert.False(t, guard.IsLockedOut())
}

func TestGuardResetClearsEverything(t *testing.T) {
	guard := NewLockoutGuard(2, 15*time.Minute)

	guard.RecordFailure()
	guard.RecordFailure()
	require.True(t, guard.IsLockedOut())

	guard.Reset()
	assert.False(t, guard.IsLockedOut())
	assert.Zero(t, guard.MinutesRemaining())
}

func TestGuardConcurrentFailures(t *testing.T) {
	guard := NewLockoutGuard(100, 15*time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 99; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			guard.RecordFailure()
		}()
	}
	wg.Wait()

	assert.False(t, guard.IsLockedOut())
	guard.RecordFailure()
	assert.True(t, guard.IsLockedOut(), "no failure increment may be lost")
}
