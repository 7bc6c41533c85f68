package auth

import (
	"log/slog"
	"sync"
	"time"
)

const (
	DefaultMaxAttempts     = 5
	DefaultLockoutDuration = 15 * time.Minute
)

// LockoutGuard gates the admin login path: after maxAttempts consecutive
// failures the guard locks for lockoutDuration, then reopens on the next
// check. The counter and expiry always change together under one mutex so a
// reset can never interleave with a failure that is about to lock.
type LockoutGuard struct {
	mu              sync.Mutex
	maxAttempts     int
	lockoutDuration time.Duration
	failedAttempts  int
	lockedUntil     time.Time
}

func NewLockoutGuard(maxAttempts int, lockoutDuration time.Duration) *LockoutGuard {
	return &LockoutGuard{
		maxAttempts:     maxAttempts,
		lockoutDuration: lockoutDuration,
	}
}

// IsLockedOut reports whether logins are currently rejected. An expired
// lockout resets the guard as a side effect.
func (g *LockoutGuard) IsLockedOut() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.lockedUntil.IsZero() {
		return false
	}
	if time.Now().Before(g.lockedUntil) {
		return true
	}

	g.resetLocked()
	return false
}

// MinutesRemaining returns whole minutes until the lockout expires, clamped
// to zero.
func (g *LockoutGuard) MinutesRemaining() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.lockedUntil.IsZero() {
		return 0
	}
	minutes := int64(time.Until(g.lockedUntil).Minutes())
	if minutes < 0 {
		return 0
	}
	return minutes
}

// RecordFailure counts one failed attempt, locking once the threshold is
// reached.
func (g *LockoutGuard) RecordFailure() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.failedAttempts++
	if g.failedAttempts >= g.maxAttempts {
		g.lockedUntil = time.Now().Add(g.lockoutDuration)
		slog.Warn("Login locked", "duration", g.lockoutDuration, "failed_attempts", g.failedAttempts)
	}
}

// Reset clears the failure count and any active lockout. Called on every
// successful authentication.
func (g *LockoutGuard) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.resetLocked()
}

func (g *LockoutGuard) resetLocked() {
	g.failedAttempts = 0
	g.lockedUntil = time.Time{}
}
