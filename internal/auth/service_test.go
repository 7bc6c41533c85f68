package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	return Config{
		JWTSecret:         "test-secret",
		TokenTTL:          time.Hour,
		AdminUsername:     "admin",
		AdminPasswordHash: hash,
	}
}

func TestLoginSuccess(t *testing.T) {
	config := testConfig(t)
	svc := NewService(config, NewLockoutGuard(DefaultMaxAttempts, DefaultLockoutDuration))

	token, err := svc.Login("admin", "correct horse")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(config.JWTSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)

	assert.True(t, svc.IsAuthenticated(token))
}

func TestLoginWrongCredentials(t *testing.T) {
	svc := NewService(testConfig(t), NewLockoutGuard(DefaultMaxAttempts, DefaultLockoutDuration))

	_, err := svc.Login("admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login("intruder", "correct horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginLocksAfterFiveFailures(t *testing.T) {
	svc := NewService(testConfig(t), NewLockoutGuard(DefaultMaxAttempts, DefaultLockoutDuration))

	for i := 0; i < 5; i++ {
		_, err := svc.Login("admin", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	}

	// 6th attempt is rejected even with the right password
	_, err := svc.Login("admin", "correct horse")
	assert.ErrorIs(t, err, ErrLockedOut)
	assert.LessOrEqual(t, svc.LockoutMinutesRemaining(), int64(15))
}

func TestLoginLockoutExpires(t *testing.T) {
	svc := NewService(testConfig(t), NewLockoutGuard(2, 20*time.Millisecond))

	_, _ = svc.Login("admin", "wrong")
	_, _ = svc.Login("admin", "wrong")
	_, err := svc.Login("admin", "correct horse")
	require.ErrorIs(t, err, ErrLockedOut)

	time.Sleep(30 * time.Millisecond)

	token, err := svc.Login("admin", "correct horse")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestLoginSuccessResetsCounter(t *testing.T) {
	svc := NewService(testConfig(t), NewLockoutGuard(DefaultMaxAttempts, DefaultLockoutDuration))

	for i := 0; i < 4; i++ {
		_, _ = svc.Login("admin", "wrong")
	}
	_, err := svc.Login("admin", "correct horse")
	require.NoError(t, err)

	// counter restarted: four more failures still do not lock
	for i := 0; i < 4; i++ {
		_, err = svc.Login("admin", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	}
}

func TestIsAuthenticated(t *testing.T) {
	svc := NewService(testConfig(t), NewLockoutGuard(DefaultMaxAttempts, DefaultLockoutDuration))

	assert.False(t, svc.IsAuthenticated(""))
	assert.False(t, svc.IsAuthenticated("garbage"))

	other := Config{JWTSecret: "other-secret", TokenTTL: time.Hour}
	foreign, err := GenerateToken(other, "admin")
	require.NoError(t, err)
	assert.False(t, svc.IsAuthenticated(foreign), "token signed with another secret is rejected")
}

func TestValidateTokenExpired(t *testing.T) {
	config := testConfig(t)
	config.TokenTTL = -time.Minute

	token, err := GenerateToken(config, "admin")
	require.NoError(t, err)

	_, err = ValidateToken(config.JWTSecret, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
