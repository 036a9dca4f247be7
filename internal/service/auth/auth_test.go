package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nhongkham198/pinCustomer/internal/domain/types"
	"github.com/Nhongkham198/pinCustomer/pkg/logger"
)

func newGate(t *testing.T, ttl time.Duration) *GateService {
	t.Helper()
	return NewGateService("4871", "test-secret", ttl, logger.InitLogger("test", logger.LevelError))
}

func TestGate_UnlockAndVerify(t *testing.T) {
	gate := newGate(t, time.Hour)

	token, expiresAt, err := gate.Unlock(context.Background(), "4871")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	assert.NoError(t, gate.Verify(context.Background(), token))
}

func TestGate_WrongPin(t *testing.T) {
	gate := newGate(t, time.Hour)

	_, _, err := gate.Unlock(context.Background(), "0000")
	assert.ErrorIs(t, err, types.ErrInvalidPin)
}

func TestGate_BadToken(t *testing.T) {
	gate := newGate(t, time.Hour)

	assert.ErrorIs(t, gate.Verify(context.Background(), "not-a-token"), types.ErrInvalidToken)

	// Token signed with a different secret must fail.
	other := NewGateService("4871", "other-secret", time.Hour, logger.InitLogger("test", logger.LevelError))
	token, _, err := other.Unlock(context.Background(), "4871")
	require.NoError(t, err)
	assert.ErrorIs(t, gate.Verify(context.Background(), token), types.ErrInvalidToken)
}

func TestGate_ExpiredToken(t *testing.T) {
	gate := newGate(t, -time.Minute)

	token, _, err := gate.Unlock(context.Background(), "4871")
	require.NoError(t, err)
	assert.ErrorIs(t, gate.Verify(context.Background(), token), types.ErrInvalidToken)
}
