package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/quotient/pkg/adapters/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisLocker_LockUnlock(t *testing.T) {
	mr, client := newClient(t)
	locker := redis.NewLocker(client, "test:")
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, "resource1", 5*time.Second)
	require.NoError(t, err)
	require.NotNil(t, unlock)

	assert.True(t, mr.Exists("test:lock:resource1"), "Lock key should be set in Redis")

	require.NoError(t, unlock(ctx))
	assert.False(t, mr.Exists("test:lock:resource1"), "Lock key should be removed after unlock")
}

func TestRedisLocker_Contention(t *testing.T) {
	_, client := newClient(t)
	locker := redis.NewLocker(client, "test:")
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, "busy", 5*time.Second)
	require.NoError(t, err)

	waitCtx, cancel := context.WithTimeout(ctx, 150*time.Millisecond)
	defer cancel()
	_, err = locker.Lock(waitCtx, "busy", 5*time.Second)
	assert.ErrorIs(t, err, redis.ErrLockAcquire)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	require.NoError(t, unlock(ctx))

	unlock, err = locker.Lock(ctx, "busy", 5*time.Second)
	require.NoError(t, err)
	assert.NoError(t, unlock(ctx))
}

func TestRedisLocker_StaleUnlockKeepsNewOwner(t *testing.T) {
	mr, client := newClient(t)
	locker := redis.NewLocker(client, "test:")
	ctx := context.Background()

	stale, err := locker.Lock(ctx, "res", time.Second)
	require.NoError(t, err)

	mr.FastForward(2 * time.Second)

	fresh, err := locker.Lock(ctx, "res", 5*time.Second)
	require.NoError(t, err)

	require.NoError(t, stale(ctx))
	assert.True(t, mr.Exists("test:lock:res"), "Stale unlock must not release the new owner's lock")

	assert.NoError(t, fresh(ctx))
}
