package helper

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client, mr
}

func TestRedisLockerIsExclusive(t *testing.T) {
	client, mr := setupTestRedis(t)
	ctx := context.Background()
	locker := NewRedisLocker(client)

	lock, err := locker.Lock(ctx, "promote-released")
	require.NoError(t, err)
	assert.True(t, mr.Exists("cron_lock:promote-released"))

	_, err = locker.Lock(ctx, "promote-released")
	assert.ErrorIs(t, err, ErrLockHeld)

	other, err := locker.Lock(ctx, "end-showings")
	require.NoError(t, err)
	require.NoError(t, other.Unlock(ctx))

	require.NoError(t, lock.Unlock(ctx))
	assert.False(t, mr.Exists("cron_lock:promote-released"))
	_, err = locker.Lock(ctx, "promote-released")
	assert.NoError(t, err)
}

func TestRedisLockExpires(t *testing.T) {
	client, mr := setupTestRedis(t)
	ctx := context.Background()
	locker := NewRedisLocker(client)
	locker.TTL = time.Minute

	stale, err := locker.Lock(ctx, "end-showings")
	require.NoError(t, err)
	mr.FastForward(2 * time.Minute)

	fresh, err := locker.Lock(ctx, "end-showings")
	require.NoError(t, err)
	// the stale holder must not release the new owner's lock
	require.NoError(t, stale.Unlock(ctx))
	assert.True(t, mr.Exists("cron_lock:end-showings"))
	require.NoError(t, fresh.Unlock(ctx))
}
