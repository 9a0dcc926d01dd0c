package helper

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrLockHeld = errors.New("lock is held by another instance")

// RedisLocker lets only one app instance run a given gocron job at a time.
type RedisLocker struct {
	Client *redis.Client
	Prefix string
	TTL    time.Duration
}

func NewRedisLocker(client *redis.Client) *RedisLocker {
	return &RedisLocker{Client: client, Prefix: "cron_lock:", TTL: 10 * time.Minute}
}

func (l *RedisLocker) Lock(ctx context.Context, key string) (gocron.Lock, error) {
	owner := uuid.NewString()
	k := l.Prefix + key
	ok, err := l.Client.SetNX(ctx, k, owner, l.TTL).Result()
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", k, err)
	}
	if !ok {
		return nil, ErrLockHeld
	}
	return &redisLock{client: l.Client, key: k, owner: owner}, nil
}

type redisLock struct {
	client *redis.Client
	key    string
	owner  string
}

// Unlock only deletes the key while this owner still holds it.
func (l *redisLock) Unlock(ctx context.Context) error {
	val, err := l.client.Get(ctx, l.key).Result()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		return err
	}
	if val != l.owner {
		return nil
	}
	return l.client.Del(ctx, l.key).Err()
}
