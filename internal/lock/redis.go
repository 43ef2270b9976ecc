package lock

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	redisKeyPrefix = "lock:"
	defaultTTL     = 5 * time.Second
	defaultRetry   = 50 * time.Millisecond
	defaultWait    = 3 * time.Second
)

// only the holder's token may delete the key
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

// Redis takes SETNX locks so every service instance sharing the database
// also shares the lock. A holder that dies releases after TTL.
type Redis struct {
	client *redis.Client
	logger *zap.Logger
	TTL    time.Duration
	Retry  time.Duration
	Wait   time.Duration
}

func NewRedis(client *redis.Client, logger *zap.Logger) *Redis {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Redis{
		client: client,
		logger: logger,
		TTL:    defaultTTL,
		Retry:  defaultRetry,
		Wait:   defaultWait,
	}
}

// Acquire retries until the key is free, ctx ends or Wait elapses, in which
// case it returns ErrBusy.
func (r *Redis) Acquire(ctx context.Context, key string) (func(), error) {
	k := redisKeyPrefix + key
	token := uuid.New().String()
	deadline := time.Now().Add(r.Wait)

	for {
		ok, err := r.client.SetNX(ctx, k, token, r.TTL).Result()
		if err != nil {
			r.logger.Error("failed to acquire lock", zap.String("key", k), zap.Error(err))
			return nil, err
		}
		if ok {
			break
		}
		if time.Now().After(deadline) {
			return nil, ErrBusy
		}

		t := time.NewTimer(r.Retry)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil, ctx.Err()
		case <-t.C:
		}
	}

	return func() {
		// the caller's ctx may already be done
		if err := releaseScript.Run(context.Background(), r.client, []string{k}, token).Err(); err != nil {
			r.logger.Warn("failed to release lock", zap.String("key", k), zap.Error(err))
		}
	}, nil
}
