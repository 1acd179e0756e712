package redis

import (
	"context"
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

const lockPrefix = "lastmile:lock:"

// releaseScript deletes the key only while it still holds our token, so an
// expired lock taken over by someone else is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Locker implements ports.Locker with SET NX PX. Every key expires after ttl
// so a crashed holder never blocks a key for longer than that.
type Locker struct {
	client  *redis.Client
	ttl     time.Duration
	timeout time.Duration
	retry   time.Duration
	logger  logrus.FieldLogger
}

func NewLocker(client *redis.Client, ttl, timeout time.Duration, logger logrus.FieldLogger) *Locker {
	return &Locker{
		client:  client,
		ttl:     ttl,
		timeout: timeout,
		retry:   10 * time.Millisecond,
		logger:  logger.WithField("component", "redis_locker"),
	}
}

func (l *Locker) Lock(ctx context.Context, keys ...string) (func(), error) {
	if _, ok := ctx.Deadline(); !ok && l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	token := kernel.NewUUID().String()
	held := make([]string, 0, len(keys))
	release := func() {
		// Release must work after the caller's context is gone.
		releaseCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		for i := len(held) - 1; i >= 0; i-- {
			if err := releaseScript.Run(releaseCtx, l.client, []string{held[i]}, token).Err(); err != nil {
				l.logger.WithError(err).WithField("key", held[i]).Warn("failed to release lock")
			}
		}
	}

	seen := make(map[string]bool, len(keys))
	for _, key := range keys {
		if seen[key] {
			continue
		}
		seen[key] = true

		redisKey := lockPrefix + key
		if err := l.acquire(ctx, redisKey, token); err != nil {
			release()
			return nil, errs.NewRuleViolationErrorWithCause(errs.ErrConcurrentModification, key, "lock wait expired", err)
		}
		held = append(held, redisKey)
	}

	var released bool
	return func() {
		if released {
			return
		}
		released = true
		release()
	}, nil
}

func (l *Locker) acquire(ctx context.Context, key, token string) error {
	ticker := time.NewTicker(l.retry)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil && ctx.Err() == nil {
			return err
		}
		if ok {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
