package cache

//go:generate go run go.uber.org/mock/mockgen -source=./lock.go -destination=./mocks/lock_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hotel/infras/otel"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const lockKeyPrefix = "lock:"

var ErrLockNotAcquired = errors.New("lock is held by another owner")

// releaseScript deletes the key only while it still holds the caller's token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Locker is a single-instance redis mutex with expiry.
type Locker interface {
	Lock(ctx context.Context, key string, ttl time.Duration) (token string, err error)
	Unlock(ctx context.Context, key, token string) error
}

type redisLocker struct {
	client *redis.Client
	otel   otel.Otel
}

func NewRedisLocker(client *redis.Client, ot otel.Otel) Locker {
	return &redisLocker{
		client: client,
		otel:   ot,
	}
}

func LockKey(parts ...string) string {
	return lockKeyPrefix + strings.Join(parts, ":")
}

func (l *redisLocker) Lock(ctx context.Context, key string, ttl time.Duration) (token string, err error) {
	ctx, scope := l.otel.NewScope(ctx, otelScopeName, otelScopeName+".Lock")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(otelCacheKeyAttribute, key)

	token = uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return "", fmt.Errorf("failed to acquire lock %s: %w", key, err)
	}

	if !ok {
		return "", ErrLockNotAcquired
	}

	return token, nil
}

func (l *redisLocker) Unlock(ctx context.Context, key, token string) (err error) {
	ctx, scope := l.otel.NewScope(ctx, otelScopeName, otelScopeName+".Unlock")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(otelCacheKeyAttribute, key)

	if err = releaseScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil {
		return fmt.Errorf("failed to release lock %s: %w", key, err)
	}

	return nil
}
