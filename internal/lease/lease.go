package lease

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"service-rider-dispatch/internal/logx"
)

// ReleaseFunc gives a held lease back.
type ReleaseFunc func(ctx context.Context) error

// Locker hands out short exclusive leases keyed by name.
type Locker interface {
	// Acquire returns ok=false without error when another holder owns key.
	Acquire(ctx context.Context, key string, ttl time.Duration) (ReleaseFunc, bool, error)
}

// releaseScript deletes the key only while it still carries our token, so an
// expired lease re-acquired by another replica is never dropped.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Redis is a Locker backed by SET NX PX.
type Redis struct {
	client redis.UniversalClient
	prefix string
	logger logx.Logger
}

// NewRedis wraps an existing client. Keys are stored under prefix.
func NewRedis(client redis.UniversalClient, prefix string, logger logx.Logger) *Redis {
	if logger == nil {
		logger = logx.Nop()
	}
	return &Redis{client: client, prefix: prefix, logger: logger}
}

// Acquire tries to take key for ttl.
func (r *Redis) Acquire(ctx context.Context, key string, ttl time.Duration) (ReleaseFunc, bool, error) {
	if ttl <= 0 {
		return nil, false, errors.New("lease ttl must be positive")
	}
	full := r.prefix + key
	token := uuid.NewString()

	ok, err := r.client.SetNX(ctx, full, token, ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("acquire lease %q: %w", full, err)
	}
	if !ok {
		return nil, false, nil
	}

	release := func(ctx context.Context) error {
		n, err := releaseScript.Run(ctx, r.client, []string{full}, token).Int()
		if err != nil {
			return fmt.Errorf("release lease %q: %w", full, err)
		}
		if n == 0 {
			r.logger.Warn("lease expired before release", logx.String("key", full))
		}
		return nil
	}
	return release, true, nil
}

// Nop grants every request. Used when Redis is not configured and a single
// worker replica runs.
type Nop struct{}

// Acquire always succeeds.
func (Nop) Acquire(context.Context, string, time.Duration) (ReleaseFunc, bool, error) {
	return func(context.Context) error { return nil }, true, nil
}

// Connect opens a client and checks it answers PING.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return client, nil
}
