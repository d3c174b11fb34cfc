package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	DefaultMaxAttempts = 10
	DefaultWindow      = 15 * time.Minute
	keyPrefix          = "umqura:login:"
)

// NewClient connects and pings; the caller owns Close.
func NewClient(ctx context.Context, address, username, password string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     address,
		Username: username,
		Password: password,
		DB:       0,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", address, err)
	}
	return rdb, nil
}

// LoginLimiter throttles login attempts per key.
type LoginLimiter interface {
	// Hit counts an attempt for key and reports whether it is still within
	// the limit. It is called before the password is checked.
	Hit(ctx context.Context, key string) bool
	// Reset clears the counter after a successful login.
	Reset(ctx context.Context, key string)
}

// NoopLimiter always allows; used when Redis is not configured.
type NoopLimiter struct{}

func (NoopLimiter) Hit(context.Context, string) bool { return true }
func (NoopLimiter) Reset(context.Context, string)    {}

// hitScript increments the counter and starts the window on the first hit.
var hitScript = redis.NewScript(`
local n = redis.call("INCR", KEYS[1])
if n == 1 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return n
`)

type redisLimiter struct {
	rdb         *redis.Client
	maxAttempts int
	window      time.Duration
}

func NewLoginLimiter(rdb *redis.Client, maxAttempts int, window time.Duration) LoginLimiter {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	if window <= 0 {
		window = DefaultWindow
	}
	return &redisLimiter{rdb: rdb, maxAttempts: maxAttempts, window: window}
}

// Hit fails open on Redis errors.
func (l *redisLimiter) Hit(ctx context.Context, key string) bool {
	n, err := hitScript.Run(ctx, l.rdb, []string{keyPrefix + key}, l.window.Milliseconds()).Int64()
	if err != nil {
		log.Error().Err(err).Msg("login limiter increment failed")
		return true
	}
	return n <= int64(l.maxAttempts)
}

func (l *redisLimiter) Reset(ctx context.Context, key string) {
	if err := l.rdb.Del(ctx, keyPrefix+key).Err(); err != nil {
		log.Error().Err(err).Msg("login limiter reset failed")
	}
}
