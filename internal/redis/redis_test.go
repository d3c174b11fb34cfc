package redis

import (
	"context"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopLimiterAlwaysAllows(t *testing.T) {
	var l NoopLimiter
	ctx := context.Background()
	for i := 0; i < 100; i++ {
		assert.True(t, l.Hit(ctx, "a@example.com"))
	}
}

func TestLoginLimiter_Redis(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDRESS")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDRESS not set")
	}
	ctx := context.Background()
	rdb, err := NewClient(ctx, addr, "", "")
	require.NoError(t, err)
	defer rdb.Close()

	l := NewLoginLimiter(rdb, 3, time.Minute)
	key := uuid.NewString() + "@example.com"
	defer l.Reset(ctx, key)

	for i := 0; i < 3; i++ {
		assert.True(t, l.Hit(ctx, key), "attempt %d", i+1)
	}
	assert.False(t, l.Hit(ctx, key))

	ttl, err := rdb.TTL(ctx, keyPrefix+key).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	l.Reset(ctx, key)
	assert.True(t, l.Hit(ctx, key))
}

func TestLoginLimiter_RedisConcurrentHits(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDRESS")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDRESS not set")
	}
	ctx := context.Background()
	rdb, err := NewClient(ctx, addr, "", "")
	require.NoError(t, err)
	defer rdb.Close()

	l := NewLoginLimiter(rdb, 5, time.Minute)
	key := uuid.NewString() + "@example.com"
	defer l.Reset(ctx, key)

	var allowed atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.Hit(ctx, key) {
				allowed.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(5), allowed.Load())
}

func TestLoginLimiter_FailsOpen(t *testing.T) {
	// nothing listens on this port
	rdb := newUnreachableClient()
	defer rdb.Close()

	l := NewLoginLimiter(rdb, 1, time.Minute)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	assert.True(t, l.Hit(ctx, "x@example.com"))
	assert.True(t, l.Hit(ctx, "x@example.com"))
}

func newUnreachableClient() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
}
