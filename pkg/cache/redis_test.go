package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	c, err := NewRedisCache(context.Background(), RedisConfig{Addr: mr.Addr()})
	if err != nil {
		t.Fatalf("NewRedisCache() error: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestRedisCache(t *testing.T) {
	ctx := context.Background()
	c, mr := newRedis(t)

	if _, hit, err := c.Get(ctx, "missing"); hit || err != nil {
		t.Errorf("Get(missing) = %v, %v", hit, err)
	}
	if err := c.Set(ctx, "layout:abc", []byte(`{"a":{"x":1}}`), time.Hour); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if !mr.Exists("schemaview:layout:abc") {
		t.Error("key not stored under default prefix")
	}
	data, hit, err := c.Get(ctx, "layout:abc")
	if err != nil || !hit || string(data) != `{"a":{"x":1}}` {
		t.Errorf("Get() = %q, %v, %v", data, hit, err)
	}

	mr.FastForward(2 * time.Hour)
	if _, hit, _ := c.Get(ctx, "layout:abc"); hit {
		t.Error("entry survived its ttl")
	}

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete() error: %v", err)
	}
	if mr.Exists("schemaview:k") {
		t.Error("Delete() kept the key")
	}
}

func TestRedisCache_Prefix(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatal(err)
	}
	defer mr.Close()
	c := NewRedisCacheFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "tenant:")
	defer c.Close()

	if err := c.Set(context.Background(), "k", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	if !mr.Exists("tenant:k") {
		t.Error("custom prefix not applied")
	}
}

func TestRedisCache_Unavailable(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatal(err)
	}
	addr := mr.Addr()
	mr.Close()

	if _, err := NewRedisCache(context.Background(), RedisConfig{Addr: addr}); !errors.Is(err, ErrUnavailable) {
		t.Errorf("NewRedisCache(closed) error = %v, want ErrUnavailable", err)
	}
}

func TestRedisCache_RetriesTransientErrors(t *testing.T) {
	retryDelay = time.Millisecond
	defer func() { retryDelay = 200 * time.Millisecond }()

	c, mr := newRedis(t)
	mr.SetError("LOADING server is loading")
	_, _, err := c.Get(context.Background(), "k")
	if !errors.Is(err, ErrUnavailable) || !IsRetryable(err) {
		t.Errorf("Get() error = %v, want retryable ErrUnavailable", err)
	}

	mr.SetError("")
	if _, _, err := c.Get(context.Background(), "k"); err != nil {
		t.Errorf("Get() after recovery error = %v", err)
	}
}
