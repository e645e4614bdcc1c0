package sessioncache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newRedisCache(t *testing.T, ttl time.Duration) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
		mr.Close()
	})
	return NewRedis(client, "facemark:session", ttl), mr
}

func TestRedisRoundTrip(t *testing.T) {
	cache, _ := newRedisCache(t, 0)
	ctx := context.Background()

	if _, err := cache.Load(ctx); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty on fresh cache, got %v", err)
	}

	if err := cache.Save(ctx, testEntry()); err != nil {
		t.Fatalf("save error: %v", err)
	}
	got, err := cache.Load(ctx)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if got != testEntry() {
		t.Fatalf("unexpected entry: %+v", got)
	}

	if err := cache.Clear(ctx); err != nil {
		t.Fatalf("clear error: %v", err)
	}
	if _, err := cache.Load(ctx); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty after clear, got %v", err)
	}
	if err := cache.Clear(ctx); err != nil {
		t.Fatalf("clearing an empty cache must not error, got %v", err)
	}
}

func TestRedisEntryExpires(t *testing.T) {
	cache, mr := newRedisCache(t, time.Hour)
	ctx := context.Background()

	if err := cache.Save(ctx, testEntry()); err != nil {
		t.Fatalf("save error: %v", err)
	}
	mr.FastForward(2 * time.Hour)

	if _, err := cache.Load(ctx); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty after ttl, got %v", err)
	}
}

func TestRedisCorruptEntry(t *testing.T) {
	cache, mr := newRedisCache(t, 0)

	if err := mr.Set("facemark:session", "{not json"); err != nil {
		t.Fatalf("seed error: %v", err)
	}
	_, err := cache.Load(context.Background())
	if !errors.Is(err, ErrCorruptEntry) {
		t.Fatalf("expected ErrCorruptEntry, got %v", err)
	}
}
