package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func newTestCache(t *testing.T) *JSONCache {
	t.Helper()
	s, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(s.Close)

	rdb := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() {
		if err := rdb.Close(); err != nil {
			t.Fatalf("close redis: %v", err)
		}
	})
	return NewJSONCache(rdb, time.Minute)
}

func TestJSONCache_RoundTrip(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	var got payload
	hit, err := c.Get(ctx, "feed", &got)
	if err != nil {
		t.Fatalf("get on empty cache: %v", err)
	}
	if hit {
		t.Fatal("expected miss on empty cache")
	}

	want := payload{Name: "posts", Count: 3}
	if err := c.Set(ctx, "feed", want); err != nil {
		t.Fatalf("set: %v", err)
	}

	hit, err = c.Get(ctx, "feed", &got)
	if err != nil {
		t.Fatalf("get after set: %v", err)
	}
	if !hit {
		t.Fatal("expected hit after set")
	}
	if got != want {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, want)
	}
}

func TestJSONCache_Invalidate(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, "feed", payload{Name: "posts"}); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := c.Invalidate(ctx, "feed", "alumni"); err != nil {
		t.Fatalf("invalidate: %v", err)
	}

	var got payload
	hit, err := c.Get(ctx, "feed", &got)
	if err != nil {
		t.Fatalf("get after invalidate: %v", err)
	}
	if hit {
		t.Fatal("expected miss after invalidate")
	}
}

func TestJSONCache_CorruptValueIsAMiss(t *testing.T) {
	s, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(s.Close)
	rdb := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { rdb.Close() })
	c := NewJSONCache(rdb, time.Minute)

	if err := s.Set("feed", "{not json"); err != nil {
		t.Fatalf("seed corrupt value: %v", err)
	}

	var got payload
	hit, err := c.Get(context.Background(), "feed", &got)
	if err != nil {
		t.Fatalf("get corrupt value: %v", err)
	}
	if hit {
		t.Fatal("corrupt value must read as a miss")
	}
}
