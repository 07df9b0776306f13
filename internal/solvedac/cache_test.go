package solvedac

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestCached_ServesFromCache(t *testing.T) {
	mock := &Mock{Profile: &User{Handle: "hyeon", Rating: 500}}
	c := WithCache(mock, DefaultCacheConfig())

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if _, err := c.User(ctx, "hyeon"); err != nil {
			t.Fatalf("User: %v", err)
		}
	}

	if got := mock.Calls["User"]; got != 1 {
		t.Errorf("upstream called %d times, want 1", got)
	}
}

func TestCached_ExpiresAfterTTL(t *testing.T) {
	mock := &Mock{Tags: []TagStat{{Tag: "dp", Solved: 1, Tried: 2}}}
	c := WithCache(mock, CacheConfig{TagTTL: time.Minute})

	clock := time.Now()
	c.now = func() time.Time { return clock }

	ctx := context.Background()
	c.TagStats(ctx, "hyeon")
	c.TagStats(ctx, "hyeon")

	clock = clock.Add(2 * time.Minute)
	c.TagStats(ctx, "hyeon")

	if got := mock.Calls["TagStats"]; got != 2 {
		t.Errorf("upstream called %d times, want 2", got)
	}
}

func TestCached_ErrorsNotCached(t *testing.T) {
	mock := &Mock{Err: &ErrUnavailable{Err: errors.New("down")}}
	c := WithCache(mock, DefaultCacheConfig())

	ctx := context.Background()
	c.User(ctx, "hyeon")
	c.User(ctx, "hyeon")

	if got := mock.Calls["User"]; got != 2 {
		t.Errorf("upstream called %d times, want 2 (errors must not be cached)", got)
	}
}

func TestCached_InvalidateDropsHandle(t *testing.T) {
	mock := &Mock{Profile: &User{Handle: "hyeon"}}
	c := WithCache(mock, DefaultCacheConfig())

	ctx := context.Background()
	c.User(ctx, "hyeon")
	c.Invalidate("hyeon")
	c.User(ctx, "hyeon")

	if got := mock.Calls["User"]; got != 2 {
		t.Errorf("upstream called %d times, want 2 after invalidation", got)
	}
}
