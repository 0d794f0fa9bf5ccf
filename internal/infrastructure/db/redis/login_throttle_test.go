package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestThrottle(t *testing.T, maxAttempts int, window time.Duration) (*LoginThrottle, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewLoginThrottle(client, maxAttempts, window), mr
}

func TestNewLoginThrottle_Defaults(t *testing.T) {
	th := NewLoginThrottle(nil, 0, 0)
	if th.maxAttempts != defaultMaxAttempts {
		t.Errorf("maxAttempts = %d, want %d", th.maxAttempts, defaultMaxAttempts)
	}
	if th.window != defaultWindow {
		t.Errorf("window = %v, want %v", th.window, defaultWindow)
	}

	th = NewLoginThrottle(nil, 3, time.Minute)
	if th.maxAttempts != 3 || th.window != time.Minute {
		t.Errorf("explicit limits ignored: %+v", th)
	}
}

func TestLoginThrottle_Key(t *testing.T) {
	th := NewLoginThrottle(nil, 5, time.Minute)
	if got := th.key("a@b.com"); got != "login:fail:a@b.com" {
		t.Errorf("key = %q", got)
	}
}

func TestLoginThrottle_BlocksAfterMaxFailures(t *testing.T) {
	ctx := context.Background()
	th, _ := newTestThrottle(t, 3, time.Minute)

	for i := 0; i < 3; i++ {
		ok, err := th.Allow(ctx, "a@b.com")
		if err != nil || !ok {
			t.Fatalf("attempt %d: allowed=%v err=%v", i+1, ok, err)
		}
		if err := th.RecordFailure(ctx, "a@b.com"); err != nil {
			t.Fatalf("RecordFailure: %v", err)
		}
	}

	if ok, err := th.Allow(ctx, "a@b.com"); err != nil || ok {
		t.Fatalf("expected block after 3 failures, allowed=%v err=%v", ok, err)
	}
	if ok, _ := th.Allow(ctx, "other@b.com"); !ok {
		t.Error("other emails must not be affected")
	}
}

func TestLoginThrottle_WindowStartsAtFirstFailure(t *testing.T) {
	ctx := context.Background()
	th, mr := newTestThrottle(t, 2, time.Minute)
	key := th.key("a@b.com")

	if err := th.RecordFailure(ctx, "a@b.com"); err != nil {
		t.Fatalf("RecordFailure: %v", err)
	}
	if ttl := mr.TTL(key); ttl != time.Minute {
		t.Fatalf("ttl after first failure = %v, want 1m", ttl)
	}

	mr.FastForward(20 * time.Second)
	if err := th.RecordFailure(ctx, "a@b.com"); err != nil {
		t.Fatalf("RecordFailure: %v", err)
	}
	if ttl := mr.TTL(key); ttl != 40*time.Second {
		t.Errorf("later failures must not extend the window, ttl = %v", ttl)
	}
	if got, _ := mr.Get(key); got != "2" {
		t.Errorf("counter = %q, want 2", got)
	}
	if ok, _ := th.Allow(ctx, "a@b.com"); ok {
		t.Fatal("expected block inside the window")
	}

	mr.FastForward(41 * time.Second)
	if ok, err := th.Allow(ctx, "a@b.com"); err != nil || !ok {
		t.Fatalf("expected the block to lift once the window expires, allowed=%v err=%v", ok, err)
	}
}

func TestLoginThrottle_ResetClearsCounter(t *testing.T) {
	ctx := context.Background()
	th, mr := newTestThrottle(t, 1, time.Minute)

	if err := th.RecordFailure(ctx, "a@b.com"); err != nil {
		t.Fatalf("RecordFailure: %v", err)
	}
	if ok, _ := th.Allow(ctx, "a@b.com"); ok {
		t.Fatal("expected block")
	}
	if err := th.Reset(ctx, "a@b.com"); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if mr.Exists(th.key("a@b.com")) {
		t.Error("counter must be deleted")
	}
	if ok, err := th.Allow(ctx, "a@b.com"); err != nil || !ok {
		t.Fatalf("expected allow after reset, allowed=%v err=%v", ok, err)
	}
}

func TestLoginThrottle_ServerDown(t *testing.T) {
	ctx := context.Background()
	th, mr := newTestThrottle(t, 3, time.Minute)
	mr.Close()

	if _, err := th.Allow(ctx, "a@b.com"); err == nil {
		t.Error("Allow must report the connection error")
	}
	if err := th.RecordFailure(ctx, "a@b.com"); err == nil {
		t.Error("RecordFailure must report the connection error")
	}
}
