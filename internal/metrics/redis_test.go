package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRecorder(t *testing.T) (*RedisRecorder, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisRecorder(rdb), mr
}

func TestObserveMutation_CountsAndActiveUsers(t *testing.T) {
	t.Parallel()

	r, _ := newTestRecorder(t)
	ctx := context.Background()
	day := time.Date(2026, 8, 12, 14, 0, 0, 0, time.UTC)

	r.ObserveMutation(ctx, "created", "user-1", day)
	r.ObserveMutation(ctx, "created", "user-2", day)
	r.ObserveMutation(ctx, "deleted", "user-1", day)
	r.ObserveMutation(ctx, "created", "user-1", day.AddDate(0, 0, 1))

	n, err := r.MutationsOn(ctx, "created", day)
	if err != nil || n != 2 {
		t.Fatalf("expected 2 creates, got n=%d err=%v", n, err)
	}
	n, err = r.MutationsOn(ctx, "deleted", day)
	if err != nil || n != 1 {
		t.Fatalf("expected 1 delete, got n=%d err=%v", n, err)
	}
	n, err = r.MutationsOn(ctx, "updated", day)
	if err != nil || n != 0 {
		t.Fatalf("expected 0 updates, got n=%d err=%v", n, err)
	}

	users, err := r.ActiveUsersOn(ctx, day)
	if err != nil || users != 2 {
		t.Fatalf("expected 2 active users, got n=%d err=%v", users, err)
	}
}

func TestObserveLogin_MarksActive(t *testing.T) {
	t.Parallel()

	r, _ := newTestRecorder(t)
	ctx := context.Background()
	day := time.Date(2026, 8, 12, 8, 0, 0, 0, time.UTC)

	r.ObserveLogin(ctx, "user-1", day)
	r.ObserveLogin(ctx, "user-1", day)

	users, err := r.ActiveUsersOn(ctx, day)
	if err != nil || users != 1 {
		t.Fatalf("expected 1 active user, got n=%d err=%v", users, err)
	}
}

func TestRecorder_NilIsNoOp(t *testing.T) {
	t.Parallel()

	var r *RedisRecorder
	ctx := context.Background()

	r.ObserveMutation(ctx, "created", "user-1", time.Now())
	r.ObserveLogin(ctx, "user-1", time.Now())
	if n, err := r.MutationsOn(ctx, "created", time.Now()); err != nil || n != 0 {
		t.Fatalf("expected nil recorder to read zero, got n=%d err=%v", n, err)
	}
	if n, err := r.ActiveUsersOn(ctx, time.Now()); err != nil || n != 0 {
		t.Fatalf("expected nil recorder to read zero, got n=%d err=%v", n, err)
	}
}

func TestMutationKeysExpire(t *testing.T) {
	t.Parallel()

	r, mr := newTestRecorder(t)
	ctx := context.Background()
	day := time.Date(2026, 8, 12, 0, 0, 0, 0, time.UTC)

	r.ObserveMutation(ctx, "created", "user-1", day)

	mr.FastForward(181 * 24 * time.Hour)
	if n, _ := r.MutationsOn(ctx, "created", day); n != 0 {
		t.Fatalf("expected day counter to expire, got %d", n)
	}
	// The lifetime total never expires.
	if v, err := mr.Get("metrics:mutations:created:total"); err != nil || v != "1" {
		t.Fatalf("expected total=1, got %q err=%v", v, err)
	}
}
