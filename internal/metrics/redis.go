// Package metrics records anonymous usage counters in Redis: daily mutation
// counts per kind and daily-active-user HyperLogLogs. Everything is
// fire-and-forget and a nil recorder is a no-op, so the feature can be absent
// without branching at call sites.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

func NewRedisClient(addr, password string, db int) (*redis.Client, error) {
	if addr == "" {
		return nil, errors.New("redis addr is empty")
	}
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	}), nil
}

type RedisRecorder struct {
	rdb    *redis.Client
	dayTTL time.Duration
}

type RecorderOption func(*RedisRecorder)

func WithDayTTL(ttl time.Duration) RecorderOption {
	return func(r *RedisRecorder) {
		if ttl > 0 {
			r.dayTTL = ttl
		}
	}
}

func NewRedisRecorder(rdb *redis.Client, opts ...RecorderOption) *RedisRecorder {
	r := &RedisRecorder{
		rdb:    rdb,
		dayTTL: 180 * 24 * time.Hour,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// ObserveMutation counts one log mutation (kind is created/updated/deleted)
// and marks the user active for the day.
func (r *RedisRecorder) ObserveMutation(ctx context.Context, kind string, userID string, ts time.Time) {
	if r == nil || r.rdb == nil {
		return
	}
	date := ts.UTC().Format("2006-01-02")

	pipe := r.rdb.Pipeline()
	dayKey := fmt.Sprintf("metrics:mutations:%s:%s", kind, date)
	pipe.Incr(ctx, dayKey)
	pipe.Expire(ctx, dayKey, r.dayTTL)
	pipe.Incr(ctx, fmt.Sprintf("metrics:mutations:%s:total", kind))
	if userID != "" {
		dauKey := fmt.Sprintf("active:dau:%s", date)
		pipe.PFAdd(ctx, dauKey, userID)
		pipe.Expire(ctx, dauKey, r.dayTTL)
	}
	_, _ = pipe.Exec(ctx)
}

// ObserveLogin counts one successful login and marks the user active.
func (r *RedisRecorder) ObserveLogin(ctx context.Context, userID string, ts time.Time) {
	if r == nil || r.rdb == nil {
		return
	}
	date := ts.UTC().Format("2006-01-02")

	pipe := r.rdb.Pipeline()
	dayKey := fmt.Sprintf("metrics:logins:%s", date)
	pipe.Incr(ctx, dayKey)
	pipe.Expire(ctx, dayKey, r.dayTTL)
	if userID != "" {
		dauKey := fmt.Sprintf("active:dau:%s", date)
		pipe.PFAdd(ctx, dauKey, userID)
		pipe.Expire(ctx, dauKey, r.dayTTL)
	}
	_, _ = pipe.Exec(ctx)
}

// MutationsOn reports the mutation count for one kind and day.
func (r *RedisRecorder) MutationsOn(ctx context.Context, kind string, day time.Time) (int64, error) {
	if r == nil || r.rdb == nil {
		return 0, nil
	}
	key := fmt.Sprintf("metrics:mutations:%s:%s", kind, day.UTC().Format("2006-01-02"))
	n, err := r.rdb.Get(ctx, key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return n, err
}

// ActiveUsersOn estimates distinct active users for a day.
func (r *RedisRecorder) ActiveUsersOn(ctx context.Context, day time.Time) (int64, error) {
	if r == nil || r.rdb == nil {
		return 0, nil
	}
	key := fmt.Sprintf("active:dau:%s", day.UTC().Format("2006-01-02"))
	return r.rdb.PFCount(ctx, key).Result()
}
