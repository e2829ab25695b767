package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// consumeScript atomically grants a fresh allotment or decrements the
// remaining count. The TTL is set only at creation so the window is fixed
// from first touch, matching ExpiringTokenBucket semantics.
var consumeScript = redis.NewScript(`
local count = redis.call("GET", KEYS[1])
local max = tonumber(ARGV[1])
local cost = tonumber(ARGV[2])
if count == false then
	if cost > max then
		return 0
	end
	redis.call("SET", KEYS[1], max - cost, "PX", tonumber(ARGV[3]))
	return 1
end
if tonumber(count) < cost then
	return 0
end
redis.call("DECRBY", KEYS[1], cost)
return 1
`)

// RedisExpiringBucket implements the expiring token bucket policy on Redis,
// for deployments where a hard attempt ceiling must hold across instances.
// Keys are strings (the caller formats user or session identifiers) and
// window expiry is delegated to Redis key TTLs.
type RedisExpiringBucket struct {
	client       redis.UniversalClient
	prefix       string
	max          int
	expiresAfter time.Duration
}

// NewRedisExpiringBucket creates a distributed expiring bucket. The prefix
// namespaces keys so multiple policies can share one Redis database.
// Panics on non-positive parameters, consistent with the in-memory buckets.
func NewRedisExpiringBucket(client redis.UniversalClient, prefix string, max int, expiresAfter time.Duration) *RedisExpiringBucket {
	if max <= 0 {
		panic(ErrInvalidMax)
	}
	if expiresAfter <= 0 {
		panic(ErrInvalidInterval)
	}
	return &RedisExpiringBucket{
		client:       client,
		prefix:       prefix,
		max:          max,
		expiresAfter: expiresAfter,
	}
}

// Check reports whether cost tokens are available without consuming.
func (l *RedisExpiringBucket) Check(ctx context.Context, key string, cost int) (bool, error) {
	count, err := l.client.Get(ctx, l.prefix+key).Int()
	if err == redis.Nil {
		return cost <= l.max, nil
	}
	if err != nil {
		return false, err
	}
	return count >= cost, nil
}

// Consume atomically decrements the bucket by cost, creating it with a
// fresh allotment when absent or expired.
func (l *RedisExpiringBucket) Consume(ctx context.Context, key string, cost int) (bool, error) {
	res, err := consumeScript.Run(ctx, l.client,
		[]string{l.prefix + key},
		l.max, cost, l.expiresAfter.Milliseconds(),
	).Int()
	if err != nil {
		return false, err
	}
	return res == 1, nil
}

// Reset deletes the bucket for key, restoring the full allowance.
func (l *RedisExpiringBucket) Reset(ctx context.Context, key string) error {
	return l.client.Del(ctx, l.prefix+key).Err()
}
