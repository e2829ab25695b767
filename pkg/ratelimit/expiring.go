package ratelimit

import (
	"sync"
	"time"
)

// ExpiringTokenBucket throttles actions with a hard ceiling: a fixed
// allotment is granted when a key is first touched and the whole bucket
// expires a fixed duration after creation (not sliding), at which point a
// fresh bucket replaces it. There is no gradual refill.
type ExpiringTokenBucket[K comparable] struct {
	max          int
	expiresAfter time.Duration

	mu      sync.Mutex
	buckets map[K]*expiringBucket

	now func() time.Time
}

type expiringBucket struct {
	count     int
	createdAt time.Time
}

// NewExpiringTokenBucket creates a limiter granting max tokens per
// expiresAfter window. Panics on non-positive parameters.
func NewExpiringTokenBucket[K comparable](max int, expiresAfter time.Duration) *ExpiringTokenBucket[K] {
	if max <= 0 {
		panic(ErrInvalidMax)
	}
	if expiresAfter <= 0 {
		panic(ErrInvalidInterval)
	}
	return &ExpiringTokenBucket[K]{
		max:          max,
		expiresAfter: expiresAfter,
		buckets:      make(map[K]*expiringBucket),
		now:          time.Now,
	}
}

// Check reports whether cost tokens are available for key without consuming.
func (l *ExpiringTokenBucket[K]) Check(key K, cost int) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	bucket, ok := l.buckets[key]
	if !ok || l.expired(bucket) {
		return cost <= l.max
	}
	return bucket.count >= cost
}

// Consume decrements the bucket by cost, granting a fresh allotment first
// when the key is untouched or its window has expired. Returns false and
// leaves state unchanged when fewer than cost tokens remain.
func (l *ExpiringTokenBucket[K]) Consume(key K, cost int) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	bucket, ok := l.buckets[key]
	if !ok || l.expired(bucket) {
		if cost > l.max {
			return false
		}
		l.buckets[key] = &expiringBucket{count: l.max - cost, createdAt: l.now()}
		return true
	}
	if bucket.count < cost {
		return false
	}
	bucket.count -= cost
	return true
}

// Reset deletes the bucket for key, immediately restoring the full
// allowance. Called after a successful sensitive action such as a password
// change.
func (l *ExpiringTokenBucket[K]) Reset(key K) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.buckets, key)
}

func (l *ExpiringTokenBucket[K]) expired(b *expiringBucket) bool {
	return !l.now().Before(b.createdAt.Add(l.expiresAfter))
}
