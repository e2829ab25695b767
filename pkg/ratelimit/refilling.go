package ratelimit

import (
	"sync"
	"time"
)

// RefillingTokenBucket throttles actions with continuously regenerating
// capacity: one batch of tokens is restored for every full refill interval
// that has elapsed, capped at max. Buckets are created lazily per key and
// persist for the lifetime of the limiter (they are aged on every touch).
type RefillingTokenBucket[K comparable] struct {
	max            int
	refillInterval time.Duration

	mu      sync.Mutex
	buckets map[K]*refillingBucket

	now func() time.Time
}

type refillingBucket struct {
	count      int
	refilledAt time.Time
}

// NewRefillingTokenBucket creates a limiter with the given capacity and
// refill interval. Panics on non-positive parameters: bucket policies are
// static process configuration, so misconfiguration should prevent startup.
func NewRefillingTokenBucket[K comparable](max int, refillInterval time.Duration) *RefillingTokenBucket[K] {
	if max <= 0 {
		panic(ErrInvalidMax)
	}
	if refillInterval <= 0 {
		panic(ErrInvalidInterval)
	}
	return &RefillingTokenBucket[K]{
		max:            max,
		refillInterval: refillInterval,
		buckets:        make(map[K]*refillingBucket),
		now:            time.Now,
	}
}

// Check reports whether cost tokens are available for key after applying
// the elapsed-time refill, without consuming anything. State may change
// between Check and a later Consume; Consume is the authoritative gate.
func (l *RefillingTokenBucket[K]) Check(key K, cost int) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	bucket, ok := l.buckets[key]
	if !ok {
		return cost <= l.max
	}
	refill := int(l.now().Sub(bucket.refilledAt) / l.refillInterval)
	return min(bucket.count+refill, l.max) >= cost
}

// Consume applies the elapsed-time refill, then decrements by cost if
// sufficient tokens remain. On insufficient tokens the decrement is skipped
// and false is returned; the refill itself is still recorded.
func (l *RefillingTokenBucket[K]) Consume(key K, cost int) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	bucket, ok := l.buckets[key]
	if !ok {
		if cost > l.max {
			return false
		}
		l.buckets[key] = &refillingBucket{count: l.max - cost, refilledAt: now}
		return true
	}

	refill := int(now.Sub(bucket.refilledAt) / l.refillInterval)
	bucket.count = min(bucket.count+refill, l.max)
	bucket.refilledAt = now
	if bucket.count < cost {
		return false
	}
	bucket.count -= cost
	return true
}
