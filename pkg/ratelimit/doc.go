// Package ratelimit implements token-bucket throttles for authentication
// attempts, keyed by an opaque comparable identifier (IP address, user ID,
// session ID).
//
// Two policies are provided:
//
//   - RefillingTokenBucket regenerates capacity continuously (elapsed time
//     divided by the refill interval), suitable for coarse recoverable
//     throttles such as per-IP signup attempts.
//   - ExpiringTokenBucket grants a fixed allotment at first touch which
//     expires as a whole after a fixed duration from creation, suitable for
//     hard security ceilings such as TOTP or recovery-code attempts
//     ("N tries per window, full stop"). Reset restores the full allowance
//     immediately, typically after a successful sensitive action.
//
// Callers commonly Check before expensive validation and Consume after it.
// The two calls are deliberately not a single critical section: two
// concurrent requests may both pass Check while only one succeeds at
// Consume. Consume is the sole authoritative gate.
//
// RedisExpiringBucket provides the expiring policy over Redis for
// deployments where the ceiling must hold across instances.
//
// # Usage
//
//	bucket := ratelimit.NewExpiringTokenBucket[uuid.UUID](5, 30*time.Minute)
//
//	if !bucket.Check(userID, 1) {
//	    return auth.ErrRateLimited
//	}
//	// ... cheap validation ...
//	if !bucket.Consume(userID, 1) {
//	    return auth.ErrRateLimited
//	}
package ratelimit
