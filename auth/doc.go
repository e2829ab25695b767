// Package auth implements credential and session verification for an
// email/password authentication backend with optional TOTP second factor.
//
// The package is organized around a Service that owns the verification
// state machines and a Store interface that persists them. Two Store
// implementations ship with the package: MemoryStore for tests and
// single-process deployments, and PostgresStore backed by pgx.
//
// # Sessions
//
// Bearer tokens are generated client-side opaque strings; the server
// persists only the hex-encoded SHA-256 digest of the token as the
// session ID, so a database leak never exposes a usable token:
//
//	token, err := auth.GenerateSessionToken()
//	if err != nil { ... }
//	session, err := svc.CreateSession(ctx, token, userID, auth.SessionFlags{}, 0)
//
// Validation is lazy: an expired session row is deleted on first read
// and reported as absent, never as an error:
//
//	session, user, err := svc.ValidateSessionToken(ctx, token)
//	if err != nil { ... }       // storage failure
//	if session == nil { ... }   // no valid session
//
// # Second factor
//
// TOTP keys and recovery codes are sealed with envelope.Envelope before
// they reach the Store. Recovery code redemption rotates the code with a
// compare-and-swap so concurrent redeemers cannot both win; the loser
// observes ErrReplayConflict.
//
// # Rate limiting
//
// TOTP verification, recovery code redemption, password updates, and
// outbound verification emails are each throttled with expiring token
// buckets keyed per user or per session. Exhausted budgets surface as
// ErrRateLimited.
package auth
