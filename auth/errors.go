package auth

import "errors"

var (
	// ErrNotFound is returned when a user, session, or verification
	// request does not exist in the store.
	ErrNotFound = errors.New("record not found")

	// ErrEmailTaken is returned when creating or updating a user with an
	// email address that already belongs to another account.
	ErrEmailTaken = errors.New("email address already in use")

	// ErrRateLimited is returned when an operation's token bucket budget
	// is exhausted. Callers should back off until the window passes.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrInvalidPassword is returned when a supplied password does not
	// match the stored hash.
	ErrInvalidPassword = errors.New("invalid password")

	// ErrWeakPassword is returned when a new password fails strength
	// validation.
	ErrWeakPassword = errors.New("password too weak")

	// ErrInvalidCode is returned when a TOTP code or email verification
	// code does not match.
	ErrInvalidCode = errors.New("invalid verification code")

	// ErrInvalidRecoveryCode is returned when a supplied recovery code
	// does not match the stored one.
	ErrInvalidRecoveryCode = errors.New("invalid recovery code")

	// ErrReplayConflict is returned when a recovery code redemption loses
	// the compare-and-swap because a concurrent redemption already
	// rotated the code.
	ErrReplayConflict = errors.New("recovery code already redeemed")

	// ErrNotEnrolled is returned when a second-factor operation targets a
	// user who has no TOTP key registered.
	ErrNotEnrolled = errors.New("second factor not registered")

	// ErrNoSender is returned when an email delivery operation is invoked
	// on a Service constructed without an email sender.
	ErrNoSender = errors.New("email sender not configured")

	// ErrInvalidInput is returned when an email address or username fails
	// syntactic validation.
	ErrInvalidInput = errors.New("invalid input")
)
