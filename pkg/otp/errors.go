package otp

import "errors"

var (
	ErrInvalidDigits      = errors.New("otp digits must be between 6 and 8")
	ErrInvalidGracePeriod = errors.New("grace period must not be negative")
	ErrFailedToGenerate   = errors.New("failed to generate random value")
)
