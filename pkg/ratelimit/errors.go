package ratelimit

import "errors"

var (
	ErrInvalidMax      = errors.New("bucket capacity must be positive")
	ErrInvalidInterval = errors.New("bucket interval must be positive")
)
