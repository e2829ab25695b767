package email

import "errors"

var (
	ErrFailedToSend   = errors.New("failed to send email")
	ErrInvalidMessage = errors.New("invalid email message")
	ErrInvalidConfig  = errors.New("invalid email config")
)
