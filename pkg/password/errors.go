package password

import "errors"

var (
	ErrInvalidHash         = errors.New("stored password hash is malformed")
	ErrIncompatibleVersion = errors.New("stored password hash uses an incompatible argon2 version")
	ErrPasswordMismatch    = errors.New("password does not match")
	ErrFailedToHash        = errors.New("failed to hash password")
)
