package envelope

import "errors"

var (
	ErrInvalidKeyLength     = errors.New("encryption key must be 16 bytes")
	ErrInvalidCiphertext    = errors.New("ciphertext too short")
	ErrAuthenticationFailed = errors.New("ciphertext authentication failed")
	ErrEncryptionFailed     = errors.New("failed to encrypt secret")
	ErrKeyNotSet            = errors.New("envelope encryption key not set")
	ErrFailedToLoadKey      = errors.New("failed to load envelope encryption key")
)
