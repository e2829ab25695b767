package envelope

import (
	"errors"

	"github.com/dmitrymomot/authkit/pkg/codec"
)

// Config holds the process-wide encryption key as Base64. The key comes
// from an external secret store via the environment; there is no rotation.
type Config struct {
	EncryptionKey string `env:"ENVELOPE_ENCRYPTION_KEY,required"`
}

// KeyBytes decodes and validates the configured key.
func (c Config) KeyBytes() ([]byte, error) {
	if c.EncryptionKey == "" {
		return nil, errors.Join(ErrFailedToLoadKey, ErrKeyNotSet)
	}
	key, err := codec.DecodeBase64(c.EncryptionKey)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadKey, err)
	}
	if len(key) != KeySize {
		return nil, errors.Join(ErrFailedToLoadKey, ErrInvalidKeyLength)
	}
	return key, nil
}

// GenerateEncodedKey generates a new random key as Base64, for seeding
// configuration.
func GenerateEncodedKey() (string, error) {
	key, err := GenerateKey()
	if err != nil {
		return "", err
	}
	return codec.EncodeBase64(key), nil
}
