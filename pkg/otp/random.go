package otp

import (
	"crypto/rand"
	"errors"

	"github.com/dmitrymomot/authkit/pkg/codec"
)

// GenerateKey generates a new 160-bit TOTP key (RFC 4226 recommended
// strength). The raw bytes are HMAC key material and must only ever be
// stored in encrypted form.
func GenerateKey() ([]byte, error) {
	key := make([]byte, 20)
	if _, err := rand.Read(key); err != nil {
		return nil, errors.Join(ErrFailedToGenerate, err)
	}
	return key, nil
}

// GenerateCode generates a short random code for email-ownership proofs
// (verification and password-reset emails): 8 Base32 characters from 40
// bits of entropy.
func GenerateCode() (string, error) {
	buf := make([]byte, 5)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Join(ErrFailedToGenerate, err)
	}
	return codec.EncodeBase32(buf), nil
}

// GenerateRecoveryCode generates a single-use 2FA recovery code: 16 Base32
// characters from 80 bits of entropy.
func GenerateRecoveryCode() (string, error) {
	buf := make([]byte, 10)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Join(ErrFailedToGenerate, err)
	}
	return codec.EncodeBase32(buf), nil
}
