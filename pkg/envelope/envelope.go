package envelope

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"io"
)

const (
	// KeySize is the AES-128 key length.
	KeySize = 16
	ivSize  = 16
	tagSize = 16

	// minCiphertextSize is IV plus tag plus at least one ciphertext byte.
	minCiphertextSize = ivSize + tagSize + 1
)

// Envelope encrypts and decrypts secrets under a fixed process-wide key.
type Envelope struct {
	aead cipher.AEAD
}

// New creates an Envelope from a raw 16-byte AES-128 key.
func New(key []byte) (*Envelope, error) {
	if len(key) != KeySize {
		return nil, ErrInvalidKeyLength
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCMWithNonceSize(block, ivSize)
	if err != nil {
		return nil, err
	}
	return &Envelope{aead: aead}, nil
}

// MustNew creates an Envelope and panics on an invalid key. Missing or
// malformed key material is a startup configuration error, not a runtime
// condition to recover from.
func MustNew(key []byte) *Envelope {
	env, err := New(key)
	if err != nil {
		panic(err)
	}
	return env
}

// Encrypt seals plaintext under a fresh random 16-byte IV and returns
// iv ‖ ciphertext ‖ tag. A new IV per call is mandatory: reuse under the
// same key breaks both confidentiality and authenticity of GCM.
func (e *Envelope) Encrypt(plaintext []byte) ([]byte, error) {
	iv := make([]byte, ivSize)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return nil, errors.Join(ErrEncryptionFailed, err)
	}
	// Seal appends ciphertext and tag after the IV.
	return e.aead.Seal(iv, iv, plaintext, nil), nil
}

// EncryptString seals a UTF-8 string.
func (e *Envelope) EncryptString(plaintext string) ([]byte, error) {
	return e.Encrypt([]byte(plaintext))
}

// Decrypt opens an iv ‖ ciphertext ‖ tag record. Inputs shorter than 33
// bytes fail with ErrInvalidCiphertext before any cryptographic work; a tag
// mismatch fails with ErrAuthenticationFailed and no plaintext is returned.
func (e *Envelope) Decrypt(encrypted []byte) ([]byte, error) {
	if len(encrypted) < minCiphertextSize {
		return nil, ErrInvalidCiphertext
	}
	plaintext, err := e.aead.Open(nil, encrypted[:ivSize], encrypted[ivSize:], nil)
	if err != nil {
		return nil, ErrAuthenticationFailed
	}
	return plaintext, nil
}

// DecryptToString opens a record and returns the plaintext as a string.
func (e *Envelope) DecryptToString(encrypted []byte) (string, error) {
	plaintext, err := e.Decrypt(encrypted)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

// GenerateKey creates a new random 16-byte key suitable for AES-128.
func GenerateKey() ([]byte, error) {
	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, err
	}
	return key, nil
}
