package otp

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/binary"
	"fmt"

	"github.com/dmitrymomot/authkit/pkg/codec"
)

const (
	// MinDigits and MaxDigits bound the RFC 4226 code length.
	MinDigits = 6
	MaxDigits = 8
)

var pow10 = [...]uint32{
	6: 1_000_000,
	7: 10_000_000,
	8: 100_000_000,
}

// GenerateHOTP computes the RFC 4226 one-time password for the given key
// and counter: HMAC-SHA1 over the big-endian 8-byte counter, dynamic
// truncation (low nibble of the last byte selects a 4-byte window, high bit
// masked), reduced modulo 10^digits and left-padded with zeros.
func GenerateHOTP(key []byte, counter uint64, digits int) (string, error) {
	if digits < MinDigits || digits > MaxDigits {
		return "", ErrInvalidDigits
	}

	var counterBytes [8]byte
	binary.BigEndian.PutUint64(counterBytes[:], counter)

	mac := hmac.New(sha1.New, key)
	mac.Write(counterBytes[:])
	hs := mac.Sum(nil)

	offset := hs[len(hs)-1] & 0x0f
	truncated := binary.BigEndian.Uint32(hs[offset:offset+4]) & 0x7fffffff
	code := truncated % pow10[digits]

	return fmt.Sprintf("%0*d", digits, code), nil
}

// VerifyHOTP reports whether otp matches the expected code at the given
// counter. The candidate and the freshly computed expected value are
// compared as UTF-8 byte sequences in constant time, never as integers,
// which would reintroduce length-dependent timing through the conversion.
func VerifyHOTP(key []byte, counter uint64, digits int, otp string) (bool, error) {
	if digits < MinDigits || digits > MaxDigits {
		return false, ErrInvalidDigits
	}
	if len(otp) != digits {
		return false, nil
	}
	expected, err := GenerateHOTP(key, counter, digits)
	if err != nil {
		return false, err
	}
	return codec.ConstantTimeEqual([]byte(otp), []byte(expected)), nil
}
