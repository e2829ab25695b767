package codec

import "crypto/subtle"

// ConstantTimeEqual reports whether two byte slices are equal without leaking
// the position of the first mismatch through timing. It returns false
// immediately on length mismatch (length is not secret) and otherwise runs
// in time independent of the contents.
//
// Every comparison of secret-derived bytes in this module (OTP candidates,
// recovery codes) must go through this function rather than bytes.Equal.
func ConstantTimeEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare(a, b) == 1
}
