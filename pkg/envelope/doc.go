// Package envelope provides authenticated symmetric encryption for
// long-lived secrets at rest: TOTP keys and 2FA recovery codes.
//
// Each encrypted record is self-describing: a fresh random 16-byte IV is
// generated per call and the output is laid out as
//
//	iv(16) ‖ ciphertext ‖ tag(16)
//
// so any record can be decrypted and verified independently. AES-128-GCM
// provides both confidentiality and integrity; decryption fails closed and
// never surfaces partially-decrypted data.
//
// The symmetric key is process-wide configuration loaded once at startup
// (Base64 in the environment). Key rotation is deliberately out of scope.
//
// # Usage
//
//	env := envelope.MustNew(key)
//
//	blob, err := env.EncryptString(recoveryCode)
//	// store blob
//
//	code, err := env.DecryptToString(blob)
//	if errors.Is(err, envelope.ErrAuthenticationFailed) {
//	    // record was tampered with or encrypted under a different key
//	}
package envelope
