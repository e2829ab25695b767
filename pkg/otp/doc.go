// Package otp implements HMAC-based and time-based one-time passwords
// (RFC 4226 / RFC 6238) for second-factor verification.
//
// GenerateHOTP is the core: HMAC-SHA1 over the big-endian 8-byte counter
// with dynamic truncation to a left-zero-padded decimal code of 6 to 8
// digits. TOTP derives the counter from wall-clock time;
// VerifyTOTPWithGracePeriod widens acceptance to every counter window
// overlapping the grace interval to absorb client clock drift. The grace
// window does not weaken brute-force resistance; the per-attempt rate
// limit remains the primary defense.
//
// OTP candidates are compared to freshly computed expected values via
// constant-time byte comparison, never by numeric equality, so verification
// time is independent of how much of the candidate matches.
//
// KeyURI renders the standard otpauth:// enrollment URI consumed by
// authenticator apps; the secret is encoded as uppercase unpadded Base32
// and the algorithm is stated explicitly.
//
// # Usage
//
//	key, _ := otp.GenerateKey()
//	uri := otp.KeyURI("Example", "user@example.com", key, 30*time.Second, 6)
//
//	ok, err := otp.VerifyTOTPWithGracePeriod(key, 30*time.Second, 6, candidate, 30*time.Second)
package otp
