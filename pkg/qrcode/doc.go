// Package qrcode renders two-factor enrollment QR codes.
//
// Authenticator apps are provisioned by scanning an otpauth:// key URI
// (see pkg/otp.KeyURI). Generate returns the PNG bytes;
// GenerateBase64Image wraps them as a data URI for direct embedding in an
// <img> tag.
//
// # Usage
//
//	uri := otp.KeyURI("Example", "user@example.com", key, 30*time.Second, 6)
//	img, err := qrcode.GenerateBase64Image(uri, 256)
package qrcode
