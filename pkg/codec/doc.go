// Package codec provides the text encodings used to serialize keys, tokens
// and identifiers (Base32, Base64, lowercase hex) together with a
// constant-time byte comparison primitive.
//
// The Base64 decoder is strict: invalid characters, premature padding and
// non-zero unused bits in a partial group are all rejected with explicit
// errors. Silently ignoring trailing bits would let crafted inputs smuggle
// extra entropy into decoded key material.
//
// ConstantTimeEqual is the single comparison primitive for secret-derived
// byte sequences. It short-circuits only on length mismatch (length is not
// secret) and otherwise XOR-accumulates over the full input so execution
// time does not depend on where a mismatch occurs.
//
// # Usage
//
//	import "github.com/dmitrymomot/authkit/pkg/codec"
//
//	id := codec.EncodeBase32(tokenBytes, codec.WithBase32Lowercase())
//
//	if !codec.ConstantTimeEqual(candidate, expected) {
//	    // reject
//	}
package codec
