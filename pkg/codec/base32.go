package codec

import "strings"

const (
	base32Alphabet          = "ABCDEFGHIJKLMNOPQRSTUVWXYZ234567"
	base32LowercaseAlphabet = "abcdefghijklmnopqrstuvwxyz234567"
)

type base32Config struct {
	padding   bool
	lowercase bool
}

// Base32Option configures Base32 encoding.
type Base32Option func(*base32Config)

// WithBase32Padding appends "=" padding to the encoded output.
// RFC 4648 padding is omitted by default since none of the consumers
// (keys, tokens, identifiers) require it.
func WithBase32Padding() Base32Option {
	return func(c *base32Config) { c.padding = true }
}

// WithBase32Lowercase selects the lowercase alphabet. Used for
// externally-visible identifiers to reduce transcription ambiguity.
func WithBase32Lowercase() Base32Option {
	return func(c *base32Config) { c.lowercase = true }
}

// EncodeBase32 encodes bytes using the RFC 4648 Base32 alphabet.
// Input is processed in 5-byte groups producing 8 symbols each; the final
// partial group is left-shifted so its significant bits align on a symbol
// boundary.
func EncodeBase32(src []byte, opts ...Base32Option) string {
	var cfg base32Config
	for _, opt := range opts {
		opt(&cfg)
	}

	alphabet := base32Alphabet
	if cfg.lowercase {
		alphabet = base32LowercaseAlphabet
	}

	var sb strings.Builder
	sb.Grow((len(src) + 4) / 5 * 8)

	for i := 0; i < len(src); i += 5 {
		var buffer uint64
		bits := 0
		for j := 0; j < 5 && i+j < len(src); j++ {
			buffer = buffer<<8 | uint64(src[i+j])
			bits += 8
		}
		// Pad the partial group so the remaining bits divide evenly into
		// 5-bit symbols.
		if bits%5 != 0 {
			pad := 5 - bits%5
			buffer <<= uint(pad)
			bits += pad
		}
		for j := 0; j < 8; j++ {
			if bits >= 5 {
				sb.WriteByte(alphabet[(buffer>>(bits-5))&0x1f])
				bits -= 5
			} else if cfg.padding {
				sb.WriteByte('=')
			}
		}
	}

	return sb.String()
}

// DecodeBase32 decodes an RFC 4648 Base32 string, accepting both upper and
// lower case alphabets and optional trailing padding. Non-zero unused bits
// in the final partial group are rejected.
func DecodeBase32(encoded string) ([]byte, error) {
	encoded = strings.TrimRight(encoded, "=")

	result := make([]byte, 0, len(encoded)*5/8)
	var buffer uint64
	bits := 0

	for i := 0; i < len(encoded); i++ {
		c := encoded[i]
		var v byte
		switch {
		case c >= 'A' && c <= 'Z':
			v = c - 'A'
		case c >= 'a' && c <= 'z':
			v = c - 'a'
		case c >= '2' && c <= '7':
			v = c - '2' + 26
		case c == '=':
			return nil, ErrInvalidPadding
		default:
			return nil, ErrInvalidCharacter
		}
		buffer = buffer<<5 | uint64(v)
		bits += 5
		if bits >= 8 {
			result = append(result, byte(buffer>>(bits-8)))
			bits -= 8
		}
	}

	if bits > 0 && buffer&(1<<bits-1) != 0 {
		return nil, ErrInvalidPadding
	}

	return result, nil
}
