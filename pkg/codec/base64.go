package codec

import "strings"

const base64Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

var base64DecodeMap = func() [256]int8 {
	var m [256]int8
	for i := range m {
		m[i] = -1
	}
	for i := 0; i < len(base64Alphabet); i++ {
		m[base64Alphabet[i]] = int8(i)
	}
	return m
}()

type base64Config struct {
	padding bool
}

// Base64Option configures Base64 encoding and decoding.
type Base64Option func(*base64Config)

// WithoutBase64Padding disables "=" padding. The encoder omits it and the
// decoder rejects it.
func WithoutBase64Padding() Base64Option {
	return func(c *base64Config) { c.padding = false }
}

// EncodeBase64 encodes bytes using the standard Base64 alphabet with
// padding, unless disabled via WithoutBase64Padding.
func EncodeBase64(src []byte, opts ...Base64Option) string {
	cfg := base64Config{padding: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	var sb strings.Builder
	sb.Grow((len(src) + 2) / 3 * 4)

	for i := 0; i < len(src); i += 3 {
		var buffer uint32
		bits := 0
		for j := 0; j < 3 && i+j < len(src); j++ {
			buffer = buffer<<8 | uint32(src[i+j])
			bits += 8
		}
		for j := 0; j < 4; j++ {
			switch {
			case bits >= 6:
				sb.WriteByte(base64Alphabet[(buffer>>(bits-6))&0x3f])
				bits -= 6
			case bits > 0:
				sb.WriteByte(base64Alphabet[(buffer<<(6-bits))&0x3f])
				bits = 0
			case cfg.padding:
				sb.WriteByte('=')
			}
		}
	}

	return sb.String()
}

// DecodeBase64 decodes a standard-alphabet Base64 string. The decoder is
// strict: invalid characters fail with ErrInvalidCharacter, while premature
// padding, truncated padded input, and non-zero unused bits in a partial
// group fail with ErrInvalidPadding. Rejecting non-zero unused bits matters
// for key material: a permissive decoder would accept multiple encodings of
// the same bytes and let crafted inputs carry unchecked extra bits.
func DecodeBase64(encoded string, opts ...Base64Option) ([]byte, error) {
	cfg := base64Config{padding: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	result := make([]byte, 0, len(encoded)/4*3+3)

	for i := 0; i < len(encoded); i += 4 {
		var chunk uint32
		bitsRead := 0
		seenPadding := false

		for j := 0; j < 4; j++ {
			idx := i + j
			if idx >= len(encoded) {
				if cfg.padding {
					// Padded input must be a whole number of quads.
					return nil, ErrInvalidPadding
				}
				break
			}
			c := encoded[idx]
			if c == '=' {
				if !cfg.padding {
					return nil, ErrInvalidCharacter
				}
				seenPadding = true
				continue
			}
			if seenPadding {
				return nil, ErrInvalidPadding
			}
			v := base64DecodeMap[c]
			if v < 0 {
				return nil, ErrInvalidCharacter
			}
			chunk |= uint32(v) << ((3 - j) * 6)
			bitsRead += 6
		}

		if bitsRead < 24 {
			var unused uint32
			switch bitsRead {
			case 12:
				unused = chunk & 0xffff
			case 18:
				unused = chunk & 0xff
			default:
				return nil, ErrInvalidPadding
			}
			if unused != 0 {
				return nil, ErrInvalidPadding
			}
		}

		for k := 0; k < bitsRead/8; k++ {
			result = append(result, byte(chunk>>(16-k*8)))
		}
	}

	return result, nil
}
