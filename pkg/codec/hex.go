package codec

import "strings"

const hexAlphabetLower = "0123456789abcdef"

// EncodeHexLowerCase encodes bytes as lowercase hexadecimal. Session and
// reset-session identifiers (SHA-256 digests of bearer tokens) use this form.
func EncodeHexLowerCase(src []byte) string {
	var sb strings.Builder
	sb.Grow(len(src) * 2)
	for _, b := range src {
		sb.WriteByte(hexAlphabetLower[b>>4])
		sb.WriteByte(hexAlphabetLower[b&0x0f])
	}
	return sb.String()
}
