package otp

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/dmitrymomot/authkit/pkg/codec"
)

// KeyURI builds the otpauth:// enrollment URI for authenticator apps,
// following the Key Uri Format specification:
// https://github.com/google/google-authenticator/wiki/Key-Uri-Format
//
// The issuer and account name are percent-encoded in the label, the secret
// is uppercase unpadded Base32, and the algorithm is stated explicitly for
// compatibility with apps that default differently.
func KeyURI(issuer, accountName string, key []byte, period time.Duration, digits int) string {
	label := fmt.Sprintf("%s:%s",
		url.PathEscape(issuer),
		url.PathEscape(accountName),
	)

	query := url.Values{}
	query.Set("secret", codec.EncodeBase32(key))
	query.Set("issuer", issuer)
	query.Set("algorithm", "SHA1")
	query.Set("digits", strconv.Itoa(digits))
	query.Set("period", strconv.FormatInt(int64(period/time.Second), 10))

	return fmt.Sprintf("otpauth://totp/%s?%s", label, query.Encode())
}
