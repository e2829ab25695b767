package codec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/pkg/codec"
)

func TestEncodeBase32(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want string
	}{
		{"empty", "", ""},
		{"one byte", "f", "MY"},
		{"two bytes", "fo", "MZXQ"},
		{"three bytes", "foo", "MZXW6"},
		{"four bytes", "foob", "MZXW6YQ"},
		{"five bytes", "fooba", "MZXW6YTB"},
		{"six bytes", "foobar", "MZXW6YTBOI"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, codec.EncodeBase32([]byte(tt.src)))
		})
	}

	t.Run("with padding", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "MY======", codec.EncodeBase32([]byte("f"), codec.WithBase32Padding()))
		assert.Equal(t, "MZXW6YTBOI======", codec.EncodeBase32([]byte("foobar"), codec.WithBase32Padding()))
	})

	t.Run("lowercase", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "mzxw6ytboi", codec.EncodeBase32([]byte("foobar"), codec.WithBase32Lowercase()))
	})
}

func TestDecodeBase32(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()
		for _, src := range []string{"", "f", "fo", "foo", "foob", "fooba", "foobar"} {
			got, err := codec.DecodeBase32(codec.EncodeBase32([]byte(src)))
			require.NoError(t, err)
			assert.Equal(t, []byte(src), got)
		}
	})

	t.Run("accepts both cases and padding", func(t *testing.T) {
		t.Parallel()
		for _, in := range []string{"MZXW6YTBOI", "mzxw6ytboi", "MZXW6YTBOI======"} {
			got, err := codec.DecodeBase32(in)
			require.NoError(t, err)
			assert.Equal(t, []byte("foobar"), got)
		}
	})

	t.Run("rejects invalid characters", func(t *testing.T) {
		t.Parallel()
		_, err := codec.DecodeBase32("MZ1W")
		assert.ErrorIs(t, err, codec.ErrInvalidCharacter)

		_, err = codec.DecodeBase32("MZX!")
		assert.ErrorIs(t, err, codec.ErrInvalidCharacter)
	})

	t.Run("rejects interior padding", func(t *testing.T) {
		t.Parallel()
		_, err := codec.DecodeBase32("MY==MY==")
		assert.ErrorIs(t, err, codec.ErrInvalidPadding)
	})

	t.Run("rejects non-canonical trailing bits", func(t *testing.T) {
		t.Parallel()
		// "MY" decodes to 'f' with zero leftover bits; "MZ" leaves a
		// non-zero remainder and must not be accepted as an alias.
		_, err := codec.DecodeBase32("MZ")
		assert.ErrorIs(t, err, codec.ErrInvalidPadding)
	})
}
