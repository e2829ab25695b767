package qrcode_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/pkg/qrcode"
)

func TestGenerate(t *testing.T) {
	t.Parallel()

	t.Run("produces a png", func(t *testing.T) {
		t.Parallel()
		png, err := qrcode.Generate("otpauth://totp/app:user?secret=ABC", 0)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(png), "\x89PNG"))
	})

	t.Run("rejects empty content", func(t *testing.T) {
		t.Parallel()
		_, err := qrcode.Generate("  ", 256)
		assert.ErrorIs(t, err, qrcode.ErrEmptyContent)
	})
}

func TestGenerateBase64Image(t *testing.T) {
	t.Parallel()

	uri, err := qrcode.GenerateBase64Image("otpauth://totp/app:user?secret=ABC", 128)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))

	_, err = qrcode.GenerateBase64Image("", 128)
	assert.ErrorIs(t, err, qrcode.ErrEmptyContent)
}
