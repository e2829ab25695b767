package password_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/pkg/password"
)

func TestHashAndVerify(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()
		hash, err := password.Hash("correct horse battery staple")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))
		assert.NoError(t, password.Verify(hash, "correct horse battery staple"))
	})

	t.Run("mismatch", func(t *testing.T) {
		t.Parallel()
		hash, err := password.Hash("correct horse battery staple")
		require.NoError(t, err)
		assert.ErrorIs(t, password.Verify(hash, "wrong password"), password.ErrPasswordMismatch)
	})

	t.Run("unique salt per hash", func(t *testing.T) {
		t.Parallel()
		a, err := password.Hash("same password")
		require.NoError(t, err)
		b, err := password.Hash("same password")
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
	})

	t.Run("malformed hash", func(t *testing.T) {
		t.Parallel()
		assert.ErrorIs(t, password.Verify("not-a-hash", "pw"), password.ErrInvalidHash)
		assert.ErrorIs(t, password.Verify("$argon2id$v=19$m=19456,t=2,p=1$salt", "pw"), password.ErrInvalidHash)
	})

	t.Run("incompatible version", func(t *testing.T) {
		t.Parallel()
		hash, err := password.Hash("pw12345678")
		require.NoError(t, err)
		bumped := strings.Replace(hash, "$v=19$", "$v=18$", 1)
		assert.ErrorIs(t, password.Verify(bumped, "pw12345678"), password.ErrIncompatibleVersion)
	})
}
