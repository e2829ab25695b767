package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/auth"
)

func seedUser(t *testing.T, store *auth.MemoryStore) auth.NewUser {
	t.Helper()
	user := auth.NewUser{
		ID:                    uuid.New(),
		Email:                 "user@example.com",
		Username:              "testuser",
		PasswordHash:          "$argon2id$stub",
		EncryptedRecoveryCode: []byte("old-encrypted"),
	}
	require.NoError(t, store.CreateUser(context.Background(), user))
	return user
}

func TestMemoryStoreRecoveryCodeSwap(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("swap applies once", func(t *testing.T) {
		t.Parallel()
		store := auth.NewMemoryStore()
		user := seedUser(t, store)
		require.NoError(t, store.UpdateUserTOTPKey(ctx, user.ID, []byte("encrypted-key")))
		require.NoError(t, store.CreateSession(ctx, &auth.Session{
			ID: "sess", UserID: user.ID, ExpiresAt: time.Now().Add(time.Hour), TwoFactorVerified: true,
		}))

		swapped, err := store.ReplaceRecoveryCodeAndClearTOTPKey(ctx, user.ID, []byte("old-encrypted"), []byte("new-encrypted"))
		require.NoError(t, err)
		assert.True(t, swapped)

		code, err := store.UserRecoveryCode(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, []byte("new-encrypted"), code)

		key, err := store.UserTOTPKey(ctx, user.ID)
		require.NoError(t, err)
		assert.Nil(t, key)

		sess, _, err := store.SessionWithUser(ctx, "sess")
		require.NoError(t, err)
		assert.False(t, sess.TwoFactorVerified)

		// Replaying the stale expected value loses.
		swapped, err = store.ReplaceRecoveryCodeAndClearTOTPKey(ctx, user.ID, []byte("old-encrypted"), []byte("other"))
		require.NoError(t, err)
		assert.False(t, swapped)
	})

	t.Run("sessions are demoted even when the swap loses", func(t *testing.T) {
		t.Parallel()
		store := auth.NewMemoryStore()
		user := seedUser(t, store)
		require.NoError(t, store.CreateSession(ctx, &auth.Session{
			ID: "sess", UserID: user.ID, ExpiresAt: time.Now().Add(time.Hour), TwoFactorVerified: true,
		}))

		swapped, err := store.ReplaceRecoveryCodeAndClearTOTPKey(ctx, user.ID, []byte("stale"), []byte("new"))
		require.NoError(t, err)
		assert.False(t, swapped)

		sess, _, err := store.SessionWithUser(ctx, "sess")
		require.NoError(t, err)
		assert.False(t, sess.TwoFactorVerified)
	})
}

func TestMemoryStoreEmailConditionalVerify(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := auth.NewMemoryStore()
	user := seedUser(t, store)

	matched, err := store.SetUserEmailVerifiedIfMatches(ctx, user.ID, "stale@example.com")
	require.NoError(t, err)
	assert.False(t, matched)

	matched, err = store.SetUserEmailVerifiedIfMatches(ctx, user.ID, user.Email)
	require.NoError(t, err)
	assert.True(t, matched)

	got, err := store.UserByEmail(ctx, user.Email)
	require.NoError(t, err)
	assert.True(t, got.EmailVerified)
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := auth.NewMemoryStore()
	user := seedUser(t, store)
	require.NoError(t, store.CreateSession(ctx, &auth.Session{
		ID: "sess", UserID: user.ID, ExpiresAt: time.Now().Add(time.Hour),
	}))

	sess, _, err := store.SessionWithUser(ctx, "sess")
	require.NoError(t, err)
	sess.TwoFactorVerified = true

	again, _, err := store.SessionWithUser(ctx, "sess")
	require.NoError(t, err)
	assert.False(t, again.TwoFactorVerified, "mutating a returned session must not leak into the store")
}
