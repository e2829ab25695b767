package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/auth"
)

func TestGenerateSessionToken(t *testing.T) {
	t.Parallel()

	token, err := auth.GenerateSessionToken()
	require.NoError(t, err)
	assert.Len(t, token, 32)
	assert.Regexp(t, "^[a-z2-7]+$", token)

	other, err := auth.GenerateSessionToken()
	require.NoError(t, err)
	assert.NotEqual(t, token, other)
}

func TestSessionIDFromToken(t *testing.T) {
	t.Parallel()

	id := auth.SessionIDFromToken("some-token")
	assert.Len(t, id, 64)
	assert.Regexp(t, "^[0-9a-f]+$", id)
	assert.NotContains(t, id, "some-token")
	assert.Equal(t, id, auth.SessionIDFromToken("some-token"))
}

func TestCreateSession(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("explicit duration", func(t *testing.T) {
		t.Parallel()
		svc, _, clock := newTestService(t)
		user := createTestUser(t, svc)

		token, err := auth.GenerateSessionToken()
		require.NoError(t, err)
		session, err := svc.CreateSession(ctx, token, user.ID, auth.SessionFlags{TwoFactorVerified: true}, 48)
		require.NoError(t, err)

		assert.Equal(t, auth.SessionIDFromToken(token), session.ID)
		assert.Equal(t, user.ID, session.UserID)
		assert.True(t, session.TwoFactorVerified)
		assert.Equal(t, clock.Now().Add(48*time.Hour), session.ExpiresAt)
	})

	t.Run("browser session gets the cleanup floor", func(t *testing.T) {
		t.Parallel()
		svc, _, clock := newTestService(t)
		user := createTestUser(t, svc)

		token, err := auth.GenerateSessionToken()
		require.NoError(t, err)
		session, err := svc.CreateSession(ctx, token, user.ID, auth.SessionFlags{}, 0)
		require.NoError(t, err)
		assert.Equal(t, clock.Now().Add(24*time.Hour), session.ExpiresAt)
	})
}

func TestValidateSessionToken(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("valid session", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := newTestService(t)
		user := createTestUser(t, svc)
		token, created := createTestSession(t, svc, user, auth.SessionFlags{})

		session, gotUser, err := svc.ValidateSessionToken(ctx, token)
		require.NoError(t, err)
		require.NotNil(t, session)
		require.NotNil(t, gotUser)
		assert.Equal(t, created.ID, session.ID)
		assert.Equal(t, user.ID, gotUser.ID)
	})

	t.Run("unknown token is absent, not an error", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := newTestService(t)
		createTestUser(t, svc)

		session, user, err := svc.ValidateSessionToken(ctx, "no-such-token")
		require.NoError(t, err)
		assert.Nil(t, session)
		assert.Nil(t, user)
	})

	t.Run("expired session is deleted on first read", func(t *testing.T) {
		t.Parallel()
		svc, store, clock := newTestService(t)
		user := createTestUser(t, svc)
		token, created := createTestSession(t, svc, user, auth.SessionFlags{})

		clock.Advance(24*time.Hour + time.Second)

		session, gotUser, err := svc.ValidateSessionToken(ctx, token)
		require.NoError(t, err)
		assert.Nil(t, session)
		assert.Nil(t, gotUser)

		// The row is gone; a second validation takes the absent path.
		_, _, err = store.SessionWithUser(ctx, created.ID)
		assert.ErrorIs(t, err, auth.ErrNotFound)

		session, gotUser, err = svc.ValidateSessionToken(ctx, token)
		require.NoError(t, err)
		assert.Nil(t, session)
		assert.Nil(t, gotUser)
	})
}

func TestSessionLifecycle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("two factor promotion", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := newTestService(t)
		user := createTestUser(t, svc)
		token, session := createTestSession(t, svc, user, auth.SessionFlags{})
		assert.False(t, session.TwoFactorVerified)

		require.NoError(t, svc.SetSessionTwoFactorVerified(ctx, session.ID))

		got, _, err := svc.ValidateSessionToken(ctx, token)
		require.NoError(t, err)
		assert.True(t, got.TwoFactorVerified)
	})

	t.Run("invalidate single session", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := newTestService(t)
		user := createTestUser(t, svc)
		token, session := createTestSession(t, svc, user, auth.SessionFlags{})

		require.NoError(t, svc.InvalidateSession(ctx, session.ID))
		got, _, err := svc.ValidateSessionToken(ctx, token)
		require.NoError(t, err)
		assert.Nil(t, got)

		// Idempotent.
		require.NoError(t, svc.InvalidateSession(ctx, session.ID))
	})

	t.Run("invalidate all user sessions", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := newTestService(t)
		user := createTestUser(t, svc)
		tokenA, _ := createTestSession(t, svc, user, auth.SessionFlags{})
		tokenB, _ := createTestSession(t, svc, user, auth.SessionFlags{})

		require.NoError(t, svc.InvalidateUserSessions(ctx, user.ID))

		for _, token := range []string{tokenA, tokenB} {
			got, _, err := svc.ValidateSessionToken(ctx, token)
			require.NoError(t, err)
			assert.Nil(t, got)
		}
	})
}
