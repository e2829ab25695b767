package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/auth"
)

func TestCreateEmailVerificationRequest(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, _, clock := newTestService(t)
	user := createTestUser(t, svc)

	req, err := svc.CreateEmailVerificationRequest(ctx, user.ID, "new@example.com")
	require.NoError(t, err)
	assert.Len(t, req.ID, 32)
	assert.Regexp(t, "^[a-z2-7]+$", req.ID)
	assert.Len(t, req.Code, 8)
	assert.Equal(t, "new@example.com", req.Email)
	assert.Equal(t, clock.Now().Add(10*time.Minute), req.ExpiresAt)

	// A new request replaces the previous one.
	second, err := svc.CreateEmailVerificationRequest(ctx, user.ID, "new@example.com")
	require.NoError(t, err)
	_, err = svc.UserEmailVerificationRequest(ctx, user.ID, req.ID)
	assert.ErrorIs(t, err, auth.ErrNotFound)
	got, err := svc.UserEmailVerificationRequest(ctx, user.ID, second.ID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, got.ID)
}

func TestUserEmailVerificationRequest(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("scoped to the owning user", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := newTestService(t)
		user := createTestUser(t, svc)
		other, err := svc.CreateUser(ctx, "other@example.com", "otheruser", "another password")
		require.NoError(t, err)

		req, err := svc.CreateEmailVerificationRequest(ctx, user.ID, "new@example.com")
		require.NoError(t, err)

		_, err = svc.UserEmailVerificationRequest(ctx, other.ID, req.ID)
		assert.ErrorIs(t, err, auth.ErrNotFound)
	})

	t.Run("expired request is deleted on first read", func(t *testing.T) {
		t.Parallel()
		svc, _, clock := newTestService(t)
		user := createTestUser(t, svc)
		req, err := svc.CreateEmailVerificationRequest(ctx, user.ID, "new@example.com")
		require.NoError(t, err)

		clock.Advance(10*time.Minute + time.Second)

		_, err = svc.UserEmailVerificationRequest(ctx, user.ID, req.ID)
		assert.ErrorIs(t, err, auth.ErrNotFound)
	})
}

func TestVerifyEmailRequest(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("wrong code", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := newTestService(t)
		user := createTestUser(t, svc)
		req, err := svc.CreateEmailVerificationRequest(ctx, user.ID, "new@example.com")
		require.NoError(t, err)

		assert.ErrorIs(t, svc.VerifyEmailRequest(ctx, req, "WRONG123"), auth.ErrInvalidCode)
	})

	t.Run("right code moves and verifies the address", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := newTestService(t)
		user := createTestUser(t, svc)
		req, err := svc.CreateEmailVerificationRequest(ctx, user.ID, "new@example.com")
		require.NoError(t, err)

		require.NoError(t, svc.VerifyEmailRequest(ctx, req, req.Code))

		got, err := svc.UserByEmail(ctx, "new@example.com")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
		assert.True(t, got.EmailVerified)

		// The request is consumed.
		_, err = svc.UserEmailVerificationRequest(ctx, user.ID, req.ID)
		assert.ErrorIs(t, err, auth.ErrNotFound)
	})
}

func TestSendEmails(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("requires a configured sender", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := newTestService(t)
		user := createTestUser(t, svc)
		req, err := svc.CreateEmailVerificationRequest(ctx, user.ID, "new@example.com")
		require.NoError(t, err)

		assert.ErrorIs(t, svc.SendVerificationEmail(ctx, req), auth.ErrNoSender)
	})

	t.Run("delivers the verification code", func(t *testing.T) {
		t.Parallel()
		sender := &recordingSender{}
		svc, _, _ := newTestService(t, auth.WithEmailSender(sender))
		user := createTestUser(t, svc)
		req, err := svc.CreateEmailVerificationRequest(ctx, user.ID, "new@example.com")
		require.NoError(t, err)

		require.NoError(t, svc.SendVerificationEmail(ctx, req))
		require.Equal(t, 1, sender.count())
		assert.Equal(t, "new@example.com", sender.sent[0].SendTo)
		assert.Contains(t, sender.sent[0].BodyHTML, req.Code)
	})

	t.Run("delivers the reset code", func(t *testing.T) {
		t.Parallel()
		sender := &recordingSender{}
		svc, _, _ := newTestService(t, auth.WithEmailSender(sender))
		user := createTestUser(t, svc)
		_, session := startReset(t, svc, user)

		require.NoError(t, svc.SendPasswordResetEmail(ctx, session))
		require.Equal(t, 1, sender.count())
		assert.Equal(t, user.Email, sender.sent[0].SendTo)
		assert.Contains(t, sender.sent[0].BodyHTML, session.Code)
	})

	t.Run("throttles sends per user", func(t *testing.T) {
		t.Parallel()
		sender := &recordingSender{}
		cfg := auth.DefaultConfig()
		cfg.EmailSendAttempts = 2
		svc, _, _ := newTestService(t, auth.WithEmailSender(sender), auth.WithConfig(cfg))
		user := createTestUser(t, svc)
		req, err := svc.CreateEmailVerificationRequest(ctx, user.ID, "new@example.com")
		require.NoError(t, err)

		require.NoError(t, svc.SendVerificationEmail(ctx, req))
		require.NoError(t, svc.SendVerificationEmail(ctx, req))
		assert.ErrorIs(t, svc.SendVerificationEmail(ctx, req), auth.ErrRateLimited)
		assert.Equal(t, 2, sender.count())
	})
}
