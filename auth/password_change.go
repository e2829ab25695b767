package auth

import (
	"context"
	"fmt"

	"github.com/dmitrymomot/authkit/pkg/password"
)

// ChangePassword verifies the current password, replaces the hash, and
// rotates every session of the user into a single fresh one that
// inherits the current session's second-factor state. It returns the
// new bearer token and the created session.
//
// Attempts are throttled per session so a stolen cookie cannot grind
// through password guesses.
func (s *Service) ChangePassword(ctx context.Context, session *Session, currentPassword, newPassword string) (string, *Session, error) {
	if !s.passwordUpdateBucket.Check(session.ID, 1) {
		return "", nil, ErrRateLimited
	}
	if err := ValidatePasswordStrength(newPassword); err != nil {
		return "", nil, err
	}
	if !s.passwordUpdateBucket.Consume(session.ID, 1) {
		return "", nil, ErrRateLimited
	}
	if err := s.VerifyUserPassword(ctx, session.UserID, currentPassword); err != nil {
		return "", nil, err
	}
	s.passwordUpdateBucket.Reset(session.ID)

	hash, err := password.Hash(newPassword)
	if err != nil {
		return "", nil, fmt.Errorf("change password: %w", err)
	}
	if err := s.store.UpdateUserPassword(ctx, session.UserID, hash); err != nil {
		return "", nil, fmt.Errorf("change password: %w", err)
	}
	if err := s.store.DeleteUserSessions(ctx, session.UserID); err != nil {
		return "", nil, fmt.Errorf("change password: %w", err)
	}

	token, err := GenerateSessionToken()
	if err != nil {
		return "", nil, fmt.Errorf("change password: %w", err)
	}
	fresh, err := s.CreateSession(ctx, token, session.UserID, SessionFlags{TwoFactorVerified: session.TwoFactorVerified}, 0)
	if err != nil {
		return "", nil, err
	}

	s.log.InfoContext(ctx, "password changed", "user_id", session.UserID.String())
	return token, fresh, nil
}

// ResetPassword completes a password reset flow. The reset session must
// have passed the email challenge and, for users enrolled in 2FA, the
// second factor. All reset sessions and login sessions of the user are
// invalidated and replaced with one fresh session carrying the reset
// session's second-factor state.
func (s *Service) ResetPassword(ctx context.Context, resetSession *PasswordResetSession, user *User, newPassword string) (string, *Session, error) {
	if !resetSession.EmailVerified {
		return "", nil, fmt.Errorf("%w: email not verified", ErrInvalidInput)
	}
	if user.Registered2FA && !resetSession.TwoFactorVerified {
		return "", nil, fmt.Errorf("%w: second factor not verified", ErrInvalidInput)
	}
	if err := ValidatePasswordStrength(newPassword); err != nil {
		return "", nil, err
	}

	hash, err := password.Hash(newPassword)
	if err != nil {
		return "", nil, fmt.Errorf("reset password: %w", err)
	}
	if err := s.store.DeleteUserPasswordResetSessions(ctx, resetSession.UserID); err != nil {
		return "", nil, fmt.Errorf("reset password: %w", err)
	}
	if err := s.store.DeleteUserSessions(ctx, resetSession.UserID); err != nil {
		return "", nil, fmt.Errorf("reset password: %w", err)
	}
	if err := s.store.UpdateUserPassword(ctx, resetSession.UserID, hash); err != nil {
		return "", nil, fmt.Errorf("reset password: %w", err)
	}

	token, err := GenerateSessionToken()
	if err != nil {
		return "", nil, fmt.Errorf("reset password: %w", err)
	}
	fresh, err := s.CreateSession(ctx, token, resetSession.UserID, SessionFlags{TwoFactorVerified: resetSession.TwoFactorVerified}, 0)
	if err != nil {
		return "", nil, err
	}

	s.log.InfoContext(ctx, "password reset completed", "user_id", resetSession.UserID.String())
	return token, fresh, nil
}
