package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dmitrymomot/authkit/pkg/codec"
	"github.com/dmitrymomot/authkit/pkg/otp"
)

// CreatePasswordResetSession opens a password reset flow for the digest
// of token, bound to the email the reset was requested for. Any earlier
// reset sessions of the user are discarded first.
func (s *Service) CreatePasswordResetSession(ctx context.Context, token string, userID uuid.UUID, email string) (*PasswordResetSession, error) {
	code, err := otp.GenerateCode()
	if err != nil {
		return nil, fmt.Errorf("create password reset session: %w", err)
	}
	if err := s.store.DeleteUserPasswordResetSessions(ctx, userID); err != nil {
		return nil, fmt.Errorf("create password reset session: %w", err)
	}
	session := &PasswordResetSession{
		ID:        SessionIDFromToken(token),
		UserID:    userID,
		Email:     email,
		Code:      code,
		ExpiresAt: s.now().Add(s.cfg.PasswordResetTTL),
	}
	if err := s.store.CreatePasswordResetSession(ctx, session); err != nil {
		return nil, fmt.Errorf("create password reset session: %w", err)
	}
	return session, nil
}

// ValidatePasswordResetSessionToken resolves a reset token to its
// session and user. Absent or expired sessions return (nil, nil, nil);
// expiry deletes the row on first observation.
func (s *Service) ValidatePasswordResetSessionToken(ctx context.Context, token string) (*PasswordResetSession, *User, error) {
	session, user, err := s.store.PasswordResetSessionWithUser(ctx, SessionIDFromToken(token))
	if errors.Is(err, ErrNotFound) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("validate password reset session token: %w", err)
	}
	if !s.now().Before(session.ExpiresAt) {
		if err := s.store.DeletePasswordResetSession(ctx, session.ID); err != nil {
			return nil, nil, fmt.Errorf("delete expired password reset session: %w", err)
		}
		return nil, nil, nil
	}
	return session, user, nil
}

// VerifyPasswordResetEmail checks the emailed code against the reset
// session. On match the session's email challenge is marked passed and,
// if the account email still equals the session email, the account
// email is marked verified too.
func (s *Service) VerifyPasswordResetEmail(ctx context.Context, session *PasswordResetSession, code string) error {
	if session.EmailVerified {
		return nil
	}
	if !codec.ConstantTimeEqual([]byte(code), []byte(session.Code)) {
		return ErrInvalidCode
	}
	if err := s.store.SetPasswordResetSessionEmailVerified(ctx, session.ID); err != nil {
		return fmt.Errorf("verify password reset email: %w", err)
	}
	matched, err := s.store.SetUserEmailVerifiedIfMatches(ctx, session.UserID, session.Email)
	if err != nil {
		return fmt.Errorf("verify password reset email: %w", err)
	}
	if !matched {
		// Account email changed while the reset was pending. The reset
		// session targets a stale address and must not proceed.
		if err := s.store.DeletePasswordResetSession(ctx, session.ID); err != nil {
			return fmt.Errorf("verify password reset email: %w", err)
		}
		return fmt.Errorf("%w: account email changed", ErrInvalidInput)
	}
	session.EmailVerified = true
	return nil
}

// SetPasswordResetSessionTwoFactorVerified marks the reset session's
// second factor as passed.
func (s *Service) SetPasswordResetSessionTwoFactorVerified(ctx context.Context, sessionID string) error {
	if err := s.store.SetPasswordResetSessionTwoFactorVerified(ctx, sessionID); err != nil {
		return fmt.Errorf("set password reset session two factor verified: %w", err)
	}
	return nil
}

// InvalidateUserPasswordResetSessions discards every open reset flow
// for the user.
func (s *Service) InvalidateUserPasswordResetSessions(ctx context.Context, userID uuid.UUID) error {
	if err := s.store.DeleteUserPasswordResetSessions(ctx, userID); err != nil {
		return fmt.Errorf("invalidate user password reset sessions: %w", err)
	}
	return nil
}
