package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dmitrymomot/authkit/pkg/codec"
	"github.com/dmitrymomot/authkit/pkg/email"
	"github.com/dmitrymomot/authkit/pkg/otp"
)

// CreateEmailVerificationRequest opens a challenge proving the user
// controls email. Any earlier requests of the user are discarded first.
func (s *Service) CreateEmailVerificationRequest(ctx context.Context, userID uuid.UUID, email string) (*EmailVerificationRequest, error) {
	if err := s.store.DeleteUserEmailVerificationRequests(ctx, userID); err != nil {
		return nil, fmt.Errorf("create email verification request: %w", err)
	}
	idBytes := make([]byte, 20)
	if _, err := rand.Read(idBytes); err != nil {
		return nil, fmt.Errorf("create email verification request: %w", err)
	}
	code, err := otp.GenerateCode()
	if err != nil {
		return nil, fmt.Errorf("create email verification request: %w", err)
	}
	req := &EmailVerificationRequest{
		ID:        codec.EncodeBase32(idBytes, codec.WithBase32Lowercase()),
		UserID:    userID,
		Email:     email,
		Code:      code,
		ExpiresAt: s.now().Add(s.cfg.EmailVerificationTTL),
	}
	if err := s.store.CreateEmailVerificationRequest(ctx, req); err != nil {
		return nil, fmt.Errorf("create email verification request: %w", err)
	}
	return req, nil
}

// UserEmailVerificationRequest returns the user's pending request with
// the given ID. Expired requests are deleted on first observation and
// reported as ErrNotFound.
func (s *Service) UserEmailVerificationRequest(ctx context.Context, userID uuid.UUID, id string) (*EmailVerificationRequest, error) {
	req, err := s.store.EmailVerificationRequestByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("user email verification request: %w", err)
	}
	if !s.now().Before(req.ExpiresAt) {
		if err := s.store.DeleteUserEmailVerificationRequests(ctx, userID); err != nil {
			return nil, fmt.Errorf("delete expired email verification request: %w", err)
		}
		return nil, ErrNotFound
	}
	return req, nil
}

// VerifyEmailRequest checks the emailed code against the request. On
// match the account email is replaced with the verified address and any
// reset flows targeting the old email are discarded.
func (s *Service) VerifyEmailRequest(ctx context.Context, req *EmailVerificationRequest, code string) error {
	if !codec.ConstantTimeEqual([]byte(code), []byte(req.Code)) {
		return ErrInvalidCode
	}
	if err := s.store.DeleteUserEmailVerificationRequests(ctx, req.UserID); err != nil {
		return fmt.Errorf("verify email request: %w", err)
	}
	if err := s.store.UpdateUserEmailAndSetVerified(ctx, req.UserID, req.Email); err != nil {
		return fmt.Errorf("verify email request: %w", err)
	}
	if err := s.store.DeleteUserPasswordResetSessions(ctx, req.UserID); err != nil {
		return fmt.Errorf("verify email request: %w", err)
	}
	s.log.InfoContext(ctx, "email verified", "user_id", req.UserID.String())
	return nil
}

// SendVerificationEmail delivers the request's code to its address,
// throttled per user.
func (s *Service) SendVerificationEmail(ctx context.Context, req *EmailVerificationRequest) error {
	if s.sender == nil {
		return ErrNoSender
	}
	if !s.emailBucket.Consume(req.UserID, 1) {
		return ErrRateLimited
	}
	msg := email.VerificationCodeEmail(req.Email, req.Code)
	if err := s.sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("send verification email: %w", err)
	}
	s.log.InfoContext(ctx, "verification email sent", "user_id", req.UserID.String())
	return nil
}

// SendPasswordResetEmail delivers the reset session's code to its
// address, throttled per user.
func (s *Service) SendPasswordResetEmail(ctx context.Context, session *PasswordResetSession) error {
	if s.sender == nil {
		return ErrNoSender
	}
	if !s.emailBucket.Consume(session.UserID, 1) {
		return ErrRateLimited
	}
	msg := email.PasswordResetCodeEmail(session.Email, session.Code)
	if err := s.sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("send password reset email: %w", err)
	}
	s.log.InfoContext(ctx, "password reset email sent", "user_id", session.UserID.String())
	return nil
}
