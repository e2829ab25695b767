package auth

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dmitrymomot/authkit/pkg/codec"
	"github.com/dmitrymomot/authkit/pkg/otp"
	"github.com/dmitrymomot/authkit/pkg/qrcode"
)

// UserTOTPKey returns the user's decrypted TOTP key, or nil when no
// second factor is enrolled.
func (s *Service) UserTOTPKey(ctx context.Context, userID uuid.UUID) ([]byte, error) {
	encrypted, err := s.store.UserTOTPKey(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user totp key: %w", err)
	}
	if encrypted == nil {
		return nil, nil
	}
	key, err := s.secret.Decrypt(encrypted)
	if err != nil {
		return nil, fmt.Errorf("user totp key: %w", err)
	}
	return key, nil
}

// UpdateUserTOTPKey seals and stores a new TOTP key, enrolling the user
// in 2FA.
func (s *Service) UpdateUserTOTPKey(ctx context.Context, userID uuid.UUID, key []byte) error {
	encrypted, err := s.secret.Encrypt(key)
	if err != nil {
		return fmt.Errorf("update user totp key: %w", err)
	}
	if err := s.store.UpdateUserTOTPKey(ctx, userID, encrypted); err != nil {
		return fmt.Errorf("update user totp key: %w", err)
	}
	s.log.InfoContext(ctx, "totp key updated", "user_id", userID.String())
	return nil
}

// TOTPKeyURI renders an otpauth enrollment URI for key under the
// configured issuer, suitable for QR encoding.
func (s *Service) TOTPKeyURI(accountName string, key []byte) string {
	return otp.KeyURI(s.cfg.TOTPIssuer, accountName, key, s.cfg.TOTPPeriod, s.cfg.TOTPDigits)
}

// TOTPEnrollment is the material shown once during 2FA setup.
type TOTPEnrollment struct {
	Key     []byte
	KeyURI  string
	QRImage string // data:image/png;base64 URI for inline rendering
}

// BeginTOTPEnrollment generates a fresh TOTP key for the user and
// renders its enrollment URI and QR image. The key is not persisted;
// call UpdateUserTOTPKey after the user proves possession with a valid
// code.
func (s *Service) BeginTOTPEnrollment(accountName string) (*TOTPEnrollment, error) {
	key, err := otp.GenerateKey()
	if err != nil {
		return nil, fmt.Errorf("begin totp enrollment: %w", err)
	}
	uri := s.TOTPKeyURI(accountName, key)
	img, err := qrcode.GenerateBase64Image(uri, 0)
	if err != nil {
		return nil, fmt.Errorf("begin totp enrollment: %w", err)
	}
	return &TOTPEnrollment{Key: key, KeyURI: uri, QRImage: img}, nil
}

// VerifyUserTOTP checks a TOTP code against the user's enrolled key,
// accepting codes within the configured grace period. Attempts are
// throttled per user; a successful verification restores the budget.
func (s *Service) VerifyUserTOTP(ctx context.Context, userID uuid.UUID, code string) error {
	if !s.totpBucket.Check(userID, 1) {
		return ErrRateLimited
	}
	key, err := s.UserTOTPKey(ctx, userID)
	if err != nil {
		return err
	}
	if key == nil {
		return ErrNotEnrolled
	}
	if !s.totpBucket.Consume(userID, 1) {
		return ErrRateLimited
	}
	ok, err := otp.VerifyTOTPWithGracePeriod(key, s.cfg.TOTPPeriod, s.cfg.TOTPDigits, code, s.cfg.TOTPGracePeriod)
	if err != nil {
		return fmt.Errorf("verify user totp: %w", err)
	}
	if !ok {
		return ErrInvalidCode
	}
	s.totpBucket.Reset(userID)
	return nil
}

// UserRecoveryCode returns the user's decrypted recovery code.
func (s *Service) UserRecoveryCode(ctx context.Context, userID uuid.UUID) (string, error) {
	encrypted, err := s.store.UserRecoveryCode(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("user recovery code: %w", err)
	}
	code, err := s.secret.DecryptToString(encrypted)
	if err != nil {
		return "", fmt.Errorf("user recovery code: %w", err)
	}
	return code, nil
}

// ResetUserRecoveryCode replaces the recovery code with a fresh one and
// returns it in plaintext for one-time display.
func (s *Service) ResetUserRecoveryCode(ctx context.Context, userID uuid.UUID) (string, error) {
	code, err := otp.GenerateRecoveryCode()
	if err != nil {
		return "", fmt.Errorf("reset user recovery code: %w", err)
	}
	encrypted, err := s.secret.EncryptString(code)
	if err != nil {
		return "", fmt.Errorf("reset user recovery code: %w", err)
	}
	if err := s.store.UpdateUserRecoveryCode(ctx, userID, encrypted); err != nil {
		return "", fmt.Errorf("reset user recovery code: %w", err)
	}
	return code, nil
}

// ResetUser2FAWithRecoveryCode redeems a recovery code: on match it
// demotes the user's sessions to not-2FA-verified, rotates the recovery
// code, and clears the TOTP key, all guarded by a compare-and-swap on
// the stored code. A concurrent redemption that wins the swap first
// leaves the loser with ErrReplayConflict. Attempts are throttled per
// user.
func (s *Service) ResetUser2FAWithRecoveryCode(ctx context.Context, userID uuid.UUID, code string) error {
	if !s.recoveryBucket.Check(userID, 1) {
		return ErrRateLimited
	}
	stored, err := s.store.UserRecoveryCode(ctx, userID)
	if err != nil {
		return fmt.Errorf("reset 2fa with recovery code: %w", err)
	}
	plaintext, err := s.secret.DecryptToString(stored)
	if err != nil {
		return fmt.Errorf("reset 2fa with recovery code: %w", err)
	}
	if !s.recoveryBucket.Consume(userID, 1) {
		return ErrRateLimited
	}
	if !codec.ConstantTimeEqual([]byte(code), []byte(plaintext)) {
		return ErrInvalidRecoveryCode
	}

	next, err := otp.GenerateRecoveryCode()
	if err != nil {
		return fmt.Errorf("reset 2fa with recovery code: %w", err)
	}
	encrypted, err := s.secret.EncryptString(next)
	if err != nil {
		return fmt.Errorf("reset 2fa with recovery code: %w", err)
	}
	swapped, err := s.store.ReplaceRecoveryCodeAndClearTOTPKey(ctx, userID, stored, encrypted)
	if err != nil {
		return fmt.Errorf("reset 2fa with recovery code: %w", err)
	}
	if !swapped {
		return ErrReplayConflict
	}

	s.recoveryBucket.Reset(userID)
	s.log.InfoContext(ctx, "second factor reset with recovery code", "user_id", userID.String())
	return nil
}
