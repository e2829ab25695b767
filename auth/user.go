package auth

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrymomot/authkit/pkg/otp"
	"github.com/dmitrymomot/authkit/pkg/password"
)

var emailPattern = regexp.MustCompile(`^.+@.+\..+$`)

// ValidateEmailInput checks the syntactic shape of an email address.
// Deliverability is proven separately through the verification flow.
func ValidateEmailInput(email string) error {
	if len(email) >= 256 || !emailPattern.MatchString(email) {
		return fmt.Errorf("%w: malformed email address", ErrInvalidInput)
	}
	return nil
}

// ValidateUsernameInput checks username length and surrounding
// whitespace.
func ValidateUsernameInput(username string) error {
	if len(username) <= 3 || len(username) >= 32 || strings.TrimSpace(username) != username {
		return fmt.Errorf("%w: username must be 4-31 characters without surrounding whitespace", ErrInvalidInput)
	}
	return nil
}

// ValidatePasswordStrength enforces the minimum password policy.
func ValidatePasswordStrength(pw string) error {
	if len(pw) < 8 || len(pw) > 255 {
		return fmt.Errorf("%w: password must be 8-255 characters", ErrWeakPassword)
	}
	return nil
}

// CreateUser registers an account with a freshly generated, envelope
// sealed recovery code. The caller is expected to have validated the
// inputs; the store still enforces email uniqueness.
func (s *Service) CreateUser(ctx context.Context, email, username, pw string) (*User, error) {
	hash, err := password.Hash(pw)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	code, err := otp.GenerateRecoveryCode()
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	encryptedCode, err := s.secret.EncryptString(code)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	user := NewUser{
		ID:                    uuid.New(),
		Email:                 email,
		Username:              username,
		PasswordHash:          hash,
		EncryptedRecoveryCode: encryptedCode,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.InfoContext(ctx, "user created", "user_id", user.ID.String())
	return &User{ID: user.ID, Email: email, Username: username}, nil
}

// UserByEmail returns the account registered under email.
func (s *Service) UserByEmail(ctx context.Context, email string) (*User, error) {
	user, err := s.store.UserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("user by email: %w", err)
	}
	return user, nil
}

// CheckEmailAvailability reports whether email is free to register.
func (s *Service) CheckEmailAvailability(ctx context.Context, email string) (bool, error) {
	available, err := s.store.EmailAvailable(ctx, email)
	if err != nil {
		return false, fmt.Errorf("check email availability: %w", err)
	}
	return available, nil
}

// VerifyUserPassword checks pw against the stored hash, returning
// ErrInvalidPassword on mismatch.
func (s *Service) VerifyUserPassword(ctx context.Context, userID uuid.UUID, pw string) error {
	hash, err := s.store.UserPasswordHash(ctx, userID)
	if err != nil {
		return fmt.Errorf("verify user password: %w", err)
	}
	if err := password.Verify(hash, pw); err != nil {
		return ErrInvalidPassword
	}
	return nil
}
