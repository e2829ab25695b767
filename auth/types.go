package auth

import (
	"time"

	"github.com/google/uuid"
)

// User is the public projection of an account. Credential material
// (password hash, TOTP key, recovery code) never appears here; it is
// fetched through dedicated Store methods.
type User struct {
	ID            uuid.UUID `json:"id"`
	Email         string    `json:"email"`
	Username      string    `json:"username"`
	EmailVerified bool      `json:"email_verified"`
	Registered2FA bool      `json:"registered_2fa"`
}

// SessionFlags carries the per-session verification state set at
// creation time.
type SessionFlags struct {
	TwoFactorVerified bool
}

// Session is an authenticated login session. ID is the hex-encoded
// SHA-256 digest of the bearer token, never the token itself.
type Session struct {
	ID                string    `json:"id"`
	UserID            uuid.UUID `json:"user_id"`
	ExpiresAt         time.Time `json:"expires_at"`
	TwoFactorVerified bool      `json:"two_factor_verified"`
}

// PasswordResetSession tracks a password reset flow. The flow must
// verify the email code and, for users enrolled in 2FA, the second
// factor before the password may change.
type PasswordResetSession struct {
	ID                string    `json:"id"`
	UserID            uuid.UUID `json:"user_id"`
	Email             string    `json:"email"`
	Code              string    `json:"-"`
	ExpiresAt         time.Time `json:"expires_at"`
	EmailVerified     bool      `json:"email_verified"`
	TwoFactorVerified bool      `json:"two_factor_verified"`
}

// EmailVerificationRequest is a pending challenge proving the user
// controls an email address.
type EmailVerificationRequest struct {
	ID        string    `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Email     string    `json:"email"`
	Code      string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
}

// NewUser is the input to Store.CreateUser. The Service fills all
// fields; Store implementations persist them verbatim.
type NewUser struct {
	ID                    uuid.UUID
	Email                 string
	Username              string
	PasswordHash          string
	EncryptedRecoveryCode []byte
}
