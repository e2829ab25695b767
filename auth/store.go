package auth

import (
	"context"

	"github.com/google/uuid"
)

// Store persists users, sessions, password reset sessions, and email
// verification requests. Implementations return ErrNotFound for absent
// records and ErrEmailTaken for unique email violations; all other
// failures pass through wrapped.
//
// Stores persist state only. Expiry checks, rate limiting, and secret
// comparison live in the Service so every implementation shares the
// same verification semantics.
type Store interface {
	// CreateUser inserts a new account.
	CreateUser(ctx context.Context, user NewUser) error

	// UserByEmail returns the account registered under email.
	UserByEmail(ctx context.Context, email string) (*User, error)

	// EmailAvailable reports whether no account uses email.
	EmailAvailable(ctx context.Context, email string) (bool, error)

	// UserPasswordHash returns the stored password hash for userID.
	UserPasswordHash(ctx context.Context, userID uuid.UUID) (string, error)

	// UpdateUserPassword replaces the stored password hash.
	UpdateUserPassword(ctx context.Context, userID uuid.UUID, passwordHash string) error

	// UpdateUserEmailAndSetVerified replaces the account email and marks
	// it verified in one write.
	UpdateUserEmailAndSetVerified(ctx context.Context, userID uuid.UUID, email string) error

	// SetUserEmailVerifiedIfMatches marks the account email verified only
	// if it still equals email, reporting whether the write applied.
	SetUserEmailVerifiedIfMatches(ctx context.Context, userID uuid.UUID, email string) (bool, error)

	// UserTOTPKey returns the encrypted TOTP key, or nil when the user
	// has not enrolled a second factor.
	UserTOTPKey(ctx context.Context, userID uuid.UUID) ([]byte, error)

	// UpdateUserTOTPKey replaces the encrypted TOTP key.
	UpdateUserTOTPKey(ctx context.Context, userID uuid.UUID, encryptedKey []byte) error

	// UserRecoveryCode returns the encrypted recovery code.
	UserRecoveryCode(ctx context.Context, userID uuid.UUID) ([]byte, error)

	// UpdateUserRecoveryCode replaces the encrypted recovery code.
	UpdateUserRecoveryCode(ctx context.Context, userID uuid.UUID, encryptedCode []byte) error

	// ReplaceRecoveryCodeAndClearTOTPKey demotes every session of the
	// user to not-2FA-verified, then swaps the recovery code and clears
	// the TOTP key only if the stored code still equals oldEncryptedCode.
	// The swap is a single conditional write; false means a concurrent
	// redemption already rotated the code.
	ReplaceRecoveryCodeAndClearTOTPKey(ctx context.Context, userID uuid.UUID, oldEncryptedCode, newEncryptedCode []byte) (bool, error)

	// CreateSession inserts a session row.
	CreateSession(ctx context.Context, session *Session) error

	// SessionWithUser returns the session and its owning user.
	SessionWithUser(ctx context.Context, sessionID string) (*Session, *User, error)

	// SetSessionTwoFactorVerified marks the session as having passed the
	// second factor.
	SetSessionTwoFactorVerified(ctx context.Context, sessionID string) error

	// DeleteSession removes a session. Deleting an absent session is not
	// an error.
	DeleteSession(ctx context.Context, sessionID string) error

	// DeleteUserSessions removes every session owned by userID.
	DeleteUserSessions(ctx context.Context, userID uuid.UUID) error

	// CreatePasswordResetSession inserts a password reset session row.
	CreatePasswordResetSession(ctx context.Context, session *PasswordResetSession) error

	// PasswordResetSessionWithUser returns the reset session and its
	// owning user.
	PasswordResetSessionWithUser(ctx context.Context, sessionID string) (*PasswordResetSession, *User, error)

	// SetPasswordResetSessionEmailVerified marks the reset session's
	// email challenge as passed.
	SetPasswordResetSessionEmailVerified(ctx context.Context, sessionID string) error

	// SetPasswordResetSessionTwoFactorVerified marks the reset session's
	// second factor as passed.
	SetPasswordResetSessionTwoFactorVerified(ctx context.Context, sessionID string) error

	// DeletePasswordResetSession removes a reset session.
	DeletePasswordResetSession(ctx context.Context, sessionID string) error

	// DeleteUserPasswordResetSessions removes every reset session owned
	// by userID.
	DeleteUserPasswordResetSessions(ctx context.Context, userID uuid.UUID) error

	// CreateEmailVerificationRequest inserts a verification request,
	// replacing any previous requests for the user.
	CreateEmailVerificationRequest(ctx context.Context, req *EmailVerificationRequest) error

	// EmailVerificationRequestByID returns the request with the given ID
	// belonging to userID.
	EmailVerificationRequestByID(ctx context.Context, userID uuid.UUID, id string) (*EmailVerificationRequest, error)

	// DeleteUserEmailVerificationRequests removes every verification
	// request owned by userID.
	DeleteUserEmailVerificationRequests(ctx context.Context, userID uuid.UUID) error
}
