package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/authkit/pkg/codec"
)

const sessionTokenBytes = 20

// GenerateSessionToken returns a new opaque bearer token: 20 random
// bytes rendered as unpadded lowercase base32. The token is handed to
// the client; only its digest is ever stored.
func GenerateSessionToken() (string, error) {
	b := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return codec.EncodeBase32(b, codec.WithBase32Lowercase()), nil
}

// SessionIDFromToken derives the storage ID for a bearer token: the
// lowercase hex encoding of its SHA-256 digest.
func SessionIDFromToken(token string) string {
	digest := sha256.Sum256([]byte(token))
	return codec.EncodeHexLowerCase(digest[:])
}

// CreateSession persists a session for the digest of token. A
// durationHours of zero means the client keeps the cookie only for the
// browser session; the row still lives BrowserSessionTTL so stale rows
// are eventually reaped.
func (s *Service) CreateSession(ctx context.Context, token string, userID uuid.UUID, flags SessionFlags, durationHours int) (*Session, error) {
	ttl := s.cfg.BrowserSessionTTL
	if durationHours > 0 {
		ttl = time.Duration(durationHours) * time.Hour
	}
	session := &Session{
		ID:                SessionIDFromToken(token),
		UserID:            userID,
		ExpiresAt:         s.now().Add(ttl),
		TwoFactorVerified: flags.TwoFactorVerified,
	}
	if err := s.store.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return session, nil
}

// ValidateSessionToken resolves a bearer token to its session and user.
// An absent or expired session returns (nil, nil, nil); expiry deletes
// the row on first observation. A non-nil error means storage failed,
// never that the token was merely invalid.
func (s *Service) ValidateSessionToken(ctx context.Context, token string) (*Session, *User, error) {
	session, user, err := s.store.SessionWithUser(ctx, SessionIDFromToken(token))
	if errors.Is(err, ErrNotFound) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("validate session token: %w", err)
	}
	if !s.now().Before(session.ExpiresAt) {
		if err := s.store.DeleteSession(ctx, session.ID); err != nil {
			return nil, nil, fmt.Errorf("delete expired session: %w", err)
		}
		return nil, nil, nil
	}
	return session, user, nil
}

// SetSessionTwoFactorVerified marks the session as having passed the
// second factor.
func (s *Service) SetSessionTwoFactorVerified(ctx context.Context, sessionID string) error {
	if err := s.store.SetSessionTwoFactorVerified(ctx, sessionID); err != nil {
		return fmt.Errorf("set session two factor verified: %w", err)
	}
	return nil
}

// InvalidateSession deletes a single session. Absent sessions are a
// no-op.
func (s *Service) InvalidateSession(ctx context.Context, sessionID string) error {
	if err := s.store.DeleteSession(ctx, sessionID); err != nil {
		return fmt.Errorf("invalidate session: %w", err)
	}
	return nil
}

// InvalidateUserSessions deletes every session owned by the user.
func (s *Service) InvalidateUserSessions(ctx context.Context, userID uuid.UUID) error {
	if err := s.store.DeleteUserSessions(ctx, userID); err != nil {
		return fmt.Errorf("invalidate user sessions: %w", err)
	}
	return nil
}
