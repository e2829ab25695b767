package auth

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/authkit/pkg/pg"
)

// PostgresStore persists the auth schema in PostgreSQL through a pgx
// connection pool. Apply the migrations under migrations/ before first
// use.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore wraps an existing pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (p *PostgresStore) CreateUser(ctx context.Context, user NewUser) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO users (id, email, username, password_hash, recovery_code) VALUES ($1, $2, $3, $4, $5)`,
		user.ID, user.Email, user.Username, user.PasswordHash, user.EncryptedRecoveryCode)
	if pg.IsDuplicateKeyError(err) {
		return ErrEmailTaken
	}
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (p *PostgresStore) UserByEmail(ctx context.Context, email string) (*User, error) {
	row := p.pool.QueryRow(ctx,
		`SELECT id, email, username, email_verified, totp_key IS NOT NULL FROM users WHERE email = $1`,
		email)
	var u User
	if err := row.Scan(&u.ID, &u.Email, &u.Username, &u.EmailVerified, &u.Registered2FA); err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select user by email: %w", err)
	}
	return &u, nil
}

func (p *PostgresStore) EmailAvailable(ctx context.Context, email string) (bool, error) {
	row := p.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE email = $1`, email)
	var count int
	if err := row.Scan(&count); err != nil {
		return false, fmt.Errorf("count users by email: %w", err)
	}
	return count == 0, nil
}

func (p *PostgresStore) UserPasswordHash(ctx context.Context, userID uuid.UUID) (string, error) {
	row := p.pool.QueryRow(ctx, `SELECT password_hash FROM users WHERE id = $1`, userID)
	var hash string
	if err := row.Scan(&hash); err != nil {
		if pg.IsNotFoundError(err) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("select password hash: %w", err)
	}
	return hash, nil
}

func (p *PostgresStore) UpdateUserPassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	tag, err := p.pool.Exec(ctx, `UPDATE users SET password_hash = $1 WHERE id = $2`, passwordHash, userID)
	if err != nil {
		return fmt.Errorf("update password hash: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *PostgresStore) UpdateUserEmailAndSetVerified(ctx context.Context, userID uuid.UUID, email string) error {
	tag, err := p.pool.Exec(ctx,
		`UPDATE users SET email = $1, email_verified = TRUE WHERE id = $2`, email, userID)
	if pg.IsDuplicateKeyError(err) {
		return ErrEmailTaken
	}
	if err != nil {
		return fmt.Errorf("update user email: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *PostgresStore) SetUserEmailVerifiedIfMatches(ctx context.Context, userID uuid.UUID, email string) (bool, error) {
	tag, err := p.pool.Exec(ctx,
		`UPDATE users SET email_verified = TRUE WHERE id = $1 AND email = $2`, userID, email)
	if err != nil {
		return false, fmt.Errorf("set email verified: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (p *PostgresStore) UserTOTPKey(ctx context.Context, userID uuid.UUID) ([]byte, error) {
	row := p.pool.QueryRow(ctx, `SELECT totp_key FROM users WHERE id = $1`, userID)
	var key []byte
	if err := row.Scan(&key); err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select totp key: %w", err)
	}
	return key, nil
}

func (p *PostgresStore) UpdateUserTOTPKey(ctx context.Context, userID uuid.UUID, encryptedKey []byte) error {
	tag, err := p.pool.Exec(ctx, `UPDATE users SET totp_key = $1 WHERE id = $2`, encryptedKey, userID)
	if err != nil {
		return fmt.Errorf("update totp key: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *PostgresStore) UserRecoveryCode(ctx context.Context, userID uuid.UUID) ([]byte, error) {
	row := p.pool.QueryRow(ctx, `SELECT recovery_code FROM users WHERE id = $1`, userID)
	var code []byte
	if err := row.Scan(&code); err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select recovery code: %w", err)
	}
	return code, nil
}

func (p *PostgresStore) UpdateUserRecoveryCode(ctx context.Context, userID uuid.UUID, encryptedCode []byte) error {
	tag, err := p.pool.Exec(ctx, `UPDATE users SET recovery_code = $1 WHERE id = $2`, encryptedCode, userID)
	if err != nil {
		return fmt.Errorf("update recovery code: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *PostgresStore) ReplaceRecoveryCodeAndClearTOTPKey(ctx context.Context, userID uuid.UUID, oldEncryptedCode, newEncryptedCode []byte) (bool, error) {
	// The session demotion is unconditional; the recovery code was valid
	// at read time even if a concurrent redemption wins the swap below.
	if _, err := p.pool.Exec(ctx,
		`UPDATE sessions SET two_factor_verified = FALSE WHERE user_id = $1`, userID); err != nil {
		return false, fmt.Errorf("demote sessions: %w", err)
	}
	tag, err := p.pool.Exec(ctx,
		`UPDATE users SET recovery_code = $1, totp_key = NULL WHERE id = $2 AND recovery_code = $3`,
		newEncryptedCode, userID, oldEncryptedCode)
	if err != nil {
		return false, fmt.Errorf("swap recovery code: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (p *PostgresStore) CreateSession(ctx context.Context, session *Session) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO sessions (id, user_id, expires_at, two_factor_verified) VALUES ($1, $2, $3, $4)`,
		session.ID, session.UserID, session.ExpiresAt, session.TwoFactorVerified)
	if err != nil {
		if pg.IsForeignKeyViolationError(err) {
			return ErrNotFound
		}
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (p *PostgresStore) SessionWithUser(ctx context.Context, sessionID string) (*Session, *User, error) {
	row := p.pool.QueryRow(ctx,
		`SELECT s.id, s.user_id, s.expires_at, s.two_factor_verified,
		        u.id, u.email, u.username, u.email_verified, u.totp_key IS NOT NULL
		 FROM sessions s
		 JOIN users u ON u.id = s.user_id
		 WHERE s.id = $1`,
		sessionID)
	var (
		sess Session
		u    User
	)
	err := row.Scan(&sess.ID, &sess.UserID, &sess.ExpiresAt, &sess.TwoFactorVerified,
		&u.ID, &u.Email, &u.Username, &u.EmailVerified, &u.Registered2FA)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("select session: %w", err)
	}
	return &sess, &u, nil
}

func (p *PostgresStore) SetSessionTwoFactorVerified(ctx context.Context, sessionID string) error {
	tag, err := p.pool.Exec(ctx,
		`UPDATE sessions SET two_factor_verified = TRUE WHERE id = $1`, sessionID)
	if err != nil {
		return fmt.Errorf("set session two factor verified: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *PostgresStore) DeleteSession(ctx context.Context, sessionID string) error {
	if _, err := p.pool.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (p *PostgresStore) DeleteUserSessions(ctx context.Context, userID uuid.UUID) error {
	if _, err := p.pool.Exec(ctx, `DELETE FROM sessions WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("delete user sessions: %w", err)
	}
	return nil
}

func (p *PostgresStore) CreatePasswordResetSession(ctx context.Context, session *PasswordResetSession) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO password_reset_sessions (id, user_id, email, code, expires_at, email_verified, two_factor_verified)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		session.ID, session.UserID, session.Email, session.Code, session.ExpiresAt,
		session.EmailVerified, session.TwoFactorVerified)
	if err != nil {
		if pg.IsForeignKeyViolationError(err) {
			return ErrNotFound
		}
		return fmt.Errorf("insert password reset session: %w", err)
	}
	return nil
}

func (p *PostgresStore) PasswordResetSessionWithUser(ctx context.Context, sessionID string) (*PasswordResetSession, *User, error) {
	row := p.pool.QueryRow(ctx,
		`SELECT s.id, s.user_id, s.email, s.code, s.expires_at, s.email_verified, s.two_factor_verified,
		        u.id, u.email, u.username, u.email_verified, u.totp_key IS NOT NULL
		 FROM password_reset_sessions s
		 JOIN users u ON u.id = s.user_id
		 WHERE s.id = $1`,
		sessionID)
	var (
		sess PasswordResetSession
		u    User
	)
	err := row.Scan(&sess.ID, &sess.UserID, &sess.Email, &sess.Code, &sess.ExpiresAt,
		&sess.EmailVerified, &sess.TwoFactorVerified,
		&u.ID, &u.Email, &u.Username, &u.EmailVerified, &u.Registered2FA)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("select password reset session: %w", err)
	}
	return &sess, &u, nil
}

func (p *PostgresStore) SetPasswordResetSessionEmailVerified(ctx context.Context, sessionID string) error {
	tag, err := p.pool.Exec(ctx,
		`UPDATE password_reset_sessions SET email_verified = TRUE WHERE id = $1`, sessionID)
	if err != nil {
		return fmt.Errorf("set reset session email verified: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *PostgresStore) SetPasswordResetSessionTwoFactorVerified(ctx context.Context, sessionID string) error {
	tag, err := p.pool.Exec(ctx,
		`UPDATE password_reset_sessions SET two_factor_verified = TRUE WHERE id = $1`, sessionID)
	if err != nil {
		return fmt.Errorf("set reset session two factor verified: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *PostgresStore) DeletePasswordResetSession(ctx context.Context, sessionID string) error {
	if _, err := p.pool.Exec(ctx, `DELETE FROM password_reset_sessions WHERE id = $1`, sessionID); err != nil {
		return fmt.Errorf("delete password reset session: %w", err)
	}
	return nil
}

func (p *PostgresStore) DeleteUserPasswordResetSessions(ctx context.Context, userID uuid.UUID) error {
	if _, err := p.pool.Exec(ctx, `DELETE FROM password_reset_sessions WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("delete user password reset sessions: %w", err)
	}
	return nil
}

func (p *PostgresStore) CreateEmailVerificationRequest(ctx context.Context, req *EmailVerificationRequest) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO email_verification_requests (id, user_id, email, code, expires_at) VALUES ($1, $2, $3, $4, $5)`,
		req.ID, req.UserID, req.Email, req.Code, req.ExpiresAt)
	if err != nil {
		if pg.IsForeignKeyViolationError(err) {
			return ErrNotFound
		}
		return fmt.Errorf("insert email verification request: %w", err)
	}
	return nil
}

func (p *PostgresStore) EmailVerificationRequestByID(ctx context.Context, userID uuid.UUID, id string) (*EmailVerificationRequest, error) {
	row := p.pool.QueryRow(ctx,
		`SELECT id, user_id, email, code, expires_at FROM email_verification_requests WHERE id = $1 AND user_id = $2`,
		id, userID)
	var req EmailVerificationRequest
	if err := row.Scan(&req.ID, &req.UserID, &req.Email, &req.Code, &req.ExpiresAt); err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select email verification request: %w", err)
	}
	return &req, nil
}

func (p *PostgresStore) DeleteUserEmailVerificationRequests(ctx context.Context, userID uuid.UUID) error {
	if _, err := p.pool.Exec(ctx, `DELETE FROM email_verification_requests WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("delete user email verification requests: %w", err)
	}
	return nil
}

var _ Store = (*PostgresStore)(nil)
