package auth

import (
	"bytes"
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory Store for tests and single-process
// deployments. All methods are safe for concurrent use.
type MemoryStore struct {
	mu            sync.RWMutex
	users         map[uuid.UUID]*memoryUser
	sessions      map[string]*Session
	resetSessions map[string]*PasswordResetSession
	emailRequests map[string]*EmailVerificationRequest
}

type memoryUser struct {
	User
	passwordHash          string
	encryptedRecoveryCode []byte
	encryptedTOTPKey      []byte
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:         make(map[uuid.UUID]*memoryUser),
		sessions:      make(map[string]*Session),
		resetSessions: make(map[string]*PasswordResetSession),
		emailRequests: make(map[string]*EmailVerificationRequest),
	}
}

func (m *MemoryStore) CreateUser(_ context.Context, user NewUser) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email {
			return ErrEmailTaken
		}
	}
	m.users[user.ID] = &memoryUser{
		User: User{
			ID:       user.ID,
			Email:    user.Email,
			Username: user.Username,
		},
		passwordHash:          user.PasswordHash,
		encryptedRecoveryCode: bytes.Clone(user.EncryptedRecoveryCode),
	}
	return nil
}

func (m *MemoryStore) UserByEmail(_ context.Context, email string) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Email == email {
			return m.publicUser(u), nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) EmailAvailable(_ context.Context, email string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Email == email {
			return false, nil
		}
	}
	return true, nil
}

func (m *MemoryStore) UserPasswordHash(_ context.Context, userID uuid.UUID) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[userID]
	if !ok {
		return "", ErrNotFound
	}
	return u.passwordHash, nil
}

func (m *MemoryStore) UpdateUserPassword(_ context.Context, userID uuid.UUID, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return ErrNotFound
	}
	u.passwordHash = passwordHash
	return nil
}

func (m *MemoryStore) UpdateUserEmailAndSetVerified(_ context.Context, userID uuid.UUID, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return ErrNotFound
	}
	for id, other := range m.users {
		if id != userID && other.Email == email {
			return ErrEmailTaken
		}
	}
	u.Email = email
	u.EmailVerified = true
	return nil
}

func (m *MemoryStore) SetUserEmailVerifiedIfMatches(_ context.Context, userID uuid.UUID, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return false, ErrNotFound
	}
	if u.Email != email {
		return false, nil
	}
	u.EmailVerified = true
	return true, nil
}

func (m *MemoryStore) UserTOTPKey(_ context.Context, userID uuid.UUID) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return bytes.Clone(u.encryptedTOTPKey), nil
}

func (m *MemoryStore) UpdateUserTOTPKey(_ context.Context, userID uuid.UUID, encryptedKey []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return ErrNotFound
	}
	u.encryptedTOTPKey = bytes.Clone(encryptedKey)
	return nil
}

func (m *MemoryStore) UserRecoveryCode(_ context.Context, userID uuid.UUID) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return bytes.Clone(u.encryptedRecoveryCode), nil
}

func (m *MemoryStore) UpdateUserRecoveryCode(_ context.Context, userID uuid.UUID, encryptedCode []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return ErrNotFound
	}
	u.encryptedRecoveryCode = bytes.Clone(encryptedCode)
	return nil
}

func (m *MemoryStore) ReplaceRecoveryCodeAndClearTOTPKey(_ context.Context, userID uuid.UUID, oldEncryptedCode, newEncryptedCode []byte) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return false, ErrNotFound
	}
	// Sessions are demoted regardless of whether the swap wins; the
	// supplied code was valid at read time either way.
	for _, sess := range m.sessions {
		if sess.UserID == userID {
			sess.TwoFactorVerified = false
		}
	}
	if !bytes.Equal(u.encryptedRecoveryCode, oldEncryptedCode) {
		return false, nil
	}
	u.encryptedRecoveryCode = bytes.Clone(newEncryptedCode)
	u.encryptedTOTPKey = nil
	u.Registered2FA = false
	return true, nil
}

func (m *MemoryStore) CreateSession(_ context.Context, session *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[session.UserID]; !ok {
		return ErrNotFound
	}
	cp := *session
	m.sessions[session.ID] = &cp
	return nil
}

func (m *MemoryStore) SessionWithUser(_ context.Context, sessionID string) (*Session, *User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.sessions[sessionID]
	if !ok {
		return nil, nil, ErrNotFound
	}
	u, ok := m.users[sess.UserID]
	if !ok {
		return nil, nil, ErrNotFound
	}
	cp := *sess
	return &cp, m.publicUser(u), nil
}

func (m *MemoryStore) SetSessionTwoFactorVerified(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[sessionID]
	if !ok {
		return ErrNotFound
	}
	sess.TwoFactorVerified = true
	return nil
}

func (m *MemoryStore) DeleteSession(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
	return nil
}

func (m *MemoryStore) DeleteUserSessions(_ context.Context, userID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, sess := range m.sessions {
		if sess.UserID == userID {
			delete(m.sessions, id)
		}
	}
	return nil
}

func (m *MemoryStore) CreatePasswordResetSession(_ context.Context, session *PasswordResetSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[session.UserID]; !ok {
		return ErrNotFound
	}
	cp := *session
	m.resetSessions[session.ID] = &cp
	return nil
}

func (m *MemoryStore) PasswordResetSessionWithUser(_ context.Context, sessionID string) (*PasswordResetSession, *User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.resetSessions[sessionID]
	if !ok {
		return nil, nil, ErrNotFound
	}
	u, ok := m.users[sess.UserID]
	if !ok {
		return nil, nil, ErrNotFound
	}
	cp := *sess
	return &cp, m.publicUser(u), nil
}

func (m *MemoryStore) SetPasswordResetSessionEmailVerified(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.resetSessions[sessionID]
	if !ok {
		return ErrNotFound
	}
	sess.EmailVerified = true
	return nil
}

func (m *MemoryStore) SetPasswordResetSessionTwoFactorVerified(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.resetSessions[sessionID]
	if !ok {
		return ErrNotFound
	}
	sess.TwoFactorVerified = true
	return nil
}

func (m *MemoryStore) DeletePasswordResetSession(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.resetSessions, sessionID)
	return nil
}

func (m *MemoryStore) DeleteUserPasswordResetSessions(_ context.Context, userID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, sess := range m.resetSessions {
		if sess.UserID == userID {
			delete(m.resetSessions, id)
		}
	}
	return nil
}

func (m *MemoryStore) CreateEmailVerificationRequest(_ context.Context, req *EmailVerificationRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[req.UserID]; !ok {
		return ErrNotFound
	}
	cp := *req
	m.emailRequests[req.ID] = &cp
	return nil
}

func (m *MemoryStore) EmailVerificationRequestByID(_ context.Context, userID uuid.UUID, id string) (*EmailVerificationRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	req, ok := m.emailRequests[id]
	if !ok || req.UserID != userID {
		return nil, ErrNotFound
	}
	cp := *req
	return &cp, nil
}

func (m *MemoryStore) DeleteUserEmailVerificationRequests(_ context.Context, userID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, req := range m.emailRequests {
		if req.UserID == userID {
			delete(m.emailRequests, id)
		}
	}
	return nil
}

// publicUser snapshots the exported projection; Registered2FA is derived
// from the presence of a TOTP key.
func (m *MemoryStore) publicUser(u *memoryUser) *User {
	pub := u.User
	pub.Registered2FA = u.encryptedTOTPKey != nil
	return &pub
}

var _ Store = (*MemoryStore)(nil)
