package auth_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/auth"
	"github.com/dmitrymomot/authkit/pkg/email"
	"github.com/dmitrymomot/authkit/pkg/envelope"
)

type testClock struct {
	mu sync.Mutex
	at time.Time
}

func newTestClock() *testClock {
	return &testClock{at: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.at
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.at = c.at.Add(d)
}

type recordingSender struct {
	mu   sync.Mutex
	sent []email.Message
}

func (r *recordingSender) Send(_ context.Context, msg email.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, msg)
	return nil
}

func (r *recordingSender) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sent)
}

// testEnvelope returns an envelope under a fixed all-zero key so that
// services built in different test steps can read each other's records.
func testEnvelope() *envelope.Envelope {
	return envelope.MustNew(make([]byte, envelope.KeySize))
}

func newTestService(t *testing.T, opts ...auth.Option) (*auth.Service, *auth.MemoryStore, *testClock) {
	t.Helper()
	store := auth.NewMemoryStore()
	clock := newTestClock()
	env := testEnvelope()
	opts = append([]auth.Option{auth.WithClock(clock.Now)}, opts...)
	svc, err := auth.New(store, env, opts...)
	require.NoError(t, err)
	return svc, store, clock
}

func createTestUser(t *testing.T, svc *auth.Service) *auth.User {
	t.Helper()
	user, err := svc.CreateUser(context.Background(), "user@example.com", "testuser", "a strong password")
	require.NoError(t, err)
	return user
}

func createTestSession(t *testing.T, svc *auth.Service, user *auth.User, flags auth.SessionFlags) (string, *auth.Session) {
	t.Helper()
	token, err := auth.GenerateSessionToken()
	require.NoError(t, err)
	session, err := svc.CreateSession(context.Background(), token, user.ID, flags, 0)
	require.NoError(t, err)
	return token, session
}
