package auth

import (
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/authkit/pkg/email"
	"github.com/dmitrymomot/authkit/pkg/envelope"
	"github.com/dmitrymomot/authkit/pkg/ratelimit"
)

// Service owns the credential and session verification state machines.
// It is safe for concurrent use.
type Service struct {
	store  Store
	secret *envelope.Envelope
	sender email.Sender
	log    *slog.Logger
	cfg    Config
	now    func() time.Time

	totpBucket           *ratelimit.ExpiringTokenBucket[uuid.UUID]
	recoveryBucket       *ratelimit.ExpiringTokenBucket[uuid.UUID]
	emailBucket          *ratelimit.ExpiringTokenBucket[uuid.UUID]
	passwordUpdateBucket *ratelimit.ExpiringTokenBucket[string]
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger. Defaults to slog.Default.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) { s.log = log }
}

// WithEmailSender sets the outbound email transport. Without one,
// delivery operations return ErrNoSender.
func WithEmailSender(sender email.Sender) Option {
	return func(s *Service) { s.sender = sender }
}

// WithConfig replaces the default configuration.
func WithConfig(cfg Config) Option {
	return func(s *Service) { s.cfg = cfg }
}

// WithClock sets the time source, letting tests drive expiry and rate
// limit windows deterministically.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New creates a Service over the given store. The envelope seals TOTP
// keys and recovery codes before they reach the store.
func New(store Store, secret *envelope.Envelope, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("auth: nil store")
	}
	if secret == nil {
		return nil, errors.New("auth: nil envelope")
	}

	s := &Service{
		store:  store,
		secret: secret,
		log:    slog.Default(),
		cfg:    DefaultConfig(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.totpBucket = ratelimit.NewExpiringTokenBucket[uuid.UUID](s.cfg.TOTPAttempts, s.cfg.TOTPWindow)
	s.recoveryBucket = ratelimit.NewExpiringTokenBucket[uuid.UUID](s.cfg.RecoveryAttempts, s.cfg.RecoveryWindow)
	s.emailBucket = ratelimit.NewExpiringTokenBucket[uuid.UUID](s.cfg.EmailSendAttempts, s.cfg.EmailSendWindow)
	s.passwordUpdateBucket = ratelimit.NewExpiringTokenBucket[string](s.cfg.PasswordUpdateAttempts, s.cfg.PasswordUpdateWindow)
	return s, nil
}

// MustNew creates a Service and panics on failure. Intended for
// process startup where a bad wiring is unrecoverable.
func MustNew(store Store, secret *envelope.Envelope, opts ...Option) *Service {
	s, err := New(store, secret, opts...)
	if err != nil {
		panic(err)
	}
	return s
}
