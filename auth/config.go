package auth

import "time"

// Config holds tunables for the verification state machines. The zero
// value is not usable; start from DefaultConfig or load from the
// environment with pkg/config.
type Config struct {
	// SessionTTL is the lifetime of a newly created session when the
	// caller does not request a specific duration.
	SessionTTL time.Duration `env:"AUTH_SESSION_TTL" envDefault:"720h"`

	// BrowserSessionTTL is the persistence floor for sessions created
	// without an explicit duration request (duration hours of zero). The
	// row must outlive the browser tab so short-lived cookies can still
	// be cleaned up server-side.
	BrowserSessionTTL time.Duration `env:"AUTH_BROWSER_SESSION_TTL" envDefault:"24h"`

	// PasswordResetTTL is the lifetime of a password reset session.
	PasswordResetTTL time.Duration `env:"AUTH_PASSWORD_RESET_TTL" envDefault:"10m"`

	// EmailVerificationTTL is the lifetime of an email verification
	// request.
	EmailVerificationTTL time.Duration `env:"AUTH_EMAIL_VERIFICATION_TTL" envDefault:"10m"`

	// TOTPIssuer is the issuer label embedded in enrollment key URIs.
	TOTPIssuer string `env:"AUTH_TOTP_ISSUER" envDefault:"authkit"`

	// TOTPDigits is the number of digits in a TOTP code.
	TOTPDigits int `env:"AUTH_TOTP_DIGITS" envDefault:"6"`

	// TOTPPeriod is the TOTP time step.
	TOTPPeriod time.Duration `env:"AUTH_TOTP_PERIOD" envDefault:"30s"`

	// TOTPGracePeriod widens TOTP verification to counters within the
	// period on either side of now, absorbing clock skew.
	TOTPGracePeriod time.Duration `env:"AUTH_TOTP_GRACE_PERIOD" envDefault:"30s"`

	// TOTPAttempts and TOTPWindow bound TOTP verification attempts per
	// user.
	TOTPAttempts int           `env:"AUTH_TOTP_ATTEMPTS" envDefault:"5"`
	TOTPWindow   time.Duration `env:"AUTH_TOTP_WINDOW" envDefault:"30m"`

	// RecoveryAttempts and RecoveryWindow bound recovery code redemption
	// attempts per user.
	RecoveryAttempts int           `env:"AUTH_RECOVERY_ATTEMPTS" envDefault:"3"`
	RecoveryWindow   time.Duration `env:"AUTH_RECOVERY_WINDOW" envDefault:"1h"`

	// EmailSendAttempts and EmailSendWindow bound outbound verification
	// and reset emails per user.
	EmailSendAttempts int           `env:"AUTH_EMAIL_SEND_ATTEMPTS" envDefault:"3"`
	EmailSendWindow   time.Duration `env:"AUTH_EMAIL_SEND_WINDOW" envDefault:"10m"`

	// PasswordUpdateAttempts and PasswordUpdateWindow bound password
	// change attempts per session.
	PasswordUpdateAttempts int           `env:"AUTH_PASSWORD_UPDATE_ATTEMPTS" envDefault:"5"`
	PasswordUpdateWindow   time.Duration `env:"AUTH_PASSWORD_UPDATE_WINDOW" envDefault:"30m"`
}

// DefaultConfig returns the configuration used when no overrides are
// supplied to New.
func DefaultConfig() Config {
	return Config{
		SessionTTL:             720 * time.Hour,
		BrowserSessionTTL:      24 * time.Hour,
		PasswordResetTTL:       10 * time.Minute,
		EmailVerificationTTL:   10 * time.Minute,
		TOTPIssuer:             "authkit",
		TOTPDigits:             6,
		TOTPPeriod:             30 * time.Second,
		TOTPGracePeriod:        30 * time.Second,
		TOTPAttempts:           5,
		TOTPWindow:             30 * time.Minute,
		RecoveryAttempts:       3,
		RecoveryWindow:         time.Hour,
		EmailSendAttempts:      3,
		EmailSendWindow:        10 * time.Minute,
		PasswordUpdateAttempts: 5,
		PasswordUpdateWindow:   30 * time.Minute,
	}
}
