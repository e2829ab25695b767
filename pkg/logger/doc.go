// Package logger builds configured log/slog loggers with context-aware
// attribute injection.
//
// The factory supports JSON output for production aggregation and text for
// development, static attributes applied to every record, and context
// extractors that pull request-scoped values (request ID, user ID) into
// records at log time.
//
// Secret material (bearer tokens, OTP keys, recovery codes, password
// hashes) must never be passed to the logger.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithProduction("authkit"),
//	    logger.WithContextValue("request_id", requestIDKey),
//	)
//	logger.SetAsDefault(log)
package logger
