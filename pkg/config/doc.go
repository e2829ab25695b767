// Package config loads typed configuration structs from environment
// variables, with optional .env file support for development.
//
// Each configuration type is parsed once per process and cached; subsequent
// Load calls for the same type return the cached value. Policy constants
// such as bucket windows, OTP digits, session TTLs, and the envelope
// encryption key are all supplied this way at process start.
//
// # Usage
//
//	type SessionConfig struct {
//	    DurationHours int `env:"SESSION_DURATION_HOURS" envDefault:"720"`
//	}
//
//	var cfg SessionConfig
//	config.MustLoad(&cfg)
package config
