// Package redis provides connection bootstrapping for the Redis instance
// backing distributed rate-limit buckets (see pkg/ratelimit).
//
// Connect parses a redis:// URL, retries until the server answers a ping,
// and returns a ready client. Healthcheck wraps the client for health
// endpoints.
package redis
