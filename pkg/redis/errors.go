package redis

import "errors"

// Common errors
var (
	// ErrEmptyConnectionURL is returned when the connection URL is not set.
	ErrEmptyConnectionURL = errors.New("empty redis connection URL")
	// ErrFailedToParseConnString is returned when the connection URL cannot be parsed.
	ErrFailedToParseConnString = errors.New("failed to parse redis connection string")
	// ErrRedisNotReady is returned when the server does not answer pings within the
	// configured retry attempts.
	ErrRedisNotReady = errors.New("redis is not ready")
	// ErrHealthcheckFailed is returned by the healthcheck closure when a ping fails.
	ErrHealthcheckFailed = errors.New("redis healthcheck failed")
)
