package pg

import "errors"

// Common errors
var (
	// ErrEmptyConnectionURL is returned when the connection URL is not set.
	ErrEmptyConnectionURL = errors.New("empty postgres connection URL")
	// ErrFailedToParseConnString is returned when the connection URL cannot be parsed.
	ErrFailedToParseConnString = errors.New("failed to parse postgres connection string")
	// ErrFailedToOpenDB is returned when the pool cannot be constructed.
	ErrFailedToOpenDB = errors.New("failed to open postgres connection pool")
	// ErrPostgresNotReady is returned when the database does not answer pings
	// within the configured retry attempts.
	ErrPostgresNotReady = errors.New("postgres is not ready")
	// ErrHealthcheckFailed is returned by the healthcheck closure when a ping fails.
	ErrHealthcheckFailed = errors.New("postgres healthcheck failed")
)
