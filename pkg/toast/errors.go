package toast

import "errors"

// Common errors
var (
	// ErrEmptyID is returned when inserting a toast without an ID
	ErrEmptyID = errors.New("toast ID is required")

	// ErrDuplicateID is returned when inserting a toast whose ID is already stored
	ErrDuplicateID = errors.New("toast ID already exists")

	// ErrToastNotFound is returned when a toast cannot be found by ID
	ErrToastNotFound = errors.New("toast not found")

	// ErrInvalidSeverity is returned when a severity outside the defined set is used
	ErrInvalidSeverity = errors.New("invalid toast severity")

	// ErrInvalidDuration is returned when a negative display duration is supplied
	ErrInvalidDuration = errors.New("display duration cannot be negative")

	// ErrInvalidDelay is returned when scheduling a timer with a non-positive delay
	ErrInvalidDelay = errors.New("timer delay must be positive")

	// ErrManagerClosed is returned when pushing toasts through a closed manager
	ErrManagerClosed = errors.New("toast manager is closed")
)
