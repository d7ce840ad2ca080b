package toast

import (
	"context"
	"time"
)

// Severity classifies a toast for rendering and filtering.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Valid reports whether s is one of the defined severities.
func (s Severity) Valid() bool {
	switch s {
	case SeverityInfo, SeveritySuccess, SeverityWarning, SeverityError:
		return true
	}
	return false
}

// ActionFunc is invoked by the rendering layer when the user activates a
// toast's call-to-action. The toast may already be removed from the store
// by the time the callback runs.
type ActionFunc func(ctx context.Context, t Toast) error

// Action represents an optional call-to-action attached to a toast.
// Fn is an in-process callback and does not survive serialization;
// URL is the serializable alternative for database-backed stores.
type Action struct {
	Label string     `json:"label"`
	URL   string     `json:"url,omitempty"`
	Fn    ActionFunc `json:"-"`
}

// Toast is the core domain model for transient notifications.
type Toast struct {
	ID        string         `json:"id"`
	Severity  Severity       `json:"severity"`
	Title     string         `json:"title,omitempty"`
	Message   string         `json:"message"`
	Data      map[string]any `json:"data,omitempty"` // Custom payload
	Duration  time.Duration  `json:"duration"`       // 0 = shown until dismissed
	Action    *Action        `json:"action,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// Persistent reports whether the toast stays visible until explicitly dismissed.
func (t *Toast) Persistent() bool {
	return t.Duration == 0
}

// ExpiresAt returns the scheduled auto-dismiss time, or the zero time for
// persistent toasts.
func (t *Toast) ExpiresAt() time.Time {
	if t.Duration <= 0 {
		return time.Time{}
	}
	return t.CreatedAt.Add(t.Duration)
}
