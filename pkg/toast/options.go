package toast

import (
	"fmt"
	"log/slog"
	"time"
)

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithLogger sets the logger used for background failure reporting.
func WithLogger(log *slog.Logger) ManagerOption {
	return func(m *Manager) {
		if log != nil {
			m.log = log
		}
	}
}

// WithDefaultDuration sets the display duration applied to toasts that do not
// specify one. Zero makes unspecified toasts persistent.
func WithDefaultDuration(d time.Duration) ManagerOption {
	return func(m *Manager) {
		if d < 0 {
			panic(fmt.Errorf("invalid default duration %s: cannot be negative", d))
		}
		m.defaultDuration.Store(int64(d))
	}
}

// WithFeedBuffer sets the per-subscription event buffer size. A minimum of 1
// is enforced.
func WithFeedBuffer(size int) ManagerOption {
	return func(m *Manager) {
		m.feedBuffer = size
	}
}

// WithIDGenerator replaces the default UUID generator. Useful for tests and
// deterministic environments. The generator must never return an ID that is
// still active.
func WithIDGenerator(fn func() string) ManagerOption {
	return func(m *Manager) {
		if fn != nil {
			m.newID = fn
		}
	}
}

// NotifyOption customizes a single toast before it is stored.
type NotifyOption func(*notifyConfig)

type notifyConfig struct {
	duration    time.Duration
	durationSet bool
	title       string
	data        map[string]any
	action      *Action
}

// WithDuration sets the display duration for this toast. Zero keeps the toast
// on screen until dismissed. Negative values are rejected by Notify with
// ErrInvalidDuration.
func WithDuration(d time.Duration) NotifyOption {
	return func(c *notifyConfig) {
		c.duration = d
		c.durationSet = true
	}
}

// WithPersistent keeps the toast on screen until explicitly dismissed.
// Equivalent to WithDuration(0).
func WithPersistent() NotifyOption {
	return func(c *notifyConfig) {
		c.duration = 0
		c.durationSet = true
	}
}

// WithTitle sets an optional short heading shown above the message.
func WithTitle(title string) NotifyOption {
	return func(c *notifyConfig) {
		c.title = title
	}
}

// WithData attaches a custom payload passed through to renderers untouched.
func WithData(data map[string]any) NotifyOption {
	return func(c *notifyConfig) {
		c.data = data
	}
}

// WithAction attaches a call-to-action. The manager stores it as-is;
// interpreting and invoking the action is the renderer's job.
func WithAction(a Action) NotifyOption {
	return func(c *notifyConfig) {
		c.action = &a
	}
}
