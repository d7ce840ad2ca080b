package logger

import "log/slog"

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Event records the event name under the key "event".
func Event(name string) slog.Attr {
	return slog.String("event", name)
}

// ToastID records the toast identifier under the key "toast_id".
// If id is empty, it returns an empty Attr.
func ToastID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("toast_id", id)
}

// Scope records the scope key under the key "scope".
// If scope is empty, it returns an empty Attr.
func Scope(scope string) slog.Attr {
	if scope == "" {
		return slog.Attr{}
	}
	return slog.String("scope", scope)
}

// Severity records the toast severity under the key "severity".
func Severity(severity string) slog.Attr {
	return slog.String("severity", severity)
}

// Duration records a duration under the key "duration".
func Duration(d any) slog.Attr {
	return slog.Any("duration", d)
}

// Count records a count under the key "count".
func Count(n int) slog.Attr {
	return slog.Int("count", n)
}
