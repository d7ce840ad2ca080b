// Package toast provides a renderer-agnostic toast notification manager with
// pluggable storage, per-toast expiration timers, and a change event feed.
//
// The package is designed as a utility library: it owns toast state and
// lifecycle while any rendering layer (server-sent events, WebSocket, TUI)
// consumes the ordered snapshot and the event feed to draw the result.
//
// # Architecture
//
// The package follows a layered architecture:
//
//   - Store: ordered persistence keyed by toast ID
//   - TimerRegistry: one cancellable countdown per active toast
//   - Manager: orchestrates store, timers, and the event feed
//   - Hub: one manager per scope (user, session) with LRU eviction
//
// # Basic Usage
//
//	// Create a manager over an in-memory store
//	manager := toast.NewManager(toast.NewMemoryStore())
//	defer manager.Close()
//
//	// Push a toast that auto-dismisses after five seconds
//	id, err := manager.Success(ctx, "Profile saved", toast.WithDuration(5*time.Second))
//
//	// Push a persistent toast with a call-to-action
//	id, err = manager.Error(ctx, "Payment failed",
//	    toast.WithPersistent(),
//	    toast.WithAction(toast.Action{Label: "Retry", URL: "/billing/retry"}),
//	)
//
//	// Dismiss explicitly; unknown IDs are a no-op
//	_ = manager.Dismiss(ctx, id)
//
// # Lifecycle
//
// A toast is Active from Notify until exactly one of two terminal events:
// its countdown fires (expired) or a caller removes it (dismissed). Both
// converge on removal from the store; whichever happens first wins and the
// other becomes a harmless no-op. A toast with duration zero has no countdown
// and stays until dismissed.
//
// # Change Feed
//
// Renderers subscribe to the manager and receive one event per change:
//
//	sub := manager.Subscribe(ctx)
//	for ev := range sub.Events() {
//	    switch ev.Type {
//	    case toast.EventPushed, toast.EventDismissed, toast.EventExpired, toast.EventCleared:
//	        // re-render the toast region
//	    }
//	}
//
// Subscriptions are dropped rather than blocking the manager when their
// buffer fills, and are cleaned up when their context is cancelled.
//
// # Scoping
//
// Multi-user applications create one manager per scope through a Hub:
//
//	hub := toast.NewHub(func(scope string) *toast.Manager {
//	    return toast.NewManager(toast.NewMemoryStore())
//	}, toast.WithMaxScopes(512))
//	defer hub.Close()
//
//	manager := hub.Scope(sessionID)
//
// # Storage Backends
//
// MemoryStore suits single-process applications and tests. RedisStore and
// PostgresStore persist toasts across restarts and instances; both drop
// Action.Fn callbacks during serialization, so database-backed actions should
// use Action.URL.
package toast
