// Package toastkit wires the toast manager to the browser: templ components
// for the toast region, chi endpoints for dismissal and actions, and a
// datastar server-sent events stream that keeps the rendered region in sync
// with the store.
//
// The heavy lifting lives in pkg/toast; this package is deliberately thin
// glue over it.
//
// Key Features:
//
//   - Server-driven rendering: the browser subscribes once and receives the
//     re-rendered toast region after every push, dismiss, and expiration
//   - Per-browser scoping via a cookie, pluggable through ScopeFunc
//   - Dismiss and call-to-action buttons that post back without page reloads
//
// Basic Usage:
//
//	hub := toast.NewHub(func(scope string) *toast.Manager {
//		return toast.NewManager(toast.NewMemoryStore())
//	})
//	defer hub.Close()
//
//	handler := toastkit.NewHandler(hub)
//
//	r := chi.NewRouter()
//	r.Use(toastkit.EnsureScopeCookie)
//	r.Mount(toastkit.DefaultBasePath, handler.Router())
//
// Pages embed the region once and load the datastar runtime:
//
//	<div id="toast-region"></div>
//	<div data-on-load="@get('/toasts/stream')"></div>
//	<script type="module" src="https://cdn.jsdelivr.net/gh/starfederation/datastar@main/bundles/datastar.js"></script>
//
// Pushing toasts from any handler goes through the hub:
//
//	mgr := hub.Scope(scopeFromRequest(r))
//	mgr.Success(r.Context(), "Profile saved")
//
// Styling is left entirely to the host application; the rendered markup only
// carries stable class names (toast-region, toast, toast-success, ...).
package toastkit
