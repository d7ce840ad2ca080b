package toastkit

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/toastkit/toastkit/pkg/logger"
	"github.com/toastkit/toastkit/pkg/toast"
)

// DefaultScopeCookie is the cookie that carries the per-browser scope key.
const DefaultScopeCookie = "toastkit_scope"

// DefaultBasePath is the URL prefix the Handler expects to be mounted under.
const DefaultBasePath = "/toasts"

// ScopeFunc extracts the toast scope key from a request.
type ScopeFunc func(r *http.Request) string

// CookieScope returns a ScopeFunc that reads the named cookie and falls back
// to the given scope when the cookie is absent or empty.
func CookieScope(name, fallback string) ScopeFunc {
	return func(r *http.Request) string {
		if c, err := r.Cookie(name); err == nil && c.Value != "" {
			return c.Value
		}
		return fallback
	}
}

// Handler exposes a scope hub over HTTP: a live SSE stream of the rendered
// toast region plus dismiss and action endpoints the rendered markup posts
// back to.
type Handler struct {
	hub      *toast.Hub
	scope    ScopeFunc
	log      *slog.Logger
	basePath string
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithScopeFunc replaces the default cookie-based scope extraction.
func WithScopeFunc(fn ScopeFunc) HandlerOption {
	return func(h *Handler) {
		if fn != nil {
			h.scope = fn
		}
	}
}

// WithHandlerLogger sets the logger for the Handler.
func WithHandlerLogger(log *slog.Logger) HandlerOption {
	return func(h *Handler) {
		if log != nil {
			h.log = log
		}
	}
}

// WithBasePath sets the URL prefix the Handler is mounted under so rendered
// dismiss and action buttons post to the right place.
func WithBasePath(p string) HandlerOption {
	return func(h *Handler) {
		if p != "" {
			h.basePath = p
		}
	}
}

// NewHandler creates an HTTP handler over the given scope hub.
func NewHandler(hub *toast.Hub, opts ...HandlerOption) *Handler {
	h := &Handler{
		hub:      hub,
		scope:    CookieScope(DefaultScopeCookie, "global"),
		log:      slog.Default(),
		basePath: DefaultBasePath,
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// Router returns the toast endpoints:
//
//	GET  /stream        – SSE stream of toast region updates
//	POST /{id}/dismiss  – dismiss a single toast
//	POST /dismiss-all   – clear the scope's toasts
//	POST /{id}/action   – invoke the toast's callback
//
// Mount it under the base path the Handler was configured with:
//
//	r.Mount(toastkit.DefaultBasePath, handler.Router())
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()
	r.Get("/stream", h.stream)
	r.Post("/dismiss-all", h.dismissAll)
	r.Post("/{id}/dismiss", h.dismiss)
	r.Post("/{id}/action", h.action)
	return r
}

// manager resolves the per-request manager from the scope hub.
func (h *Handler) manager(r *http.Request) *toast.Manager {
	return h.hub.Scope(h.scope(r))
}

func (h *Handler) dismiss(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.manager(r).Dismiss(r.Context(), id); err != nil {
		h.log.ErrorContext(r.Context(), "Failed to dismiss toast",
			logger.ToastID(id),
			logger.Error(err),
		)
		http.Error(w, "failed to dismiss toast", http.StatusInternalServerError)
		return
	}

	// The SSE stream delivers the region update; nothing to render here
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) dismissAll(w http.ResponseWriter, r *http.Request) {
	if err := h.manager(r).DismissAll(r.Context()); err != nil {
		h.log.ErrorContext(r.Context(), "Failed to dismiss all toasts", logger.Error(err))
		http.Error(w, "failed to dismiss toasts", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) action(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	mgr := h.manager(r)

	t, err := mgr.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, toast.ErrToastNotFound) {
			// Toast expired or was dismissed before the click arrived
			w.WriteHeader(http.StatusNoContent)
			return
		}
		h.log.ErrorContext(r.Context(), "Failed to load toast for action",
			logger.ToastID(id),
			logger.Error(err),
		)
		http.Error(w, "failed to load toast", http.StatusInternalServerError)
		return
	}

	if t.Action == nil || t.Action.Fn == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if err := t.Action.Fn(r.Context(), *t); err != nil {
		h.log.ErrorContext(r.Context(), "Toast action failed",
			logger.ToastID(id),
			logger.Error(err),
		)
		http.Error(w, "action failed", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// EnsureScopeCookie assigns a stable per-browser scope cookie when one is not
// present, so anonymous visitors keep their toasts across requests. Chain it
// in front of both the page routes and the toast endpoints.
func EnsureScopeCookie(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie(DefaultScopeCookie); err != nil || c.Value == "" {
			scope := uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     DefaultScopeCookie,
				Value:    scope,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
			// Make the fresh scope visible to handlers within this request
			r.AddCookie(&http.Cookie{Name: DefaultScopeCookie, Value: scope})
		}
		next.ServeHTTP(w, r)
	})
}
