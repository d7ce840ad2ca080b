package toastkit_test

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toastkit/toastkit"
	"github.com/toastkit/toastkit/pkg/toast"
)

// newTestHandler builds a handler over a memory-backed hub with persistent
// toasts, so no timers fire mid-test. The returned router has the handler
// mounted under the default base path.
func newTestHandler(t *testing.T, opts ...toastkit.HandlerOption) (*toast.Hub, chi.Router) {
	t.Helper()

	hub := toast.NewHub(func(scope string) *toast.Manager {
		return toast.NewManager(toast.NewMemoryStore(), toast.WithDefaultDuration(0))
	})
	t.Cleanup(func() { _ = hub.Close() })

	opts = append([]toastkit.HandlerOption{
		toastkit.WithHandlerLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}, opts...)
	h := toastkit.NewHandler(hub, opts...)

	r := chi.NewRouter()
	r.Mount(toastkit.DefaultBasePath, h.Router())
	return hub, r
}

// staticScope pins every request to one scope key.
func staticScope(key string) toastkit.ScopeFunc {
	return func(*http.Request) string { return key }
}

func TestHandler_Dismiss(t *testing.T) {
	hub, router := newTestHandler(t, toastkit.WithScopeFunc(staticScope("test")))
	mgr := hub.Scope("test")

	ctx := context.Background()
	id, err := mgr.Info(ctx, "dismiss me")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/toasts/"+id+"/dismiss", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)

	count, err := mgr.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestHandler_Dismiss_UnknownID(t *testing.T) {
	_, router := newTestHandler(t, toastkit.WithScopeFunc(staticScope("test")))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/toasts/no-such-toast/dismiss", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestHandler_DismissAll(t *testing.T) {
	hub, router := newTestHandler(t, toastkit.WithScopeFunc(staticScope("test")))
	mgr := hub.Scope("test")

	ctx := context.Background()
	for _, msg := range []string{"one", "two", "three"} {
		_, err := mgr.Info(ctx, msg)
		require.NoError(t, err)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/toasts/dismiss-all", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)

	count, err := mgr.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestHandler_Action(t *testing.T) {
	hub, router := newTestHandler(t, toastkit.WithScopeFunc(staticScope("test")))
	mgr := hub.Scope("test")

	ctx := context.Background()
	var invoked string
	id, err := mgr.Warning(ctx, "item archived", toast.WithAction(toast.Action{
		Label: "Undo",
		Fn: func(_ context.Context, tt toast.Toast) error {
			invoked = tt.ID
			return nil
		},
	}))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/toasts/"+id+"/action", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, id, invoked)

	// The action endpoint never dismisses; that is the client's call
	count, err := mgr.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestHandler_Action_UnknownID(t *testing.T) {
	_, router := newTestHandler(t, toastkit.WithScopeFunc(staticScope("test")))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/toasts/gone/action", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestHandler_Action_NoCallback(t *testing.T) {
	hub, router := newTestHandler(t, toastkit.WithScopeFunc(staticScope("test")))
	mgr := hub.Scope("test")

	id, err := mgr.Info(context.Background(), "trial ending",
		toast.WithAction(toast.Action{Label: "Renew", URL: "/billing"}))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/toasts/"+id+"/action", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestHandler_Action_CallbackError(t *testing.T) {
	hub, router := newTestHandler(t, toastkit.WithScopeFunc(staticScope("test")))
	mgr := hub.Scope("test")

	id, err := mgr.Error(context.Background(), "sync failed", toast.WithAction(toast.Action{
		Label: "Retry",
		Fn: func(context.Context, toast.Toast) error {
			return assert.AnError
		},
	}))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/toasts/"+id+"/action", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "action failed")
}

func TestHandler_ScopeIsolation(t *testing.T) {
	hub, router := newTestHandler(t)

	ctx := context.Background()
	_, err := hub.Scope("alice").Info(ctx, "for alice")
	require.NoError(t, err)
	_, err = hub.Scope("bob").Info(ctx, "for bob")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/toasts/dismiss-all", nil)
	req.AddCookie(&http.Cookie{Name: toastkit.DefaultScopeCookie, Value: "alice"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)

	aliceCount, err := hub.Scope("alice").Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, aliceCount)

	bobCount, err := hub.Scope("bob").Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, bobCount)
}

func TestCookieScope(t *testing.T) {
	fn := toastkit.CookieScope("sid", "anon")

	t.Run("cookie present", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "sid", Value: "user-42"})
		assert.Equal(t, "user-42", fn(req))
	})

	t.Run("cookie absent", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		assert.Equal(t, "anon", fn(req))
	})

	t.Run("cookie empty", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "sid", Value: ""})
		assert.Equal(t, "anon", fn(req))
	})
}

func TestEnsureScopeCookie(t *testing.T) {
	var seen string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = toastkit.CookieScope(toastkit.DefaultScopeCookie, "")(r)
		w.WriteHeader(http.StatusOK)
	})
	handler := toastkit.EnsureScopeCookie(inner)

	t.Run("assigns scope to fresh visitor", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, toastkit.DefaultScopeCookie, cookies[0].Name)
		assert.NotEmpty(t, cookies[0].Value)
		assert.Equal(t, cookies[0].Value, seen, "scope must be visible within the same request")
	})

	t.Run("keeps existing scope", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: toastkit.DefaultScopeCookie, Value: "existing"})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Empty(t, rec.Result().Cookies())
		assert.Equal(t, "existing", seen)
	})
}

func TestHandler_Stream(t *testing.T) {
	hub, router := newTestHandler(t, toastkit.WithScopeFunc(staticScope("test")))
	mgr := hub.Scope("test")

	srv := httptest.NewServer(router)
	defer srv.Close()

	ctx := context.Background()
	_, err := mgr.Success(ctx, "already here")
	require.NoError(t, err)

	streamCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(streamCtx, http.MethodGet, srv.URL+"/toasts/stream", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/event-stream")

	lines := make(chan string, 64)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(resp.Body)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	waitForLine := func(substr string) {
		t.Helper()
		deadline := time.After(2 * time.Second)
		for {
			select {
			case line, ok := <-lines:
				require.True(t, ok, "stream ended before %q arrived", substr)
				if strings.Contains(line, substr) {
					return
				}
			case <-deadline:
				t.Fatalf("timed out waiting for %q on the stream", substr)
			}
		}
	}

	// Initial snapshot carries the region and the pre-existing toast
	waitForLine(toastkit.RegionID)
	waitForLine("already here")

	// A change event re-renders the region with the new toast
	_, err = mgr.Error(ctx, "fresh failure")
	require.NoError(t, err)
	waitForLine("fresh failure")
}
