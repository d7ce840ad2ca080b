package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/toastkit/toastkit"
	"github.com/toastkit/toastkit/pkg/config"
	"github.com/toastkit/toastkit/pkg/httpserver"
	"github.com/toastkit/toastkit/pkg/logger"
	"github.com/toastkit/toastkit/pkg/pg"
	"github.com/toastkit/toastkit/pkg/redis"
	"github.com/toastkit/toastkit/pkg/toast"
)

type appConfig struct {
	Env             string        `env:"APP_ENV" envDefault:"development"`
	DefaultDuration time.Duration `env:"TOAST_DEFAULT_DURATION" envDefault:"5s"`
	FeedBuffer      int           `env:"TOAST_FEED_BUFFER" envDefault:"16"`
	MaxScopes       int           `env:"TOAST_MAX_SCOPES" envDefault:"256"`
}

func main() {
	ctx := context.Background()

	var (
		app      appConfig
		srvCfg   httpserver.Config
		pgCfg    pg.Config
		redisCfg redis.Config
	)
	config.MustLoad(&app)
	config.MustLoad(&srvCfg)
	config.MustLoad(&pgCfg)
	config.MustLoad(&redisCfg)

	var log *slog.Logger
	if app.Env == "production" {
		log = logger.New(logger.WithProduction("toastkit-demo"))
	} else {
		log = logger.New(logger.WithDevelopment("toastkit-demo"))
	}
	logger.SetAsDefault(log)

	newStore, checks, cleanup, err := buildStores(ctx, log, pgCfg, redisCfg)
	if err != nil {
		log.ErrorContext(ctx, "Failed to initialize toast storage", logger.Error(err))
		os.Exit(1)
	}
	defer cleanup()

	hub := toast.NewHub(func(scope string) *toast.Manager {
		return toast.NewManager(newStore(scope),
			toast.WithLogger(log),
			toast.WithDefaultDuration(app.DefaultDuration),
			toast.WithFeedBuffer(app.FeedBuffer),
		)
	}, toast.WithMaxScopes(app.MaxScopes))
	defer hub.Close()

	toasts := toastkit.NewHandler(hub, toastkit.WithHandlerLogger(log))

	r := chi.NewRouter()
	r.Use(toastkit.EnsureScopeCookie)
	r.Get("/", indexHandler(hub))
	r.Post("/demo/{severity}", demoHandler(hub, log))
	r.Mount(toastkit.DefaultBasePath, toasts.Router())
	r.Get("/healthz", httpserver.HealthCheckHandler(ctx, log, checks...))

	srv := httpserver.NewFromConfig(srvCfg, httpserver.WithLogger(log))
	if err := srv.Run(ctx, r); err != nil {
		log.ErrorContext(ctx, "Server stopped with error", logger.Error(err))
		os.Exit(1)
	}
}

// buildStores picks the storage backend from the environment: PostgreSQL when
// DATABASE_URL is set, Redis when REDIS_URL is set, in-memory otherwise. It
// returns the per-scope store factory, readiness checks for the chosen
// backend, and a cleanup function for the underlying connection.
func buildStores(ctx context.Context, log *slog.Logger, pgCfg pg.Config, redisCfg redis.Config) (func(string) toast.Store, []func(context.Context) error, func(), error) {
	switch {
	case pgCfg.ConnectionURL != "":
		pool, err := pg.Connect(ctx, pgCfg)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := toast.MigratePostgres(ctx, pool, log); err != nil {
			pool.Close()
			return nil, nil, nil, err
		}
		log.InfoContext(ctx, "Toast storage ready", logger.Component("postgres"))
		factory := func(scope string) toast.Store {
			return toast.NewPostgresStore(pool, toast.WithScopeKey(scope))
		}
		return factory, []func(context.Context) error{pg.Healthcheck(pool)}, pool.Close, nil

	case redisCfg.ConnectionURL != "":
		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return nil, nil, nil, err
		}
		log.InfoContext(ctx, "Toast storage ready", logger.Component("redis"))
		factory := func(scope string) toast.Store {
			return toast.NewRedisStore(client, toast.WithKeyPrefix("toast:"+scope))
		}
		cleanup := func() { _ = client.Close() }
		return factory, []func(context.Context) error{redis.Healthcheck(client)}, cleanup, nil

	default:
		log.InfoContext(ctx, "Toast storage ready", logger.Component("memory"))
		factory := func(string) toast.Store { return toast.NewMemoryStore() }
		return factory, nil, func() {}, nil
	}
}

// demoHandler pushes a canned toast of the requested severity into the
// caller's scope so the live stream can be exercised from the index page.
func demoHandler(hub *toast.Hub, log *slog.Logger) http.HandlerFunc {
	scope := toastkit.CookieScope(toastkit.DefaultScopeCookie, "global")
	messages := map[toast.Severity]string{
		toast.SeveritySuccess: "Changes saved.",
		toast.SeverityError:   "Something went wrong. Please try again.",
		toast.SeverityWarning: "Your session expires in five minutes.",
		toast.SeverityInfo:    "A new version is available.",
	}

	return func(w http.ResponseWriter, r *http.Request) {
		severity := toast.Severity(chi.URLParam(r, "severity"))
		msg, ok := messages[severity]
		if !ok {
			http.Error(w, "unknown severity", http.StatusBadRequest)
			return
		}

		opts := []toast.NotifyOption{}
		if severity == toast.SeverityError {
			// Errors stay on screen until the user dismisses them.
			opts = append(opts, toast.WithPersistent(), toast.WithTitle("Request failed"))
		}

		mgr := hub.Scope(scope(r))
		if _, err := mgr.Notify(r.Context(), severity, msg, opts...); err != nil {
			log.ErrorContext(r.Context(), "Failed to push demo toast", logger.Error(err))
			http.Error(w, "failed to push toast", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

const indexHead = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>toastkit demo</title>
<script type="module" src="https://cdn.jsdelivr.net/gh/starfederation/datastar@main/bundles/datastar.js"></script>
<style>
body { font-family: sans-serif; max-width: 40rem; margin: 2rem auto; }
.toast-region { position: fixed; top: 1rem; right: 1rem; display: flex; flex-direction: column; gap: .5rem; }
.toast { padding: .75rem 1rem; border-radius: .25rem; color: #fff; background: #444; min-width: 16rem; }
.toast-success { background: #2f855a; }
.toast-error { background: #c53030; }
.toast-warning { background: #b7791f; }
.toast-info { background: #2b6cb0; }
.toast button, .toast-clear-all { margin-left: .5rem; }
</style>
</head>
<body data-on-load="@get('/toasts/stream', {openWhenHidden: true})">
<h1>toastkit demo</h1>
<p>Push a toast and watch it arrive over the live stream. Open a second tab
to see the same scope update everywhere.</p>
<p>
<button data-on-click="@post('/demo/success')">Success</button>
<button data-on-click="@post('/demo/error')">Error</button>
<button data-on-click="@post('/demo/warning')">Warning</button>
<button data-on-click="@post('/demo/info')">Info</button>
</p>
`

const indexFoot = `</body>
</html>
`

// indexHandler serves the demo page with the current toasts pre-rendered so
// the region is populated before the stream connects.
func indexHandler(hub *toast.Hub) http.HandlerFunc {
	scope := toastkit.CookieScope(toastkit.DefaultScopeCookie, "global")

	return func(w http.ResponseWriter, r *http.Request) {
		mgr := hub.Scope(scope(r))
		items, err := mgr.List(r.Context())
		if err != nil {
			http.Error(w, "failed to list toasts", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(indexHead))
		_ = toastkit.Region(toastkit.DefaultBasePath, items).Render(r.Context(), w)
		_, _ = w.Write([]byte(indexFoot))
	}
}
