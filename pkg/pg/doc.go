// Package pg provides PostgreSQL connection pooling with environment-based
// configuration, ping verification with linear-backoff retries, and a
// healthcheck helper for readiness probes.
//
// # Usage
//
//	var cfg pg.Config
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer pool.Close()
//
// The returned pool is a standard *pgxpool.Pool from github.com/jackc/pgx/v5
// and can be passed directly to toast.NewPostgresStore. Schema migrations for
// the toast tables ship with the toast package; run toast.MigratePostgres once
// at startup before serving traffic.
//
// # Healthchecks
//
// Healthcheck adapts a pool into a func(context.Context) error for use with
// httpserver.HealthCheckHandler:
//
//	mux.Handle("/healthz", httpserver.HealthCheckHandler(ctx, log, pg.Healthcheck(pool)))
package pg
