// Package redis provides Redis connection management with environment-based
// configuration, ping verification with retries, and a healthcheck helper
// for readiness probes.
//
// # Usage
//
//	var cfg redis.Config
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
// The returned client is a standard *redis.Client from github.com/redis/go-redis/v9
// and can be passed directly to toast.NewRedisStore.
//
// # Healthchecks
//
// Healthcheck adapts a client into a func(context.Context) error for use with
// httpserver.HealthCheckHandler:
//
//	mux.Handle("/healthz", httpserver.HealthCheckHandler(ctx, log, redis.Healthcheck(client)))
package redis
