package redis

import "time"

// Config holds Redis connection parameters loaded from the environment.
type Config struct {
	// ConnectionURL is the Redis connection string, e.g. redis://localhost:6379/0.
	// Leave it empty to signal that no Redis backend is configured.
	ConnectionURL string `env:"REDIS_URL"`
	// RetryAttempts is the number of ping attempts made before giving up.
	RetryAttempts int `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	// RetryInterval is the pause between consecutive ping attempts.
	RetryInterval time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s"`
	// ConnectTimeout bounds the total time spent establishing the connection.
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
}
