// Package config provides a type-safe, generic and cached way to load
// application configuration from environment variables.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11 behind a
// small API that:
//
//   - Loads values from one or multiple .env files (falling back to the
//     default .env in the current working directory).
//   - Parses the environment into any Go struct using field tags.
//   - Caches each successfully loaded configuration type so it is parsed once
//     per process, no matter how many components ask for it.
//   - Exposes panicking helpers (MustLoadEnv, MustLoad) for configuration the
//     application cannot start without.
//   - Allows explicit cache reset or forced reload, which is handy in tests.
//
// # Architecture
//
// Internally the package keeps a singleton cache storing parsed struct copies
// keyed by their type name. Each key also holds a sync.Once so the parsing
// work runs at most once per configuration type even under concurrent access.
//
// # Usage
//
// Describe the configuration as a struct with env tags:
//
//	type AppConfig struct {
//		Env             string        `env:"APP_ENV" envDefault:"development"`
//		DefaultDuration time.Duration `env:"TOAST_DEFAULT_DURATION" envDefault:"5s"`
//	}
//
// Then populate it:
//
//	var cfg AppConfig
//	if err := config.Load(&cfg); err != nil {
//		log.Fatalf("parsing env: %v", err)
//	}
//
// Subsequent calls to config.Load with the same struct type are served from
// the in-memory cache without re-parsing.
//
// # Error Handling
//
// The package defines sentinel errors comparable with errors.Is:
//
//   - ErrLoadingEnvFile – a requested .env file could not be read.
//   - ErrParsingConfig – environment variables failed to parse into the struct.
//   - ErrConfigNotLoaded – the config type could not be served from the cache.
//   - ErrNilPointer – a nil pointer was passed to Load or MustLoad.
//
// # Testing Helpers
//
// Use ResetCache to clear the global cache between tests, or
// ForceReloadConfig(&cfg) to reload a particular struct after the process
// environment changes.
package config
