package config

import (
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/prasetyowira/tyrelabel/constant"
)

// Config holds the settings of the label HTTP service
type Config struct {
	Port        int    `env:"PORT" envDefault:"8080"`
	DatabaseURL string `env:"DATABASE_URL" envDefault:"tyrelabel.db"`
	AuthUser    string `env:"AUTH_USER" envDefault:"admin"`
	AuthPass    string `env:"AUTH_PASS" envDefault:"password"`
	CacheSize   int    `env:"CACHE_SIZE" envDefault:"1000"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"INFO"`
	Environment string `env:"APP_ENV" envDefault:"production"`
}

var dotenvLoaded sync.Once

// LoadConfig reads the configuration from the environment. A .env file in the
// working directory is loaded first when present; variables already set in
// the environment take precedence over it.
func LoadConfig() (Config, error) {
	dotenvLoaded.Do(func() {
		// The .env file is optional
		_ = godotenv.Load()
	})

	return parse(env.Options{})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Environment != constant.EnvDevelopment && cfg.Environment != constant.EnvProduction {
		return Config{}, fmt.Errorf("invalid APP_ENV %q: must be %s or %s", cfg.Environment, constant.EnvDevelopment, constant.EnvProduction)
	}

	if cfg.CacheSize < 1 {
		return Config{}, fmt.Errorf("invalid CACHE_SIZE %d: must be at least 1", cfg.CacheSize)
	}

	return cfg, nil
}

// IsProduction reports whether the service runs with production logging
func (c Config) IsProduction() bool {
	return c.Environment == constant.EnvProduction
}
