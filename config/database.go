package config

import "time"

// DBConfig contains PostgreSQL database configuration.
type DBConfig struct {
	Host     string `env:"HOST"     envDefault:"localhost"`
	Port     int    `env:"PORT"     envDefault:"5432"`
	User     string `env:"USER"     envDefault:"rutaflow"`
	Password string `env:"PASSWORD" envDefault:"rutaflow"`
	Name     string `env:"NAME"     envDefault:"rutaflow"`
	SSLMode  string `env:"SSL_MODE" envDefault:"disable"` // Use 'disable' for local dev, 'require' for production
	// RunMigrationsOnStart controls whether the application automatically applies migrations during startup.
	RunMigrationsOnStart bool `env:"RUN_MIGRATIONS_ON_START" envDefault:"true"`
}

// RedisConfig contains Redis configuration for the optional result cache.
type RedisConfig struct {
	// Enabled turns the Redis-backed result cache on. The service runs
	// without Redis when disabled; polls always hit Postgres.
	Enabled  bool   `env:"ENABLED"  envDefault:"false"`
	URI      string `env:"URI"      envDefault:"localhost:6379"`
	Password string `env:"PASSWORD" envDefault:""`
	DB       int    `env:"DB"       envDefault:"0"`
}

// CacheConfig contains cache behavior configuration.
type CacheConfig struct {
	// ResultTTL is the TTL for cached terminal route results. Terminal
	// results are immutable, so the TTL only bounds memory use.
	ResultTTL time.Duration `env:"CACHE_RESULT_TTL" envDefault:"30m"`
}

// Sanitize applies guardrails to cache configuration values.
func (c *CacheConfig) Sanitize() {
	if c.ResultTTL <= 0 {
		c.ResultTTL = 30 * time.Minute
	}
}
