package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Auth     AuthConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	Snapshot SnapshotConfig
}

type AuthConfig struct {
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=24h"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=workforce_system"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type SnapshotConfig struct {
	// IntervalMinutes is the scheduled cadence between snapshot runs.
	IntervalMinutes int `env:"SNAPSHOT_INTERVAL_MINUTES, default=60"`
	// RetentionCount bounds how many artifacts are kept; 0 disables the bound.
	RetentionCount int `env:"SNAPSHOT_RETENTION_COUNT, default=10"`
	// RetentionMaxAgeHours deletes artifacts older than this; 0 disables the bound.
	RetentionMaxAgeHours int `env:"SNAPSHOT_RETENTION_MAX_AGE_HOURS, default=0"`
	// Dir is the directory snapshot artifacts are written to.
	Dir string `env:"SNAPSHOT_DIR, default=./snapshots"`
}

// Interval returns the scheduled cadence as a duration.
func (c SnapshotConfig) Interval() time.Duration {
	return time.Duration(c.IntervalMinutes) * time.Minute
}

// MaxAge returns the age bound as a duration; zero means unbounded.
func (c SnapshotConfig) MaxAge() time.Duration {
	return time.Duration(c.RetentionMaxAgeHours) * time.Hour
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
