package config

import (
	"os"
	"strconv"
	"time"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr      string
	LogFormat string // "json" or "text"

	Oracle   OracleConfig
	Redis    RedisConfig
	Postgres PostgresConfig

	// HistoryRetention caps the validation history store.
	HistoryRetention int
}

// OracleConfig points at the external ephemeris service. An empty URL
// selects the deterministic mock oracle.
type OracleConfig struct {
	URL     string
	Timeout time.Duration
}

// RedisConfig tunes the optional redis-backed history store.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// PostgresConfig points at the optional postgres-backed history store.
type PostgresConfig struct {
	DSN string
}

// FromEnv builds the full config from environment variables so main stays
// lean. Every value has a development default; only external endpoints are
// opt-in.
func FromEnv() Server {
	return Server{
		Addr:      envString("STELLIUM_ADDR", ":8080"),
		LogFormat: envString("STELLIUM_LOG_FORMAT", "json"),
		Oracle: OracleConfig{
			URL:     os.Getenv("STELLIUM_ORACLE_URL"),
			Timeout: envDuration("STELLIUM_ORACLE_TIMEOUT", 5*time.Second),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("STELLIUM_REDIS_URL"),
			PoolSize:     envInt("STELLIUM_REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("STELLIUM_REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("STELLIUM_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("STELLIUM_REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("STELLIUM_REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Postgres: PostgresConfig{
			DSN: os.Getenv("STELLIUM_POSTGRES_DSN"),
		},
		HistoryRetention: envInt("STELLIUM_HISTORY_RETENTION", 1000),
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
