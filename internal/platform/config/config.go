package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr          string
	MetricsAddr   string
	LogLevel      string
	LogFormat     string
	RegulatedMode bool
	MaxBatch      int

	RateLimit RateLimitConfig
	Redis     RedisConfig
}

// RateLimitConfig holds per-class request budgets per client IP.
type RateLimitConfig struct {
	Disabled bool
	Generate int
	Validate int
	Read     int
	Window   time.Duration
}

// RedisConfig configures the optional shared rate limit store.
// An empty URL keeps rate limiting in memory.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Defaults applied when a variable is unset.
const (
	DefaultAddr        = ":8080"
	DefaultMetricsAddr = ":9090"
	DefaultMaxBatch    = 1000
)

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() (Server, error) {
	return fromLookup(os.LookupEnv)
}

func fromLookup(lookup func(string) (string, bool)) (Server, error) {
	e := envReader{lookup: lookup}

	cfg := Server{
		Addr:          e.str("HKID_GATEWAY_ADDR", DefaultAddr),
		MetricsAddr:   e.str("HKID_METRICS_ADDR", DefaultMetricsAddr),
		LogLevel:      e.str("LOG_LEVEL", "info"),
		LogFormat:     e.str("LOG_FORMAT", "json"),
		RegulatedMode: e.boolean("REGULATED_MODE"),
		MaxBatch:      e.integer("HKID_MAX_BATCH", DefaultMaxBatch),
		RateLimit: RateLimitConfig{
			Disabled: e.boolean("RATE_LIMIT_DISABLED"),
			Generate: e.integer("RATE_LIMIT_GENERATE", 30),
			Validate: e.integer("RATE_LIMIT_VALIDATE", 120),
			Read:     e.integer("RATE_LIMIT_READ", 300),
			Window:   e.duration("RATE_LIMIT_WINDOW", time.Minute),
		},
		Redis: RedisConfig{
			URL:          e.str("REDIS_URL", ""),
			PoolSize:     e.integer("REDIS_POOL_SIZE", 10),
			MinIdleConns: e.integer("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  e.duration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  e.duration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: e.duration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
	}
	if e.err != nil {
		return Server{}, e.err
	}
	if cfg.MaxBatch < 1 {
		return Server{}, fmt.Errorf("HKID_MAX_BATCH must be positive, got %d", cfg.MaxBatch)
	}
	if cfg.RateLimit.Window <= 0 {
		return Server{}, fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %s", cfg.RateLimit.Window)
	}
	return cfg, nil
}

// envReader records the first parse error so FromEnv can read every
// variable in one pass.
type envReader struct {
	lookup func(string) (string, bool)
	err    error
}

func (e *envReader) str(key, def string) string {
	if v, ok := e.lookup(key); ok && v != "" {
		return v
	}
	return def
}

func (e *envReader) boolean(key string) bool {
	v, ok := e.lookup(key)
	if !ok || v == "" {
		return false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		e.fail(key, v, err)
		return false
	}
	return b
}

func (e *envReader) integer(key string, def int) int {
	v, ok := e.lookup(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		e.fail(key, v, err)
		return def
	}
	return n
}

func (e *envReader) duration(key string, def time.Duration) time.Duration {
	v, ok := e.lookup(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		e.fail(key, v, err)
		return def
	}
	return d
}

func (e *envReader) fail(key, value string, err error) {
	if e.err == nil {
		e.err = fmt.Errorf("invalid %s=%q: %w", key, value, err)
	}
}
