package config

import (
	"errors"
	"fmt"
	"log"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// Offer TTL bounds accepted by Validate.
const (
	MinOfferTTL = 10 * time.Second
	MaxOfferTTL = 10 * time.Minute
)

// Config stores service settings shared by the API and the worker.
type Config struct {
	Port      int
	DB        DB
	Dispatch  Dispatch
	Auth      Auth
	Kafka     Kafka
	Redis     Redis
	RateLimit RateLimit
	Pprof     PprofConfig
	Log       Log
}

// DB stores PostgreSQL connection settings.
type DB struct {
	Host string
	Port string
	User string
	Pass string
	Name string
}

// DSN builds a postgres:// connection string.
func (d DB) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Pass),
		Host:     net.JoinHostPort(d.Host, d.Port),
		Path:     "/" + d.Name,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// Dispatch tunes the assignment engine and its sweep loop.
type Dispatch struct {
	OfferTTL         time.Duration
	SweepInterval    time.Duration
	SweepBatch       int
	RetryUnassigned  bool
	OperationTimeout time.Duration
}

// Auth holds shared secrets.
type Auth struct {
	JWTSecret  string
	CronSecret string
}

// Kafka stores order event consumer settings.
type Kafka struct {
	Brokers     []string
	GroupID     string
	OrdersTopic string
}

// Enabled reports whether the consumer has everything it needs.
func (k Kafka) Enabled() bool {
	return len(k.Brokers) > 0 && k.GroupID != "" && k.OrdersTopic != ""
}

// Redis stores sweep lease settings.
type Redis struct {
	Addr     string
	Password string
	DB       int
}

// Enabled reports whether a Redis address is configured.
func (r Redis) Enabled() bool { return r.Addr != "" }

// RateLimit stores per-client-IP limiter settings.
type RateLimit struct {
	Enabled    bool
	Rate       float64
	Burst      int
	TTL        time.Duration
	MaxBuckets int
}

// PprofConfig stores pprof server settings.
type PprofConfig struct {
	Enabled bool
	Addr    string
	User    string
	Pass    string
}

// Log selects the logging backend and level.
type Log struct {
	Backend string
	Level   string
}

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg := Default()
	r := envReader{}

	cfg.Port = r.int("PORT", cfg.Port)

	cfg.DB.Host = r.str("POSTGRES_HOST", cfg.DB.Host)
	cfg.DB.Port = r.str("POSTGRES_PORT", cfg.DB.Port)
	cfg.DB.User = r.str("POSTGRES_USER", cfg.DB.User)
	cfg.DB.Pass = r.str("POSTGRES_PASSWORD", cfg.DB.Pass)
	cfg.DB.Name = r.str("POSTGRES_DB", cfg.DB.Name)

	cfg.Dispatch.OfferTTL = r.duration("DISPATCH_OFFER_TTL", cfg.Dispatch.OfferTTL)
	cfg.Dispatch.SweepInterval = r.duration("DISPATCH_SWEEP_INTERVAL", cfg.Dispatch.SweepInterval)
	cfg.Dispatch.SweepBatch = r.int("DISPATCH_SWEEP_BATCH", cfg.Dispatch.SweepBatch)
	cfg.Dispatch.RetryUnassigned = r.bool("DISPATCH_RETRY_UNASSIGNED", cfg.Dispatch.RetryUnassigned)
	cfg.Dispatch.OperationTimeout = r.duration("DISPATCH_OPERATION_TIMEOUT", cfg.Dispatch.OperationTimeout)

	cfg.Auth.JWTSecret = r.str("AUTH_JWT_SECRET", cfg.Auth.JWTSecret)
	cfg.Auth.CronSecret = r.str("CRON_SECRET", cfg.Auth.CronSecret)

	cfg.Kafka.Brokers = r.list("KAFKA_BROKERS", cfg.Kafka.Brokers)
	cfg.Kafka.GroupID = r.str("KAFKA_GROUP_ID", cfg.Kafka.GroupID)
	cfg.Kafka.OrdersTopic = r.str("KAFKA_ORDERS_TOPIC", cfg.Kafka.OrdersTopic)

	cfg.Redis.Addr = r.str("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Password = r.str("REDIS_PASSWORD", cfg.Redis.Password)
	cfg.Redis.DB = r.int("REDIS_DB", cfg.Redis.DB)

	cfg.RateLimit.Enabled = r.bool("RATE_LIMIT_ENABLED", cfg.RateLimit.Enabled)
	cfg.RateLimit.Rate = r.float("RATE_LIMIT_RATE", cfg.RateLimit.Rate)
	cfg.RateLimit.Burst = r.int("RATE_LIMIT_BURST", cfg.RateLimit.Burst)
	cfg.RateLimit.TTL = r.duration("RATE_LIMIT_TTL", cfg.RateLimit.TTL)
	cfg.RateLimit.MaxBuckets = r.int("RATE_LIMIT_MAX_BUCKETS", cfg.RateLimit.MaxBuckets)

	cfg.Pprof.Enabled = r.bool("PPROF_ENABLED", cfg.Pprof.Enabled)
	cfg.Pprof.Addr = r.str("PPROF_ADDR", cfg.Pprof.Addr)
	cfg.Pprof.User = r.str("PPROF_USER", cfg.Pprof.User)
	cfg.Pprof.Pass = r.str("PPROF_PASS", cfg.Pprof.Pass)

	cfg.Log.Backend = r.str("LOG_BACKEND", cfg.Log.Backend)
	cfg.Log.Level = r.str("LOG_LEVEL", cfg.Log.Level)

	if r.err != nil {
		return nil, r.err
	}

	pflag.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	pflag.DurationVar(&cfg.Dispatch.OfferTTL, "offer-ttl", cfg.Dispatch.OfferTTL, "how long an offer stays valid")
	pflag.StringVar(&cfg.Log.Level, "log-level", cfg.Log.Level, "debug|info|warn|error")
	if err := pflag.CommandLine.Parse(os.Args[1:]); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if p, err := strconv.Atoi(c.DB.Port); err != nil || p <= 0 || p > 65535 {
		return fmt.Errorf("invalid POSTGRES_PORT: %q", c.DB.Port)
	}
	if c.Dispatch.OfferTTL < MinOfferTTL || c.Dispatch.OfferTTL > MaxOfferTTL {
		return fmt.Errorf("DISPATCH_OFFER_TTL must be within [%s, %s], got %s", MinOfferTTL, MaxOfferTTL, c.Dispatch.OfferTTL)
	}
	if c.Dispatch.SweepInterval <= 0 {
		return fmt.Errorf("DISPATCH_SWEEP_INTERVAL must be positive, got %s", c.Dispatch.SweepInterval)
	}
	if c.Dispatch.SweepBatch <= 0 {
		return fmt.Errorf("DISPATCH_SWEEP_BATCH must be positive, got %d", c.Dispatch.SweepBatch)
	}
	if c.Dispatch.OperationTimeout <= 0 {
		return fmt.Errorf("DISPATCH_OPERATION_TIMEOUT must be positive, got %s", c.Dispatch.OperationTimeout)
	}
	if c.RateLimit.Enabled && (c.RateLimit.Rate <= 0 || c.RateLimit.Burst <= 0) {
		return errors.New("RATE_LIMIT_RATE and RATE_LIMIT_BURST must be positive")
	}
	switch c.Log.Backend {
	case "slog", "zap":
	default:
		return fmt.Errorf("unknown LOG_BACKEND %q", c.Log.Backend)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown LOG_LEVEL %q", c.Log.Level)
	}
	return nil
}

// envReader parses variables, keeping the first error.
type envReader struct{ err error }

func (r *envReader) lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func (r *envReader) fail(key, v string, err error) {
	if r.err == nil {
		r.err = fmt.Errorf("invalid %s=%q: %w", key, v, err)
	}
}

func (r *envReader) str(key, def string) string {
	if v, ok := r.lookup(key); ok {
		return v
	}
	return def
}

func (r *envReader) int(key string, def int) int {
	v, ok := r.lookup(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		r.fail(key, v, err)
		return def
	}
	return n
}

func (r *envReader) float(key string, def float64) float64 {
	v, ok := r.lookup(key)
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		r.fail(key, v, err)
		return def
	}
	return f
}

func (r *envReader) bool(key string, def bool) bool {
	v, ok := r.lookup(key)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		r.fail(key, v, err)
		return def
	}
	return b
}

func (r *envReader) duration(key string, def time.Duration) time.Duration {
	v, ok := r.lookup(key)
	if !ok {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		r.fail(key, v, err)
		return def
	}
	return d
}

func (r *envReader) list(key string, def []string) []string {
	v, ok := r.lookup(key)
	if !ok {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
