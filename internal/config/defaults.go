package config

import "time"

const defaultPort = 8080

var defaultDB = DB{
	Host: "127.0.0.1",
	Port: "5432",
	User: "myuser",
	Pass: "mypassword",
	Name: "test_db",
}

var defaultDispatch = Dispatch{
	OfferTTL:         90 * time.Second,
	SweepInterval:    20 * time.Second,
	SweepBatch:       100,
	RetryUnassigned:  true,
	OperationTimeout: 3 * time.Second,
}

var defaultRateLimit = RateLimit{
	Enabled:    true,
	Rate:       10,
	Burst:      20,
	TTL:        5 * time.Minute,
	MaxBuckets: 10000,
}

var defaultPprof = PprofConfig{
	Addr: "127.0.0.1:6060",
}

var defaultLog = Log{
	Backend: "slog",
	Level:   "info",
}

// Default returns a Config populated with defaults only.
func Default() *Config {
	return &Config{
		Port:      defaultPort,
		DB:        defaultDB,
		Dispatch:  defaultDispatch,
		RateLimit: defaultRateLimit,
		Pprof:     defaultPprof,
		Log:       defaultLog,
	}
}

// DefaultPort returns the default port.
func DefaultPort() int {
	return defaultPort
}

// DefaultDB returns the default database settings.
func DefaultDB() DB {
	return defaultDB
}

// DefaultDispatch returns the default engine settings.
func DefaultDispatch() Dispatch {
	return defaultDispatch
}
