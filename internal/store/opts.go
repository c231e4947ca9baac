package store

import (
	"strings"
	"time"
)

// DetectDSNType reports which SQL backend a DSN addresses: "postgres"
// for URL or key=value connection strings, "sqlite3" for file paths.
func DetectDSNType(dsn string) string {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") || strings.Contains(dsn, "host=") {
		return "postgres"
	}
	return "sqlite3"
}

// Opts holds configuration values shared by the storage backends.
type Opts struct {
	// DSN is the SQLite file path or Postgres connection string.
	DSN string
	// Addr is the Redis host:port.
	Addr string
	// Password is the Redis password, empty for none.
	Password string
	// DB is the Redis logical database number.
	DB int
	// KeyPrefix namespaces Redis keys; defaults to "journalpipe".
	KeyPrefix string
	// TTL bounds the lifetime of Redis-held records; 0 keeps them forever.
	TTL time.Duration
}

// Option configures a storage backend.
type Option func(*Opts)

// WithDSN sets the database DSN.
func WithDSN(dsn string) Option {
	return func(o *Opts) { o.DSN = dsn }
}

// WithAddr sets the Redis address.
func WithAddr(addr string) Option {
	return func(o *Opts) { o.Addr = addr }
}

// WithPassword sets the Redis password.
func WithPassword(password string) Option {
	return func(o *Opts) { o.Password = password }
}

// WithDB sets the Redis database number.
func WithDB(db int) Option {
	return func(o *Opts) { o.DB = db }
}

// WithKeyPrefix overrides the Redis key namespace.
func WithKeyPrefix(prefix string) Option {
	return func(o *Opts) { o.KeyPrefix = prefix }
}

// WithTTL sets the Redis record lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(o *Opts) { o.TTL = ttl }
}
