package redis

// Config holds Redis connection settings.
//
// Engine records are financial history: nothing here expires, so there are
// no TTL knobs.
type Config struct {
	// URL is the Redis connection URL (e.g. redis://localhost:6379)
	URL string

	// Pool settings
	PoolSize     int
	MinIdleConns int
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:          "redis://localhost:6379",
		PoolSize:     10,
		MinIdleConns: 2,
	}
}
