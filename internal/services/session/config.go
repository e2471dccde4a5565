package session

import "time"

// Config holds session store settings
type Config struct {
	// Secret signs the session-id cookie
	Secret string

	// TTL is how long an idle session survives in Redis
	TTL time.Duration

	// Pool settings for the Redis client
	PoolSize     int
	MinIdleConns int
}

// DefaultConfig returns sensible defaults for session configuration
func DefaultConfig() Config {
	return Config{
		TTL:          24 * time.Hour,
		PoolSize:     10,
		MinIdleConns: 2,
	}
}
