package mongo

import "time"

// Config holds MongoDB connection settings
type Config struct {
	// URL is the connection string (e.g. mongodb://localhost:27017)
	URL string

	// Database is the database name holding the players collection
	Database string

	// ConnectTimeout bounds the initial connect + ping
	ConnectTimeout time.Duration
}

// DefaultConfig returns sensible defaults for Mongo configuration
func DefaultConfig() Config {
	return Config{
		URL:            "mongodb://localhost:27017",
		Database:       "teamgate",
		ConnectTimeout: 5 * time.Second,
	}
}
