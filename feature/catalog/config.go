package catalog

import "time"

// Config holds configuration for metadata loading.
type Config struct {
	// Prefix is the folder in the storage bucket holding the metadata documents.
	Prefix string `mapstructure:"prefix" default:"metadata"`
	// CacheTTLSeconds bounds how long a loaded catalog is reused. 0 disables caching.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"300"`
}

// CacheTTL returns the cache lifetime as a duration.
func (c Config) CacheTTL() time.Duration {
	if c.CacheTTLSeconds <= 0 {
		return 0
	}
	return time.Duration(c.CacheTTLSeconds) * time.Second
}
