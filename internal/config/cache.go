package config

import (
	"os"
	"time"
)

// SlotCacheConfig defines settings for the availability slot cache.
// When Enabled is false or no Redis client could be constructed,
// availability queries always compute directly.  TTL bounds how
// stale a cached slot list can be when an invalidation is missed.
type SlotCacheConfig struct {
	Enabled bool
	TTL     time.Duration
}

// LoadSlotCacheConfig reads environment variables to build a
// SlotCacheConfig.  Defaults are used when variables are not set.
func LoadSlotCacheConfig() SlotCacheConfig {
	return SlotCacheConfig{
		Enabled: getenv("CACHE_ENABLED", "true") == "true",
		TTL:     parseDur(getenv("CACHE_TTL", "5m")),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDur(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 5 * time.Minute
	}
	return d
}
