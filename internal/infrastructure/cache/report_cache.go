// Package cache provides the trend report cache with Redis and in-memory
// backends.
package cache

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// ReportCache stores rendered trend reports keyed by query.
type ReportCache interface {
	// Get returns the cached payload for key, reporting whether it was
	// present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores payload under key with the given TTL.
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error
	// Ping reports backend health.
	Ping(ctx context.Context) error
	// Close releases backend resources. Safe to call multiple times.
	Close() error
}

// ReportKey builds the cache key for a trend query. Locations differing
// only in case or surrounding whitespace share an entry.
func ReportKey(location string, days int) string {
	normalized := strings.ToLower(strings.Join(strings.Fields(location), " "))
	return fmt.Sprintf("trend:%s:%d", normalized, days)
}
