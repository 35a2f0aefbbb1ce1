// Package cache provides a read-through cache for the board's hot reads.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a key is absent or expired.
var ErrNotFound = errors.New("key not found in cache")

// Cache stores JSON-encoded values under string keys with a TTL.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get decodes the cached value for key into dest. Returns ErrNotFound
	// when the key is absent.
	Get(ctx context.Context, key string, dest any) error

	// Set stores value under key for ttl. A zero ttl uses DefaultTTL.
	Set(ctx context.Context, key string, value any, ttl time.Duration) error

	// Delete removes the given keys. Missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error

	Close() error
}

// DefaultTTL applies when Set is called with a zero TTL.
const DefaultTTL = 5 * time.Minute

// Keys for the board's cached reads. Job mutations invalidate all of them.
const (
	KeyFeaturedJobs = "jobs:featured"
	KeyLatestJobs   = "jobs:latest"
	KeyCategories   = "jobs:categories"
	KeyStats        = "admin:stats"
)

// JobKeys lists every key invalidated by a job or application mutation.
var JobKeys = []string{KeyFeaturedJobs, KeyLatestJobs, KeyCategories, KeyStats}
