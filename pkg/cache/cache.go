// Package cache provides caching for wayfind's planning pipeline.
//
// Two things are cached: parsed world maps (keyed by their source) and
// computed routes (keyed by map content hash plus the query endpoints).
// Routes are cheap to compute but an automation loop may ask for the same
// one thousands of times, so even a file-backed cache pays for itself.
//
// Backends:
//   - [FileCache]: hash-sharded files under the XDG cache dir, for the CLI
//   - [RedisCache]: shared cache for multi-instance API deployments
//   - [NullCache]: no-op, for tests and --no-cache
//
// Keys are produced by a [Keyer] so that CLI, API, and tests agree on the
// key layout; [ScopedKeyer] adds a prefix for per-tenant isolation.
package cache

import (
	"context"
	"time"
)

// TTL values for the different entry kinds.
const (
	// TTLMap is how long parsed world maps stay cached. Maps change when
	// their source file changes, and the key embeds the source, so this is
	// generous.
	TTLMap = 24 * time.Hour

	// TTLRoute is how long computed routes stay cached. Routes are pure
	// functions of (map hash, start, goal), so they never go stale; the TTL
	// only bounds disk usage.
	TTLRoute = 7 * 24 * time.Hour

	// TTLArtifact is how long rendered artifacts (DOT, SVG) stay cached.
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is the interface all cache backends implement.
// Get returns (data, hit, error); a miss is (nil, false, nil), not an error.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Keyer generates cache keys for the different entry kinds.
type Keyer interface {
	// MapKey generates a key for a parsed world map, keyed by its source
	// (file path, manifest hash, or store name).
	MapKey(source string) string

	// RouteKey generates a key for a computed route.
	RouteKey(mapHash, start, goal string) string

	// ArtifactKey generates a key for a rendered artifact.
	ArtifactKey(mapHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts are the options that distinguish rendered artifacts of the
// same map from each other.
type ArtifactKeyOpts struct {
	Format    string `json:"format"`
	Start     string `json:"start,omitempty"`
	Goal      string `json:"goal,omitempty"`
	Highlight bool   `json:"highlight,omitempty"`
}

// DefaultKeyer is the standard key layout shared by CLI and API.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer { return &DefaultKeyer{} }

// MapKey generates a key for a parsed world map.
func (k *DefaultKeyer) MapKey(source string) string {
	return "map:" + Hash([]byte(source))
}

// RouteKey generates a key for a computed route.
func (k *DefaultKeyer) RouteKey(mapHash, start, goal string) string {
	return hashKey("route", mapHash, start, goal)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(mapHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", mapHash, opts)
}
