package cache

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation.
// The API uses this to keep per-user saved maps from colliding in a shared
// Redis instance.
//
// Example usage:
//
//	// User-specific keys for private maps
//	userKeyer := NewScopedKeyer(NewDefaultKeyer(), "user:abc123:")
//
//	// Global keys for shared maps
//	globalKeyer := NewDefaultKeyer()
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// MapKey generates a prefixed key for a parsed world map.
func (k *ScopedKeyer) MapKey(source string) string {
	return k.prefix + k.inner.MapKey(source)
}

// RouteKey generates a prefixed key for a computed route.
func (k *ScopedKeyer) RouteKey(mapHash, start, goal string) string {
	return k.prefix + k.inner.RouteKey(mapHash, start, goal)
}

// ArtifactKey generates a prefixed key for a rendered artifact.
func (k *ScopedKeyer) ArtifactKey(mapHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(mapHash, opts)
}
