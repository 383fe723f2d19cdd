package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
// Useful when several tenants or environments share one Redis instance.
//
// Example usage:
//
//	// Tenant-specific keys
//	tenantKeyer := NewScopedKeyer(NewDefaultKeyer(), "tenant:abc123:")
//
//	// Global keys
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

// DocumentKey generates a prefixed key for remote document caching.
func (k *ScopedKeyer) DocumentKey(source string) string {
	return k.prefix + k.inner.DocumentKey(source)
}

// SnapshotKey generates a prefixed key for snapshot payload caching.
func (k *ScopedKeyer) SnapshotKey(docHash string, opts SnapshotKeyOpts) string {
	return k.prefix + k.inner.SnapshotKey(docHash, opts)
}

// RenderKey generates a prefixed key for rendered artifact caching.
func (k *ScopedKeyer) RenderKey(docHash string, opts RenderKeyOpts) string {
	return k.prefix + k.inner.RenderKey(docHash, opts)
}
