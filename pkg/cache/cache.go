// Package cache provides result caching for the snapshot pipeline.
//
// The [Cache] interface abstracts over backends so the CLI and the HTTP API
// share one caching model:
//   - [FileCache]: file-based cache for CLI usage (~/.cache/scenesnap/)
//   - [RedisCache]: Redis-backed cache for server deployments
//   - [NullCache]: no-op cache for tests or --no-cache runs
//
// Keys are produced by a [Keyer] from the content hash of the input document
// plus the options that influence the result, so a changed document or a
// changed selection never serves a stale payload.
package cache

import (
	"context"
	"time"
)

// Time-to-live per pipeline stage. Documents come from remote sources and
// go stale fastest; snapshots and rendered artifacts are pure functions of
// the document bytes and their options.
const (
	TTLDocument = 24 * time.Hour
	TTLSnapshot = 7 * 24 * time.Hour
	TTLRender   = 7 * 24 * time.Hour
)

// Cache is the interface all cache backends implement.
// Data is opaque bytes; callers encode/decode their own payloads.
type Cache interface {
	// Get retrieves a value. The bool reports whether the key was found
	// and fresh; a miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a time-to-live. A ttl of 0 means the entry
	// never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// SnapshotKeyOpts are the options that influence a snapshot payload.
type SnapshotKeyOpts struct {
	// Selection is the ordered list of selected node ids. An empty list
	// means the whole page.
	Selection []string
}

// RenderKeyOpts are the options that influence a rendered artifact.
type RenderKeyOpts struct {
	Format   string // "dot" or "svg"
	Detailed bool
}

// Keyer generates cache keys for the pipeline stages.
type Keyer interface {
	// DocumentKey keys a raw scene document fetched from a remote source.
	DocumentKey(source string) string

	// SnapshotKey keys a snapshot payload by document content hash and
	// selection.
	SnapshotKey(docHash string, opts SnapshotKeyOpts) string

	// RenderKey keys a rendered artifact by document content hash and
	// render options.
	RenderKey(docHash string, opts RenderKeyOpts) string
}

// DefaultKeyer produces hashed, prefix-namespaced keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// DocumentKey generates a key for remote document caching.
func (k *DefaultKeyer) DocumentKey(source string) string {
	return hashKey("doc", source)
}

// SnapshotKey generates a key for snapshot payload caching.
func (k *DefaultKeyer) SnapshotKey(docHash string, opts SnapshotKeyOpts) string {
	return hashKey("snap", docHash, opts.Selection)
}

// RenderKey generates a key for rendered artifact caching.
func (k *DefaultKeyer) RenderKey(docHash string, opts RenderKeyOpts) string {
	return hashKey("render", docHash, opts.Format, opts.Detailed)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
