package cache

import (
	"context"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	// Miss before Set
	_, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("Get before Set should miss")
	}

	// Round trip
	if err := c.Set(ctx, "key", []byte("value"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if !hit || string(data) != "value" {
		t.Errorf("Get = (%q, %v), want (value, true)", data, hit)
	}

	// Expired entries are treated as a miss
	if err := c.Set(ctx, "stale", []byte("old"), -time.Second); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	_, hit, err = c.Get(ctx, "stale")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("expired entry should miss")
	}

	// Delete removes the entry; deleting again is not an error
	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("Get after Delete should miss")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete of missing key should not error: %v", err)
	}
}

func TestHash(t *testing.T) {
	// Test determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Test different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// Test hash length (SHA-256 produces 64 hex chars)
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	// DocumentKey is deterministic and source-sensitive
	d1 := k.DocumentKey("https://example.com/a.json")
	d2 := k.DocumentKey("https://example.com/a.json")
	d3 := k.DocumentKey("https://example.com/b.json")
	if d1 != d2 {
		t.Error("DocumentKey should be deterministic")
	}
	if d1 == d3 {
		t.Error("Different sources should produce different keys")
	}

	// SnapshotKey should include the selection in the hash
	s1 := k.SnapshotKey("hash123", SnapshotKeyOpts{Selection: []string{"1:1"}})
	s2 := k.SnapshotKey("hash123", SnapshotKeyOpts{Selection: []string{"1:2"}})
	if s1 == s2 {
		t.Error("Different selections should produce different keys")
	}

	// RenderKey
	r1 := k.RenderKey("hash123", RenderKeyOpts{Format: "svg"})
	r2 := k.RenderKey("hash123", RenderKeyOpts{Format: "dot"})
	if r1 == r2 {
		t.Error("Different RenderKeyOpts should produce different keys")
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "tenant:123:")

	// All keys should be prefixed
	key := scoped.SnapshotKey("hash123", SnapshotKeyOpts{})
	if len(key) < 12 || key[:11] != "tenant:123:" {
		t.Errorf("ScopedKeyer SnapshotKey should be prefixed: %s", key)
	}
	if key[11:] != inner.SnapshotKey("hash123", SnapshotKeyOpts{}) {
		t.Error("ScopedKeyer should delegate to the inner keyer")
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	// Should use DefaultKeyer when inner is nil
	scoped := NewScopedKeyer(nil, "prefix:")
	want := "prefix:" + NewDefaultKeyer().DocumentKey("src")
	if got := scoped.DocumentKey("src"); got != want {
		t.Errorf("Unexpected key with nil inner: %s", got)
	}
}
