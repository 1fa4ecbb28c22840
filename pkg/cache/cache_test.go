package cache

import (
	"context"
	"os"
	"strings"
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

	key := "render:abc123"
	payload := []byte("\x89PNG fake image bytes")

	// Miss before Set
	if _, hit, _ := c.Get(ctx, key); hit {
		t.Error("unexpected hit before Set")
	}

	if err := c.Set(ctx, key, payload, time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}

	data, hit, err := c.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !hit {
		t.Fatal("expected hit after Set")
	}
	if string(data) != string(payload) {
		t.Error("cached data does not round-trip")
	}

	// Expired entries are misses
	if err := c.Set(ctx, "expired", payload, -time.Second); err != nil {
		t.Fatalf("Set expired: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "expired"); hit {
		t.Error("expired entry should be a miss")
	}

	// Delete removes the entry, and deleting again is fine
	if err := c.Delete(ctx, key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, key); hit {
		t.Error("entry should be gone after Delete")
	}
	if err := c.Delete(ctx, key); err != nil {
		t.Errorf("Delete of missing key should be nil, got %v", err)
	}
}

func TestFileCacheStoresRawArtifact(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	payload := []byte("\x89PNG fake image bytes")
	if err := c.Set(ctx, "render:v2:abc", payload, time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}

	// The artifact file holds the encoded bytes verbatim, not a JSON
	// wrapper, so a cached PNG is a valid PNG on disk.
	_, artPath := c.(*FileCache).paths("render:v2:abc")
	data, err := os.ReadFile(artPath)
	if err != nil {
		t.Fatalf("read artifact file: %v", err)
	}
	if !strings.HasSuffix(artPath, ArtifactExt) {
		t.Errorf("artifact path %s should end in %s", artPath, ArtifactExt)
	}
	if string(data) != string(payload) {
		t.Error("artifact file should hold the raw encoded bytes")
	}
}

func TestFileCacheCorruptSidecar(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("bytes"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	metaPath, artPath := c.(*FileCache).paths("key")
	if err := os.WriteFile(metaPath, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	// Corrupt sidecar is a miss, and the entry is swept.
	if _, hit, err := c.Get(ctx, "key"); err != nil || hit {
		t.Errorf("Get = hit %v err %v, want clean miss", hit, err)
	}
	if _, err := os.Stat(artPath); !os.IsNotExist(err) {
		t.Error("corrupt entry should be removed")
	}
}

func TestFileCacheOrphanSidecar(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("bytes"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	_, artPath := c.(*FileCache).paths("key")
	if err := os.Remove(artPath); err != nil {
		t.Fatal(err)
	}

	if _, hit, err := c.Get(ctx, "key"); err != nil || hit {
		t.Errorf("Get = hit %v err %v, want clean miss", hit, err)
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
	textHash := Hash([]byte("hello world"))

	// Same inputs produce the same key
	k1 := k.RenderKey(textHash, RenderKeyOpts{Format: "png", Width: 1080, FontSize: 28})
	k2 := k.RenderKey(textHash, RenderKeyOpts{Format: "png", Width: 1080, FontSize: 28})
	if k1 != k2 {
		t.Error("RenderKey should be deterministic")
	}

	// Any option change produces a different key
	k3 := k.RenderKey(textHash, RenderKeyOpts{Format: "jpeg", Width: 1080, FontSize: 28})
	if k1 == k3 {
		t.Error("Different format should produce different keys")
	}
	k4 := k.RenderKey(textHash, RenderKeyOpts{Format: "png", Width: 1080, FontSize: 28, AutoFit: true})
	if k1 == k4 {
		t.Error("Different AutoFit should produce different keys")
	}

	// Different text hashes produce different keys
	k5 := k.RenderKey(Hash([]byte("other text")), RenderKeyOpts{Format: "png", Width: 1080, FontSize: 28})
	if k1 == k5 {
		t.Error("Different text should produce different keys")
	}

	if !strings.HasPrefix(k1, "render:") {
		t.Errorf("RenderKey should have render: prefix, got %s", k1)
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(NewDefaultKeyer(), "user:123:")

	key := scoped.RenderKey("hash", RenderKeyOpts{Format: "png"})
	if !strings.HasPrefix(key, "user:123:render:") {
		t.Errorf("ScopedKeyer key should be prefixed: %s", key)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	// Should use DefaultKeyer when inner is nil
	scoped := NewScopedKeyer(nil, "prefix:")
	key := scoped.RenderKey("hash", RenderKeyOpts{})
	if !strings.HasPrefix(key, "prefix:render:") {
		t.Errorf("Unexpected key with nil inner: %s", key)
	}
}
