package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCacheStats(t *testing.T) {
	dir := t.TempDir()
	shard := filepath.Join(dir, "ab")
	if err := os.MkdirAll(shard, 0755); err != nil {
		t.Fatal(err)
	}
	write := func(name string, size int) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(shard, name), make([]byte, size), 0644); err != nil {
			t.Fatal(err)
		}
	}
	write("deadbeef.art", 100)
	write("deadbeef.json", 20)
	write("cafe.art", 50)
	write("cafe.json", 20)

	artifacts, size, err := cacheStats(dir)
	if err != nil {
		t.Fatalf("cacheStats: %v", err)
	}
	if artifacts != 2 {
		t.Errorf("artifacts = %d, want 2 (sidecars don't count)", artifacts)
	}
	if size != 190 {
		t.Errorf("size = %d, want 190 (sidecars do count)", size)
	}
}

func TestCacheStatsMissingDir(t *testing.T) {
	artifacts, size, err := cacheStats(filepath.Join(t.TempDir(), "never-created"))
	if err != nil {
		t.Fatalf("cacheStats: %v", err)
	}
	if artifacts != 0 || size != 0 {
		t.Errorf("missing dir should read as empty, got %d artifacts / %d bytes", artifacts, size)
	}
}
