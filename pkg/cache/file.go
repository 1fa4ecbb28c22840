package cache

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// On-disk entry layout: <dir>/<aa>/<keyhash>.art holds the artifact bytes,
// with a .json sidecar next to it for expiry and size.
const (
	// ArtifactExt marks stored artifact files; the cache CLI counts and
	// sizes entries by this suffix.
	ArtifactExt = ".art"

	metaExt = ".json"
)

// FileCache stores rendered artifacts on disk, one entry per render key.
// Artifact bytes are written exactly as encoded, so a cached PNG is a
// valid PNG on disk and never pays JSON/base64 inflation. Entries shard
// into two-level directories by key hash.
type FileCache struct {
	dir string
}

// NewFileCache opens an artifact cache rooted at dir, creating it if needed.
func NewFileCache(dir string) (Cache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// artifactMeta is the sidecar: everything about an entry except its bytes.
type artifactMeta struct {
	Size      int       `json:"size"`
	StoredAt  time.Time `json:"stored_at"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// Get returns the cached artifact for key. Expired, torn, or corrupt
// entries are dropped and reported as misses, never as errors.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	metaPath, artPath := c.paths(key)

	raw, err := os.ReadFile(metaPath)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var meta artifactMeta
	if err := json.Unmarshal(raw, &meta); err != nil {
		_ = c.drop(key)
		return nil, false, nil
	}
	if !meta.ExpiresAt.IsZero() && time.Now().After(meta.ExpiresAt) {
		_ = c.drop(key)
		return nil, false, nil
	}

	data, err := os.ReadFile(artPath)
	if os.IsNotExist(err) {
		// Sidecar without its artifact.
		_ = c.drop(key)
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if len(data) != meta.Size {
		// Interrupted write.
		_ = c.drop(key)
		return nil, false, nil
	}
	return data, true, nil
}

// Set stores the artifact under key. The bytes land before the sidecar,
// so a concurrent Get never sees a sidecar pointing at missing bytes.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	metaPath, artPath := c.paths(key)
	if err := os.MkdirAll(filepath.Dir(artPath), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(artPath, data, 0644); err != nil {
		return err
	}

	meta := artifactMeta{Size: len(data), StoredAt: time.Now()}
	if ttl > 0 {
		meta.ExpiresAt = meta.StoredAt.Add(ttl)
	}
	raw, err := json.Marshal(meta)
	if err != nil {
		return err
	}
	return os.WriteFile(metaPath, raw, 0644)
}

// Delete removes the entry for key. Deleting a missing key is not an error.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	return c.drop(key)
}

// Close is a no-op; the cache holds no open handles between calls.
func (c *FileCache) Close() error {
	return nil
}

// drop removes both entry files, tolerating either being absent.
func (c *FileCache) drop(key string) error {
	metaPath, artPath := c.paths(key)
	errArt := os.Remove(artPath)
	errMeta := os.Remove(metaPath)
	if errArt != nil && !os.IsNotExist(errArt) {
		return errArt
	}
	if errMeta != nil && !os.IsNotExist(errMeta) {
		return errMeta
	}
	return nil
}

// paths maps a key to its sidecar and artifact files, sharding on the
// first two hash characters to keep directories small.
func (c *FileCache) paths(key string) (meta, artifact string) {
	sum := Hash([]byte(key))
	base := filepath.Join(c.dir, sum[:2], sum[2:])
	return base + metaExt, base + ArtifactExt
}

var _ Cache = (*FileCache)(nil)
