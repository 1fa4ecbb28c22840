// Package cache provides caching of rendered snap artifacts.
//
// Rendering the same text with the same options is fully deterministic, so
// encoded images are cached keyed by a hash of the input text plus every
// option that affects pixels. The CLI uses a file cache under the XDG cache
// directory; tests and --no-cache runs use a null cache.
//
// # Usage
//
//	c, err := cache.NewFileCache(dir)
//	if err != nil {
//	    return err
//	}
//	defer c.Close()
//
//	keyer := cache.NewDefaultKeyer()
//	key := keyer.RenderKey(cache.Hash([]byte(text)), opts)
//	if data, hit, err := c.Get(ctx, key); err == nil && hit {
//	    return data
//	}
package cache

import (
	"context"
	"time"
)

// TTLArtifact is how long rendered artifacts stay cached.
// Renders are deterministic, so the TTL only bounds disk usage.
const TTLArtifact = 7 * 24 * time.Hour

// Cache is the interface for artifact cache backends.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the
	// key was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A zero TTL means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// RenderKeyOpts captures every render option that affects output pixels.
// Two renders with equal text hashes and equal RenderKeyOpts produce
// byte-identical artifacts.
type RenderKeyOpts struct {
	Format          string  `json:"format"`
	Quality         float64 `json:"quality"`
	Width           int     `json:"width"`
	Height          int     `json:"height"`
	Scale           float64 `json:"scale"`
	BackgroundColor string  `json:"background_color"`
	TextColor       string  `json:"text_color"`
	CardColor       string  `json:"card_color"`
	FontFamily      string  `json:"font_family"`
	FontSize        int     `json:"font_size"`
	Padding         int     `json:"padding"`
	BorderRadius    int     `json:"border_radius"`
	AutoFit         bool    `json:"auto_fit"`
	TextAlign       string  `json:"text_align"`
}

// Keyer generates cache keys for render artifacts.
type Keyer interface {
	// RenderKey generates a key for a rendered artifact.
	// textHash is the content hash of the input text.
	RenderKey(textHash string, opts RenderKeyOpts) string
}

// DefaultKeyer is the standard key generator.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard key generator.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// RenderKey generates a key for a rendered artifact.
func (k *DefaultKeyer) RenderKey(textHash string, opts RenderKeyOpts) string {
	return keyFor("render", textHash, opts)
}

// ScopedKeyer wraps a Keyer with a prefix so multiple users or projects can
// share one cache directory without key collisions.
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
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// RenderKey generates a prefixed key for a rendered artifact.
func (k *ScopedKeyer) RenderKey(textHash string, opts RenderKeyOpts) string {
	return k.prefix + k.inner.RenderKey(textHash, opts)
}

// NullCache is a no-op cache that never stores anything.
// Useful for testing or when caching should be disabled.
type NullCache struct{}

// NewNullCache creates a null cache.
func NewNullCache() Cache {
	return &NullCache{}
}

// Get always returns a cache miss.
func (c *NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set does nothing.
func (c *NullCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return nil
}

// Delete does nothing.
func (c *NullCache) Delete(ctx context.Context, key string) error {
	return nil
}

// Close does nothing.
func (c *NullCache) Close() error {
	return nil
}

// Ensure NullCache implements Cache.
var _ Cache = (*NullCache)(nil)
