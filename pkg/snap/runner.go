package snap

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/snapkit/snapcard/pkg/cache"
	"github.com/snapkit/snapcard/pkg/observability"
)

// Runner wraps a Renderer with artifact caching. Rendering is deterministic,
// so an artifact cached under the hash of (text, options) can be served
// without redrawing. Both the CLI and the HTTP API use a Runner to share
// the caching logic.
//
// The Runner itself is stateless apart from the cache and logger, but it
// inherits the Renderer's concurrency contract: calls must be serialized.
type Runner struct {
	Renderer *Renderer
	Cache    cache.Cache
	Keyer    cache.Keyer
	Logger   *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching (NullCache),
// a nil keyer uses the default, a nil logger discards output.
func NewRunner(r *Renderer, c cache.Cache, k cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if k == nil {
		k = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{Renderer: r, Cache: c, Keyer: k, Logger: logger}
}

// Execute renders text with opts, consulting the cache first. The second
// return value reports whether the artifact came from cache. Cache write
// failures are logged and ignored; the render result is authoritative.
func (r *Runner) Execute(ctx context.Context, text string, opts Options) (*EncodedImage, bool, error) {
	opts = opts.withDefaults()
	if err := opts.Validate(); err != nil {
		return nil, false, err
	}

	key := r.Keyer.RenderKey(cache.Hash([]byte(text)), keyOpts(opts))

	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, "render")
		r.Logger.Debug("render cache hit", "format", opts.Format, "bytes", len(data))
		return &EncodedImage{Data: data, MIME: MIMEType(opts.Format)}, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, "render")

	start := time.Now()
	observability.Render().OnRenderStart(ctx, opts.Format, len(text))
	img, err := r.Renderer.Render(ctx, text, opts)
	if err != nil {
		observability.Render().OnRenderComplete(ctx, opts.Format, 0, time.Since(start), err)
		return nil, false, err
	}
	observability.Render().OnRenderComplete(ctx, opts.Format, len(img.Data), time.Since(start), nil)

	if err := r.Cache.Set(ctx, key, img.Data, cache.TTLArtifact); err != nil {
		r.Logger.Debug("render cache write failed", "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "render", len(img.Data))
	}

	return img, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// keyOpts projects Options onto the cache key fields.
func keyOpts(o Options) cache.RenderKeyOpts {
	return cache.RenderKeyOpts{
		Format:          o.Format,
		Quality:         o.Quality,
		Width:           o.Width,
		Height:          o.Height,
		Scale:           o.Scale,
		BackgroundColor: o.BackgroundColor,
		TextColor:       o.TextColor,
		CardColor:       o.CardColor,
		FontFamily:      o.FontFamily,
		FontSize:        o.FontSize,
		Padding:         o.Padding,
		BorderRadius:    o.BorderRadius,
		AutoFit:         o.AutoFit,
		TextAlign:       o.TextAlign,
	}
}
