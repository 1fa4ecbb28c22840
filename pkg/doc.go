// Package pkg provides the core libraries for Snapcard text snapshot rendering.
//
// # Overview
//
// Snapcard turns plain text into styled snapshot card images: a rounded card
// with window-control dots on a colored canvas, auto-fit typography, and
// PNG, JPEG, or WebP output. The pkg directory is organized into:
//
//  1. [snap] - The renderer (layout, auto-fit, drawing, encoding) and the
//     cache-aware Runner shared by the CLI and HTTP API
//  2. [fonts] - Embedded and system font resolution and face construction
//  3. [history] - Snap persistence with memory, file, Redis, and MongoDB backends
//  4. [prefs] - Saved user preferences (TOML)
//  5. [cache] - Render artifact caching keyed by text and options
//  6. [errors] - Structured error codes shared by CLI and API
//  7. [observability] - Render and cache instrumentation hooks
//  8. [buildinfo] - Version metadata injected at build time
//
// # Architecture
//
// The typical data flow through Snapcard:
//
//	text + Options
//	         ↓
//	    [snap] auto-fit font size, wrap into lines
//	         ↓
//	    [snap] draw card composition (shadow, card, dots, text)
//	         ↓
//	    [snap] encode (PNG/JPEG/WebP)
//	         ↓
//	    [cache] store artifact  /  [history] record the snap
//
// # Quick Start
//
// Render a snap and write it to disk:
//
//	import (
//	    "context"
//	    "os"
//
//	    "github.com/snapkit/snapcard/pkg/snap"
//	)
//
//	r, err := snap.New(nil)
//	if err != nil {
//	    return err
//	}
//	opts := snap.DefaultOptions()
//	opts.Format = snap.FormatWebP
//	img, err := r.Render(context.Background(), "hello\nworld", opts)
//	if err != nil {
//	    return err
//	}
//	os.WriteFile("snap.webp", img.Data, 0644)
//
// Render with caching through a Runner:
//
//	c, _ := cache.NewFileCache(dir)
//	runner := snap.NewRunner(r, c, nil, logger)
//	defer runner.Close()
//	img, cached, err := runner.Execute(ctx, text, opts)
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...         # All tests
//	go test ./pkg/snap/...    # Renderer only
//
// [snap]: https://pkg.go.dev/github.com/snapkit/snapcard/pkg/snap
// [fonts]: https://pkg.go.dev/github.com/snapkit/snapcard/pkg/fonts
// [history]: https://pkg.go.dev/github.com/snapkit/snapcard/pkg/history
// [prefs]: https://pkg.go.dev/github.com/snapkit/snapcard/pkg/prefs
// [cache]: https://pkg.go.dev/github.com/snapkit/snapcard/pkg/cache
// [errors]: https://pkg.go.dev/github.com/snapkit/snapcard/pkg/errors
// [observability]: https://pkg.go.dev/github.com/snapkit/snapcard/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/snapkit/snapcard/pkg/buildinfo
package pkg
