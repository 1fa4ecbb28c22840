package snap

import (
	"bytes"
	"context"
	"testing"

	"github.com/snapkit/snapcard/pkg/cache"
)

func TestRunnerCacheRoundTrip(t *testing.T) {
	r := newTestRenderer(t)
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	runner := NewRunner(r, fc, nil, nil)
	defer runner.Close()

	ctx := context.Background()
	opts := DefaultOptions()

	first, cached, err := runner.Execute(ctx, "hello", opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if cached {
		t.Error("first render should miss the cache")
	}

	second, cached, err := runner.Execute(ctx, "hello", opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !cached {
		t.Error("second render should hit the cache")
	}
	if !bytes.Equal(first.Data, second.Data) {
		t.Error("cached artifact differs from rendered artifact")
	}
	if second.MIME != "image/png" {
		t.Errorf("MIME = %q, want image/png", second.MIME)
	}
}

func TestRunnerOptionsAffectKey(t *testing.T) {
	r := newTestRenderer(t)
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	runner := NewRunner(r, fc, nil, nil)
	defer runner.Close()

	ctx := context.Background()

	opts := DefaultOptions()
	if _, _, err := runner.Execute(ctx, "same text", opts); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	opts.TextAlign = AlignCenter
	_, cached, err := runner.Execute(ctx, "same text", opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if cached {
		t.Error("changed options must not reuse the cached artifact")
	}
}

func TestRunnerNullCache(t *testing.T) {
	r := newTestRenderer(t)
	runner := NewRunner(r, nil, nil, nil)
	defer runner.Close()

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		_, cached, err := runner.Execute(ctx, "no cache", DefaultOptions())
		if err != nil {
			t.Fatalf("Execute: %v", err)
		}
		if cached {
			t.Error("null cache should never hit")
		}
	}
}

func TestRunnerInvalidOptions(t *testing.T) {
	r := newTestRenderer(t)
	runner := NewRunner(r, nil, nil, nil)
	defer runner.Close()

	opts := DefaultOptions()
	opts.Format = "gif"
	if _, _, err := runner.Execute(context.Background(), "x", opts); err == nil {
		t.Error("invalid options should fail before touching the cache")
	}
}
