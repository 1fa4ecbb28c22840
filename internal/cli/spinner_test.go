package cli

import (
	"context"
	"strings"
	"testing"
)

func TestRenderSpinnerMessage(t *testing.T) {
	s := newRenderSpinner(context.Background(), []string{"png", "webp"})
	if !strings.Contains(s.message, "png, webp") {
		t.Errorf("message = %q, want the formats listed", s.message)
	}
	if s.Cancelled() {
		t.Error("fresh spinner should not report cancelled")
	}
}

func TestSpinnerStartStop(t *testing.T) {
	s := newSpinnerWithContext(context.Background(), "working")
	s.Start()
	s.Stop()
}

func TestSpinnerCancelledByContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := newSpinnerWithContext(ctx, "working")
	s.Start()
	cancel()
	if !s.Cancelled() {
		t.Error("Cancelled should report the parent context cancellation")
	}
	s.Stop()
}
