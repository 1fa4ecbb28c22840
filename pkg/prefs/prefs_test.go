package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/snapkit/snapcard/pkg/snap"
)

func TestLoadMissingFile(t *testing.T) {
	p := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if p != Default() {
		t.Errorf("missing file should load defaults, got %+v", p)
	}
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	if err := os.WriteFile(path, []byte("theme = [not toml"), 0644); err != nil {
		t.Fatal(err)
	}
	if p := Load(path); p != Default() {
		t.Errorf("corrupt file should load defaults, got %+v", p)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "prefs.toml")

	want := Prefs{
		Theme:      "paper",
		FontFamily: "'Fira Code', monospace",
		FontSize:   32,
		TextAlign:  snap.AlignCenter,
		Format:     snap.FormatWebP,
	}
	if err := Save(path, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if got := Load(path); got != want {
		t.Errorf("Load = %+v, want %+v", got, want)
	}
}

func TestSaveRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")

	tests := []struct {
		name string
		p    Prefs
	}{
		{"bad theme", Prefs{Theme: "neon"}},
		{"bad format", Prefs{Format: "gif"}},
		{"bad align", Prefs{TextAlign: "justify"}},
		{"negative size", Prefs{FontSize: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Save(path, tt.p); err == nil {
				t.Error("Save should reject invalid preferences")
			}
		})
	}
}

func TestApply(t *testing.T) {
	opts := snap.DefaultOptions()

	p := Prefs{Theme: "slate", FontSize: 36, Format: snap.FormatJPEG}
	if err := p.Apply(&opts); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	theme := snap.Themes["slate"]
	if opts.BackgroundColor != theme.Background {
		t.Errorf("BackgroundColor = %q, want slate theme", opts.BackgroundColor)
	}
	if opts.FontSize != 36 {
		t.Errorf("FontSize = %d, want 36", opts.FontSize)
	}
	if opts.Format != snap.FormatJPEG {
		t.Errorf("Format = %q, want jpeg", opts.Format)
	}
	// Unset preferences leave options alone.
	if opts.TextAlign != snap.AlignLeft {
		t.Errorf("TextAlign = %q, want untouched left", opts.TextAlign)
	}
	if opts.FontFamily != snap.DefaultFontFamily {
		t.Errorf("FontFamily = %q, want untouched default", opts.FontFamily)
	}
}

func TestApplyEmpty(t *testing.T) {
	opts := snap.DefaultOptions()
	before := opts

	if err := Default().Apply(&opts); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if opts != before {
		t.Error("empty preferences must not change options")
	}
}
