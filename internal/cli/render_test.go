package cli

import (
	"testing"

	"github.com/snapkit/snapcard/pkg/snap"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", []string{"png"}},
		{"webp", []string{"webp"}},
		{"png,jpeg", []string{"png", "jpeg"}},
		{" png , webp ", []string{"png", "webp"}},
	}
	for _, tt := range tests {
		got := parseFormats(tt.input, "png")
		if len(got) != len(tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			continue
		}
		for i := range tt.want {
			if got[i] != tt.want[i] {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
		}
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		output string
		format string
		total  int
		want   string
	}{
		{"", "png", 1, "snap.png"},
		{"card.png", "png", 1, "card.png"},
		{"card.png", "png", 2, "card.png"},
		{"card.png", "webp", 2, "card.webp"},
		{"card", "jpeg", 2, "card.jpeg"},
	}
	for _, tt := range tests {
		if got := outputPath(tt.output, tt.format, tt.total); got != tt.want {
			t.Errorf("outputPath(%q, %q, %d) = %q, want %q", tt.output, tt.format, tt.total, got, tt.want)
		}
	}
}

func TestBuildOptions(t *testing.T) {
	base := snap.DefaultOptions()

	opts := &renderOpts{
		theme:    "paper",
		preset:   "og",
		width:    base.Width,
		height:   base.Height,
		scale:    1.0,
		quality:  0.8,
		fontSize: 20,
		align:    snap.AlignCenter,
	}
	merged, err := buildOptions(base, opts)
	if err != nil {
		t.Fatalf("buildOptions: %v", err)
	}

	if merged.Width != 1200 || merged.Height != 630 {
		t.Errorf("size = %dx%d, want og preset 1200x630", merged.Width, merged.Height)
	}
	theme := snap.Themes["paper"]
	if merged.BackgroundColor != theme.Background {
		t.Errorf("BackgroundColor = %q, want paper theme", merged.BackgroundColor)
	}
	if merged.Scale != 1.0 || merged.Quality != 0.8 || merged.FontSize != 20 {
		t.Errorf("scale/quality/size = %v/%v/%d", merged.Scale, merged.Quality, merged.FontSize)
	}
	if merged.TextAlign != snap.AlignCenter {
		t.Errorf("TextAlign = %q, want center", merged.TextAlign)
	}
	if !merged.AutoFit {
		t.Error("AutoFit should stay on unless --no-autofit")
	}
}

func TestBuildOptionsExplicitSizeBeatsPreset(t *testing.T) {
	base := snap.DefaultOptions()

	opts := &renderOpts{
		preset: "story",
		width:  800, // differs from base: treated as explicit
		height: base.Height,
		scale:  base.Scale,
	}
	merged, err := buildOptions(base, opts)
	if err != nil {
		t.Fatalf("buildOptions: %v", err)
	}
	if merged.Width != 800 {
		t.Errorf("Width = %d, want explicit 800", merged.Width)
	}
	if merged.Height != 1920 {
		t.Errorf("Height = %d, want story preset 1920", merged.Height)
	}
}

func TestBuildOptionsBadNames(t *testing.T) {
	base := snap.DefaultOptions()

	if _, err := buildOptions(base, &renderOpts{theme: "neon"}); err == nil {
		t.Error("unknown theme should fail")
	}
	if _, err := buildOptions(base, &renderOpts{preset: "banner"}); err == nil {
		t.Error("unknown preset should fail")
	}
}

func TestExcerpt(t *testing.T) {
	tests := []struct {
		text string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"first line\nsecond", 20, "first line"},
		{"abcdefghij", 5, "abcd…"},
	}
	for _, tt := range tests {
		if got := excerpt(tt.text, tt.n); got != tt.want {
			t.Errorf("excerpt(%q, %d) = %q, want %q", tt.text, tt.n, got, tt.want)
		}
	}
}
