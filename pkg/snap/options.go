// Package snap renders text into styled snapshot card images.
//
// Given a string and a set of [Options], the renderer computes an auto-fit
// font size, wraps the text into lines honoring paragraph breaks and
// long-word splitting, grows the canvas so nothing clips, draws the card
// composition (background, rounded card with soft shadow, window-control
// dots, text), and encodes the result as PNG, JPEG, or WebP.
//
// # Usage
//
//	r, err := snap.New(nil)
//	if err != nil {
//	    return err
//	}
//	opts := snap.DefaultOptions()
//	opts.Width, opts.Height = 1080, 1080
//	img, err := r.Render(ctx, "hello\nworld", opts)
//	if err != nil {
//	    return err
//	}
//	os.WriteFile("snap.png", img.Data, 0644)
//
// A Renderer may be reused across calls but must not be used concurrently:
// each call exclusively owns its drawing surface for the duration of the
// render. Use one Renderer per goroutine.
package snap

import (
	"math"

	"github.com/snapkit/snapcard/pkg/errors"
)

// Output format constants.
const (
	FormatPNG  = "png"
	FormatJPEG = "jpeg"
	FormatWebP = "webp"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatPNG:  true,
	FormatJPEG: true,
	FormatWebP: true,
}

// Text alignment constants.
const (
	AlignLeft   = "left"
	AlignCenter = "center"
)

// Default option values. These mirror the editor's on-screen card so a
// rendered snap matches the preview pixel for pixel when AutoFit is off.
const (
	DefaultWidth      = 1080
	DefaultHeight     = 1080
	DefaultScale      = 2.0
	DefaultQuality    = 0.92
	DefaultFontSize   = 28
	DefaultPadding    = 48
	DefaultRadius     = 16
	DefaultFontFamily = "'Go Mono', monospace"
)

// Options configures a single render call. One Options value is built per
// call by merging caller overrides onto [DefaultOptions]; it is never
// mutated by the renderer.
//
// Zero numeric and string fields mean "use the default". Booleans are taken
// as-is, so start from DefaultOptions when you want AutoFit on.
type Options struct {
	// Format selects the output encoding: png, jpeg, or webp.
	Format string `json:"format,omitempty"`

	// Quality is the encoder quality in [0,1]. Ignored for png.
	// Out-of-range values are clamped by the encoder, not rejected.
	Quality float64 `json:"quality,omitempty"`

	// Width and Height are the target canvas footprint in logical pixels.
	// Height grows as needed so text never clips.
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`

	// Scale is the device-pixel multiplier applied uniformly.
	Scale float64 `json:"scale,omitempty"`

	// Fill colors, in hex notation.
	BackgroundColor string `json:"background_color,omitempty"`
	TextColor       string `json:"text_color,omitempty"`
	CardColor       string `json:"card_color,omitempty"`

	// FontFamily is a font-family list, possibly containing build-time
	// substitution tokens. See NormalizeFontFamily.
	FontFamily string `json:"font_family,omitempty"`

	// FontSize is the starting font size before auto-fit.
	FontSize int `json:"font_size,omitempty"`

	// Padding is the inner margin between card edge and text block.
	Padding int `json:"padding,omitempty"`

	// BorderRadius is the card corner radius.
	BorderRadius int `json:"border_radius,omitempty"`

	// AutoFit enables the font-size search toward the available width.
	AutoFit bool `json:"auto_fit,omitempty"`

	// TextAlign is left or center.
	TextAlign string `json:"text_align,omitempty"`
}

// DefaultOptions returns the documented defaults: a 1080x1080 png at 2x
// scale, midnight theme colors, auto-fit enabled, left-aligned Go Mono.
func DefaultOptions() Options {
	opts := Options{
		Format:       FormatPNG,
		Quality:      DefaultQuality,
		Width:        DefaultWidth,
		Height:       DefaultHeight,
		Scale:        DefaultScale,
		FontFamily:   DefaultFontFamily,
		FontSize:     DefaultFontSize,
		Padding:      DefaultPadding,
		BorderRadius: DefaultRadius,
		AutoFit:      true,
		TextAlign:    AlignLeft,
	}
	Themes[DefaultTheme].Apply(&opts)
	return opts
}

// withDefaults returns a copy of o with zero fields replaced by defaults.
// Booleans are left untouched: false is a valid AutoFit setting.
func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.Format == "" {
		o.Format = def.Format
	}
	if o.Quality == 0 {
		o.Quality = def.Quality
	}
	if o.Width == 0 {
		o.Width = def.Width
	}
	if o.Height == 0 {
		o.Height = def.Height
	}
	if o.Scale == 0 {
		o.Scale = def.Scale
	}
	if o.BackgroundColor == "" {
		o.BackgroundColor = def.BackgroundColor
	}
	if o.TextColor == "" {
		o.TextColor = def.TextColor
	}
	if o.CardColor == "" {
		o.CardColor = def.CardColor
	}
	if o.FontFamily == "" {
		o.FontFamily = def.FontFamily
	}
	if o.FontSize == 0 {
		o.FontSize = def.FontSize
	}
	if o.TextAlign == "" {
		o.TextAlign = def.TextAlign
	}
	return o
}

// Validate checks that the options describe a renderable configuration.
// Padding and BorderRadius may be zero; everything dimensional must be
// positive and finite.
func (o *Options) Validate() error {
	if err := ValidateFormat(o.Format); err != nil {
		return err
	}
	if o.Width <= 0 || o.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidOptions, "width and height must be positive (got %dx%d)", o.Width, o.Height)
	}
	if o.Scale <= 0 || math.IsInf(o.Scale, 0) || math.IsNaN(o.Scale) {
		return errors.New(errors.ErrCodeInvalidOptions, "scale must be a positive finite number (got %v)", o.Scale)
	}
	if math.IsInf(o.Quality, 0) || math.IsNaN(o.Quality) {
		return errors.New(errors.ErrCodeInvalidOptions, "quality must be finite")
	}
	if o.FontSize <= 0 {
		return errors.New(errors.ErrCodeInvalidOptions, "font size must be positive (got %d)", o.FontSize)
	}
	if o.Padding < 0 {
		return errors.New(errors.ErrCodeInvalidOptions, "padding cannot be negative (got %d)", o.Padding)
	}
	if o.BorderRadius < 0 {
		return errors.New(errors.ErrCodeInvalidOptions, "border radius cannot be negative (got %d)", o.BorderRadius)
	}
	if o.TextAlign != AlignLeft && o.TextAlign != AlignCenter {
		return errors.New(errors.ErrCodeInvalidOptions, "text align must be %q or %q (got %q)", AlignLeft, AlignCenter, o.TextAlign)
	}
	for _, c := range []string{o.BackgroundColor, o.TextColor, o.CardColor} {
		if err := errors.ValidateHexColor(c); err != nil {
			return err
		}
	}
	return errors.ValidateFontFamily(o.FontFamily)
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: png, jpeg, webp)", format)
	}
	return nil
}

// MIMEType returns the MIME type for an output format.
// Unknown formats map to application/octet-stream.
func MIMEType(format string) string {
	switch format {
	case FormatPNG:
		return "image/png"
	case FormatJPEG:
		return "image/jpeg"
	case FormatWebP:
		return "image/webp"
	}
	return "application/octet-stream"
}

// Preset is a named width/height pair for common social media formats.
// Presets are caller-side overrides, not renderer logic.
type Preset struct {
	Name   string
	Width  int
	Height int
}

// Presets is the set of named size presets.
var Presets = map[string]Preset{
	"square": {Name: "square", Width: 1080, Height: 1080},
	"story":  {Name: "story", Width: 1080, Height: 1920},
	"post":   {Name: "post", Width: 1200, Height: 675},
	"og":     {Name: "og", Width: 1200, Height: 630},
	"wide":   {Name: "wide", Width: 1920, Height: 1080},
}

// ApplyPreset overrides o's width and height from a named preset.
func ApplyPreset(o *Options, name string) error {
	p, ok := Presets[name]
	if !ok {
		return errors.New(errors.ErrCodeInvalidPreset, "unknown preset: %q", name)
	}
	o.Width = p.Width
	o.Height = p.Height
	return nil
}
