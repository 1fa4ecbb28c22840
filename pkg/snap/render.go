package snap

import (
	"context"
	"math"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/snapkit/snapcard/pkg/errors"
	"github.com/snapkit/snapcard/pkg/fonts"
)

// Fixed chrome constants. These must hold exactly for a rendered snap to
// match the on-screen editor card.
const (
	// cardInset is the card margin from each canvas edge.
	cardInset = 48.0

	// horizontalChrome is the total width deducted for card margins.
	horizontalChrome = 96

	// verticalChrome is the height allowance for card margins plus the
	// top decoration strip.
	verticalChrome = 160

	// cardChrome is the vertical allowance consumed by the card margins.
	cardChrome = 96

	// lineHeightRatio is the fixed leading: line height = 1.6 x font size.
	lineHeightRatio = 1.6

	// minTextTop keeps the text block clear of the window-control dots.
	minTextTop = 80.0

	// Dot decoration geometry.
	dotRadius  = 6.0
	dotSpacing = 20.0
	dotInsetX  = 28.0
	dotInsetY  = 30.0

	// Card shadow: blur 20 at offset (0,10), low-alpha black.
	shadowBlur    = 20.0
	shadowOffsetY = 10.0
	shadowAlpha   = 0.25
)

// Renderer turns text and options into encoded snapshot images.
//
// A Renderer owns one drawing surface per render call and releases it on
// every exit path. Reuse across sequential calls is fine; concurrent calls
// on the same Renderer are not supported and must be serialized by the
// caller (or use one Renderer per goroutine).
type Renderer struct {
	fonts *fonts.Library
}

// New creates a Renderer backed by the given font library. A nil library
// gets a fresh one. New fails fast if the default face cannot be acquired;
// that is an environment error, not a runtime condition to recover from.
func New(lib *fonts.Library) (*Renderer, error) {
	if lib == nil {
		lib = fonts.NewLibrary()
	}
	if _, err := lib.Face(DefaultFontFamily, DefaultFontSize); err != nil {
		return nil, errors.Wrap(errors.ErrCodeSurface, err, "initialize drawing surface")
	}
	return &Renderer{fonts: lib}, nil
}

// Render draws text into a styled card and encodes it. Zero option fields
// take documented defaults; degenerate text (empty string, one huge word)
// still produces a valid image. The canvas height grows beyond
// opts.Height whenever the wrapped text block needs the room.
func (r *Renderer) Render(ctx context.Context, text string, opts Options) (*EncodedImage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	family := NormalizeFontFamily(opts.FontFamily)
	src := FaceSource(func(size float64) (Measurer, error) {
		face, err := r.fonts.Face(family, size)
		if err != nil {
			return nil, err
		}
		return faceMeasurer{face: face}, nil
	})

	workSize := opts.FontSize
	targetWidth := fitTargetWidth(opts)
	if opts.AutoFit {
		fitted, err := fitFontSize(text, opts.FontSize, targetWidth, src)
		if err != nil {
			return nil, err
		}
		workSize = fitted
	}

	m, err := src(float64(workSize))
	if err != nil {
		return nil, err
	}

	cardWidth := opts.Width - horizontalChrome
	maxTextWidth := math.Max(1, float64(cardWidth-2*opts.Padding))
	wrapped := Wrap(text, maxTextWidth, m)

	lineHeight := float64(workSize) * lineHeightRatio
	blockHeight := wrapped.BlockHeight(lineHeight)

	dynamicHeight := opts.Height
	if need := int(math.Ceil(blockHeight)) + 2*opts.Padding + verticalChrome; need > dynamicHeight {
		dynamicHeight = need
	}

	dc := gg.NewContext(int(float64(opts.Width)*opts.Scale), int(float64(dynamicHeight)*opts.Scale))
	dc.Scale(opts.Scale, opts.Scale)

	r.drawCard(dc, opts, cardWidth, dynamicHeight)
	r.drawText(dc, wrapped, opts, workSize, lineHeight, blockHeight, dynamicHeight, maxTextWidth, family)

	data, err := encode(dc.Image(), opts.Format, opts.Quality)
	if err != nil {
		return nil, err
	}
	return &EncodedImage{Data: data, MIME: MIMEType(opts.Format)}, nil
}

// fitTargetWidth is the width budget the auto-fit search aims for:
// the canvas width minus card chrome and inner padding.
func fitTargetWidth(opts Options) float64 {
	return math.Max(1, float64(opts.Width-horizontalChrome-2*opts.Padding))
}

// drawCard paints the background, the drop shadow, the rounded card, and
// the window-control dots.
func (r *Renderer) drawCard(dc *gg.Context, opts Options, cardWidth, dynamicHeight int) {
	dc.SetHexColor(opts.BackgroundColor)
	dc.Clear()

	cardW := float64(cardWidth)
	cardH := float64(dynamicHeight - cardChrome)
	radius := float64(opts.BorderRadius)

	// The surface has no shadowBlur primitive, so the shadow is rendered
	// into an offscreen layer, gaussian-blurred, and composited before the
	// card fill. The blur stays on its own layer and cannot bleed onto
	// later draws.
	shadow := gg.NewContext(opts.Width, dynamicHeight)
	shadow.SetRGBA(0, 0, 0, shadowAlpha)
	shadow.DrawRoundedRectangle(cardInset, cardInset+shadowOffsetY, cardW, cardH, radius)
	shadow.Fill()
	dc.DrawImage(imaging.Blur(shadow.Image(), shadowBlur/2), 0, 0)

	dc.SetHexColor(opts.CardColor)
	dc.DrawRoundedRectangle(cardInset, cardInset, cardW, cardH, radius)
	dc.Fill()

	for i, color := range dotColors {
		dc.SetHexColor(color)
		dc.DrawCircle(cardInset+dotInsetX+float64(i)*dotSpacing, cardInset+dotInsetY, dotRadius)
		dc.Fill()
	}
}

// drawText lays the wrapped lines into the card interior, vertically
// centered but clamped below the decoration strip, inserting half-line
// gaps at paragraph breaks.
func (r *Renderer) drawText(dc *gg.Context, wrapped WrapResult, opts Options, workSize int, lineHeight, blockHeight float64, dynamicHeight int, maxTextWidth float64, family string) {
	face, err := r.fonts.Face(family, float64(workSize))
	if err != nil {
		// Faces for this family and size were already built during
		// measurement; reaching this means the font file vanished
		// mid-call. Leave the card without text rather than abort.
		return
	}
	dc.SetFontFace(face)
	dc.SetHexColor(opts.TextColor)

	cardH := float64(dynamicHeight - cardChrome)
	y := cardInset + (cardH-blockHeight)/2
	if y < cardInset+minTextTop {
		y = cardInset + minTextTop
	}

	textLeft := cardInset + float64(opts.Padding)
	centerX := textLeft + maxTextWidth/2
	// Baseline sits at ~72% of the font size below the line top, with the
	// glyph box centered in the 1.6x line.
	baselineOffset := (lineHeight + float64(workSize)*0.72) / 2

	for _, line := range wrapped.Lines {
		switch line.Kind {
		case LineBreak:
			y += lineHeight * 0.5
		case LineBlank:
			y += lineHeight
		case LineText:
			baseline := y + baselineOffset
			if opts.TextAlign == AlignCenter {
				dc.DrawStringAnchored(line.Text, centerX, baseline, 0.5, 0)
			} else {
				dc.DrawString(line.Text, textLeft, baseline)
			}
			y += lineHeight
		}
	}
}
