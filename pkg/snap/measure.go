package snap

import "golang.org/x/image/font"

// Measurer reports the advance width of a string in logical pixels under a
// fixed font and size. Wrapping and auto-fit are width-driven: every
// decision measures the exact candidate string, never a character count.
type Measurer interface {
	Width(s string) float64
}

// FaceSource produces a Measurer for a given font size. The auto-fit search
// needs fresh metrics at each candidate size.
type FaceSource func(size float64) (Measurer, error)

// faceMeasurer measures strings with an x/image font face.
type faceMeasurer struct {
	face font.Face
}

func (m faceMeasurer) Width(s string) float64 {
	// MeasureString returns 26.6 fixed point units.
	return float64(font.MeasureString(m.face, s)) / 64
}
