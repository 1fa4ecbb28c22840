package snap

import "strings"

// Auto-fit search bounds.
const (
	// minFitFontSize is the shrink floor: the search never goes below it.
	minFitFontSize = 10

	// maxFitFactor caps growth at this multiple of the requested size.
	maxFitFactor = 3

	// fitTolerance is the fraction of target width the stress line should
	// reach before growth stops.
	fitTolerance = 0.9
)

// stressLine returns the longest raw input line by character count. It is a
// fast proxy for the widest line: character count and pixel width can
// diverge for mixed glyph widths, but the search only needs a monotonic
// signal, not a perfect one.
func stressLine(text string) string {
	longest := ""
	longestLen := 0
	for _, line := range strings.Split(text, "\n") {
		if n := len([]rune(line)); n > longestLen {
			longest, longestLen = line, n
		}
	}
	return longest
}

// fitFontSize searches for a font size whose stress line occupies close to,
// but not more than, targetWidth. Starting from requested it first shrinks
// (floor 10) while the stress line overflows, then grows while the line
// measures under 90% of target, rolling back one step on overshoot and
// never exceeding three times the requested size.
//
// The result is monotonic in targetWidth: a wider target never yields a
// smaller size.
func fitFontSize(text string, requested int, targetWidth float64, src FaceSource) (int, error) {
	line := stressLine(text)
	if line == "" {
		return requested, nil
	}

	width := func(size int) (float64, error) {
		m, err := src(float64(size))
		if err != nil {
			return 0, err
		}
		return m.Width(line), nil
	}

	size := requested
	for size > minFitFontSize {
		w, err := width(size)
		if err != nil {
			return 0, err
		}
		if w <= targetWidth {
			break
		}
		size--
	}

	limit := requested * maxFitFactor
	for size < limit {
		w, err := width(size)
		if err != nil {
			return 0, err
		}
		if w >= targetWidth*fitTolerance {
			break
		}
		size++
		grown, err := width(size)
		if err != nil {
			return 0, err
		}
		if grown > targetWidth {
			size--
			break
		}
	}

	return size, nil
}
