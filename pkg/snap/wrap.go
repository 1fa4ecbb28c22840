package snap

import "strings"

// LineKind discriminates the entries of a WrapResult.
type LineKind int

const (
	// LineText is a literal text line.
	LineText LineKind = iota

	// LineBlank marks an empty paragraph line (consumes a full line height).
	LineBlank

	// LineBreak marks a paragraph boundary (consumes half a line height).
	LineBreak
)

// Line is one entry of a WrapResult. Text is empty unless Kind is LineText.
type Line struct {
	Kind LineKind
	Text string
}

// WrapResult is the ordered sequence of wrapped lines for one render call,
// top to bottom. It is computed once and never mutated after construction.
type WrapResult struct {
	Lines []Line

	// Paragraphs is the number of input paragraphs (text split on newline).
	Paragraphs int
}

// LineCount returns the number of full-height entries: text lines plus
// blank lines, excluding break markers.
func (w WrapResult) LineCount() int {
	n := 0
	for _, l := range w.Lines {
		if l.Kind != LineBreak {
			n++
		}
	}
	return n
}

// BlockHeight returns the total pixel height of the wrapped text block:
// full-height entries at lineHeight each, plus half a lineHeight per
// paragraph break.
func (w WrapResult) BlockHeight(lineHeight float64) float64 {
	return float64(w.LineCount())*lineHeight + float64(w.Paragraphs-1)*lineHeight*0.5
}

// Wrap splits text into lines no wider than maxWidth as measured by m.
//
// Paragraphs (split on newline) are preserved: every paragraph produces at
// least one entry, empty paragraphs become blank lines, and a break marker
// is emitted between consecutive paragraphs. Within a paragraph, words are
// greedily accumulated while the joined candidate still measures within
// maxWidth. A single word wider than maxWidth is split character by
// character into maximum-fitting chunks; the trailing partial chunk rejoins
// the normal accumulation so following words can share its line.
//
// The only lines that may exceed maxWidth are single characters whose glyph
// alone is wider than the limit.
func Wrap(text string, maxWidth float64, m Measurer) WrapResult {
	paragraphs := strings.Split(text, "\n")
	res := WrapResult{Paragraphs: len(paragraphs)}

	for i, para := range paragraphs {
		if i > 0 {
			res.Lines = append(res.Lines, Line{Kind: LineBreak})
		}
		if para == "" {
			res.Lines = append(res.Lines, Line{Kind: LineBlank})
			continue
		}
		res.wrapParagraph(para, maxWidth, m)
	}
	return res
}

// wrapParagraph wraps a single non-empty paragraph, appending to res.Lines.
func (res *WrapResult) wrapParagraph(para string, maxWidth float64, m Measurer) {
	emitted := 0
	flush := func(line string) {
		res.Lines = append(res.Lines, Line{Kind: LineText, Text: line})
		emitted++
	}

	current := ""
	for _, word := range strings.Split(para, " ") {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if m.Width(candidate) <= maxWidth {
			current = candidate
			continue
		}

		if current != "" {
			flush(current)
			current = ""
		}

		if m.Width(word) <= maxWidth {
			current = word
			continue
		}

		// The word alone overflows: split it into fitting chunks. The
		// final partial chunk becomes the new accumulation so the next
		// word may still join it.
		current = splitLongWord(word, maxWidth, m, flush)
	}

	if current != "" {
		flush(current)
	}
	if emitted == 0 {
		// Paragraph of only spaces: still produces one entry.
		res.Lines = append(res.Lines, Line{Kind: LineBlank})
	}
}

// splitLongWord emits maximum-width-fitting chunks of word via flush and
// returns the trailing partial chunk. Chunks are never empty: a single
// glyph wider than maxWidth is kept whole on its own line.
func splitLongWord(word string, maxWidth float64, m Measurer, flush func(string)) string {
	var chunk []rune
	for _, r := range word {
		candidate := append(chunk, r)
		if len(chunk) > 0 && m.Width(string(candidate)) > maxWidth {
			flush(string(chunk))
			chunk = []rune{r}
			continue
		}
		chunk = candidate
	}
	return string(chunk)
}
