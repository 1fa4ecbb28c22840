// Package fonts resolves font-family lists to concrete font faces.
//
// The Go fonts (regular, bold, italic, mono) are compiled into the binary via
// the golang.org/x/image/font/gofont packages, so rendering works without any
// fonts installed. Other family names are looked up in the system font
// directories with flopp/go-findfont. Resolution walks the family list in
// order and falls back to an embedded face for the generic family, so a
// resolvable face always comes back.
//
// Parsed fonts are cached; faces are cheap to construct per size and are not.
package fonts

import (
	"os"
	"strings"
	"sync"

	"github.com/flopp/go-findfont"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/snapkit/snapcard/pkg/errors"
)

// embedded maps canonical family names to compiled-in TTF data.
var embedded = map[string][]byte{
	"go":        goregular.TTF,
	"go bold":   gobold.TTF,
	"go italic": goitalic.TTF,
	"go mono":   gomono.TTF,
}

// generics maps CSS generic family names to the embedded family standing in
// for them. Mapping to embedded keys keeps the parse cache canonical, so
// "monospace" and "go mono" share one parsed font.
var generics = map[string]string{
	"monospace":    "go mono",
	"ui-monospace": "go mono",
	"sans-serif":   "go",
	"system-ui":    "go",
	"serif":        "go",
	"cursive":      "go italic",
	"fantasy":      "go",
}

// Library resolves family names to parsed fonts, caching parse results.
// A Library is safe for concurrent use.
type Library struct {
	mu     sync.Mutex
	parsed map[string]*truetype.Font
}

// NewLibrary creates an empty font library.
func NewLibrary() *Library {
	return &Library{parsed: make(map[string]*truetype.Font)}
}

// Resolve returns the parsed font for the first resolvable name in the
// comma-separated family list. Names may be quoted. If nothing in the list
// resolves, the embedded Go Mono font is returned, so Resolve only fails
// when a cached system font file turns unreadable mid-run.
func (l *Library) Resolve(familyList string) (*truetype.Font, error) {
	for _, name := range SplitFamilies(familyList) {
		key := strings.ToLower(name)

		if data, ok := embedded[key]; ok {
			return l.parse(key, data)
		}
		if canonical, ok := generics[key]; ok {
			return l.parse(canonical, embedded[canonical])
		}
		if f, err := l.system(name); err == nil {
			return f, nil
		}
	}
	return l.parse("go mono", gomono.TTF)
}

// Face returns a font face for the family list at the given point size.
func (l *Library) Face(familyList string, size float64) (font.Face, error) {
	f, err := l.Resolve(familyList)
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

// system looks up a family name in the system font directories.
func (l *Library) system(name string) (*truetype.Font, error) {
	path, err := findfont.Find(name + ".ttf")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFont, err, "font %q not found", name)
	}

	l.mu.Lock()
	if f, ok := l.parsed["path:"+path]; ok {
		l.mu.Unlock()
		return f, nil
	}
	l.mu.Unlock()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFont, err, "read font %s", path)
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFont, err, "parse font %s", path)
	}

	l.mu.Lock()
	l.parsed["path:"+path] = f
	l.mu.Unlock()
	return f, nil
}

// parse parses embedded TTF data, caching by key.
func (l *Library) parse(key string, data []byte) (*truetype.Font, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if f, ok := l.parsed[key]; ok {
		return f, nil
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFont, err, "parse embedded font %q", key)
	}
	l.parsed[key] = f
	return f, nil
}

// SplitFamilies splits a comma-separated font-family list into trimmed,
// unquoted names. Empty entries are dropped.
func SplitFamilies(familyList string) []string {
	parts := strings.Split(familyList, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		name := strings.Trim(strings.TrimSpace(p), `'"`)
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}
