package snap

import "github.com/snapkit/snapcard/pkg/errors"

// Theme fixes the three fill colors of a snap. Themes are the single source
// of color constants shared by the renderer, the CLI, and the HTTP API, so
// preview and output cannot drift.
type Theme struct {
	Name       string `json:"name"`
	Background string `json:"background"`
	Card       string `json:"card"`
	Text       string `json:"text"`
}

// DefaultTheme is the theme applied by DefaultOptions.
const DefaultTheme = "midnight"

// Themes is the set of named themes.
var Themes = map[string]Theme{
	"midnight": {Name: "midnight", Background: "#1e1e2e", Card: "#11111b", Text: "#cdd6f4"},
	"paper":    {Name: "paper", Background: "#f5f0e8", Card: "#fffdf7", Text: "#3b3831"},
	"slate":    {Name: "slate", Background: "#334155", Card: "#1e293b", Text: "#e2e8f0"},
	"solar":    {Name: "solar", Background: "#fdf6e3", Card: "#eee8d5", Text: "#657b83"},
	"forest":   {Name: "forest", Background: "#1a2e1a", Card: "#0f1f0f", Text: "#c9e4c5"},
	"rose":     {Name: "rose", Background: "#faf4ed", Card: "#fffaf3", Text: "#575279"},
}

// Apply sets o's colors from the theme.
func (t Theme) Apply(o *Options) {
	o.BackgroundColor = t.Background
	o.CardColor = t.Card
	o.TextColor = t.Text
}

// LookupTheme returns a named theme.
func LookupTheme(name string) (Theme, error) {
	t, ok := Themes[name]
	if !ok {
		return Theme{}, errors.New(errors.ErrCodeInvalidTheme, "unknown theme: %q", name)
	}
	return t, nil
}

// Window-control dot colors. These are fixed hex constants, not themeable.
var dotColors = [3]string{"#ff5f57", "#febc2e", "#28c840"}
