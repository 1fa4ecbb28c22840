package snap

import (
	"regexp"
	"strings"
)

// fontTokens maps build-time font variable tokens to literal family names.
// The web editor references its bundled fonts through CSS variables; the
// drawing surface can only resolve literal names, so known tokens are
// substituted and unknown ones stripped.
var fontTokens = map[string]string{
	"var(--font-geist-mono)":     "Geist Mono",
	"var(--font-geist-sans)":     "Geist Sans",
	"var(--font-inter)":          "Inter",
	"var(--font-jetbrains-mono)": "JetBrains Mono",
	"var(--font-fira-code)":      "Fira Code",
}

// genericFamilies is the set of CSS generic family names. A normalized list
// always ends in at least one of these.
var genericFamilies = map[string]bool{
	"monospace":    true,
	"ui-monospace": true,
	"sans-serif":   true,
	"serif":        true,
	"cursive":      true,
	"fantasy":      true,
	"system-ui":    true,
}

var fontTokenRegex = regexp.MustCompile(`var\(--[a-zA-Z0-9-]+\)`)

// NormalizeFontFamily rewrites a font-family list so the drawing surface can
// resolve it: known substitution tokens become their quoted literal family
// name, unrecognized tokens are stripped, duplicate separators left by
// stripping are collapsed, and a monospace fallback is appended when the
// list contains no generic family.
func NormalizeFontFamily(family string) string {
	replaced := fontTokenRegex.ReplaceAllStringFunc(family, func(token string) string {
		if name, ok := fontTokens[token]; ok {
			return "'" + name + "'"
		}
		return ""
	})

	// Re-split to drop the empty entries stripping leaves behind.
	var names []string
	hasGeneric := false
	for _, part := range strings.Split(replaced, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		if genericFamilies[strings.ToLower(strings.Trim(name, `'"`))] {
			hasGeneric = true
		}
		names = append(names, name)
	}

	if !hasGeneric {
		names = append(names, "monospace")
	}
	return strings.Join(names, ", ")
}
