package snap

import "testing"

func TestNormalizeFontFamily(t *testing.T) {
	tests := []struct {
		name   string
		family string
		want   string
	}{
		{
			name:   "known token substituted",
			family: "var(--font-geist-mono), monospace",
			want:   "'Geist Mono', monospace",
		},
		{
			name:   "unknown token stripped",
			family: "var(--font-mystery), monospace",
			want:   "monospace",
		},
		{
			name:   "unknown token stripped leaves no dangling separator",
			family: "'Fira Code', var(--font-mystery), monospace",
			want:   "'Fira Code', monospace",
		},
		{
			name:   "literal list untouched",
			family: "'JetBrains Mono', 'Fira Code', monospace",
			want:   "'JetBrains Mono', 'Fira Code', monospace",
		},
		{
			name:   "monospace appended when no generic present",
			family: "'SF Mono', 'Menlo'",
			want:   "'SF Mono', 'Menlo', monospace",
		},
		{
			name:   "quoted generic counts as generic",
			family: "'monospace'",
			want:   "'monospace'",
		},
		{
			name:   "ui-monospace counts as generic",
			family: "ui-monospace",
			want:   "ui-monospace",
		},
		{
			name:   "only unknown tokens falls back to monospace",
			family: "var(--font-unknown-one), var(--font-unknown-two)",
			want:   "monospace",
		},
		{
			name:   "whitespace collapsed",
			family: "  'Inter'  ,   sans-serif ",
			want:   "'Inter', sans-serif",
		},
		{
			name:   "empty input becomes monospace",
			family: "",
			want:   "monospace",
		},
		{
			name:   "several tokens substituted in order",
			family: "var(--font-jetbrains-mono), var(--font-fira-code), monospace",
			want:   "'JetBrains Mono', 'Fira Code', monospace",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeFontFamily(tt.family); got != tt.want {
				t.Errorf("NormalizeFontFamily(%q) = %q, want %q", tt.family, got, tt.want)
			}
		})
	}
}
