package errors

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Limits for history snap payloads. The history endpoint rejects anything
// outside these bounds with a client error.
const (
	// MaxSnapTextLength is the maximum snap text length in characters.
	MaxSnapTextLength = 10000

	// MaxTagLength is the maximum length of a single tag in characters.
	MaxTagLength = 40

	// MaxTitleLength is the maximum snap title length in characters.
	MaxTitleLength = 200
)

// ValidateSnapText validates the text body of a history snap.
// Text must be 1 to 10000 characters. Any Unicode content is allowed,
// including newlines; the renderer handles degenerate text itself.
func ValidateSnapText(text string) error {
	if text == "" {
		return New(ErrCodeInvalidSnap, "text cannot be empty")
	}
	if utf8.RuneCountInString(text) > MaxSnapTextLength {
		return New(ErrCodeInvalidSnap, "text too long (max %d characters)", MaxSnapTextLength)
	}
	return nil
}

// ValidateTag validates a single snap tag.
func ValidateTag(tag string) error {
	if tag == "" {
		return New(ErrCodeInvalidSnap, "tag cannot be empty")
	}
	if utf8.RuneCountInString(tag) > MaxTagLength {
		return New(ErrCodeInvalidSnap, "tag too long (max %d characters): %q", MaxTagLength, tag)
	}
	for _, r := range tag {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidSnap, "tag contains control characters")
		}
	}
	return nil
}

// ValidateTitle validates an optional snap title.
// Empty titles are allowed; the history store treats them as absent.
func ValidateTitle(title string) error {
	if title == "" {
		return nil
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return New(ErrCodeInvalidSnap, "title too long (max %d characters)", MaxTitleLength)
	}
	for _, r := range title {
		if r == '\n' || unicode.IsControl(r) {
			return New(ErrCodeInvalidSnap, "title contains control characters")
		}
	}
	return nil
}

// hexColorRegex matches #rgb, #rrggbb, and #rrggbbaa color strings.
var hexColorRegex = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// ValidateHexColor validates a hex color string.
// The renderer only accepts hex notation so that on-screen preview and
// rendered output share the same parsed value.
func ValidateHexColor(color string) error {
	if color == "" {
		return New(ErrCodeInvalidOptions, "color cannot be empty")
	}
	if !hexColorRegex.MatchString(color) {
		return New(ErrCodeInvalidOptions, "invalid hex color: %q", color)
	}
	return nil
}

// ValidateFontFamily validates a font-family list string.
// The string may contain substitution tokens; normalization happens later.
func ValidateFontFamily(family string) error {
	if family == "" {
		return New(ErrCodeInvalidOptions, "font family cannot be empty")
	}
	if len(family) > 500 {
		return New(ErrCodeInvalidOptions, "font family too long (max 500 characters)")
	}
	for _, r := range family {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidOptions, "font family contains control characters")
		}
	}
	if strings.Contains(family, "\x00") {
		return New(ErrCodeInvalidOptions, "font family contains null bytes")
	}
	return nil
}
