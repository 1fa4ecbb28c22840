// Package prefs loads and saves user rendering preferences.
//
// Preferences are the sticky subset of render options a user sets once and
// expects every subsequent snap to pick up: theme, font, size, alignment,
// and output format. They live in a TOML file under the user config
// directory and seed the CLI's flag defaults; explicit flags always win.
package prefs

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/snapkit/snapcard/pkg/errors"
	"github.com/snapkit/snapcard/pkg/snap"
)

// Prefs is the persisted preference set. Zero fields mean "no preference"
// and fall through to the renderer defaults.
type Prefs struct {
	Theme      string `toml:"theme,omitempty"`
	FontFamily string `toml:"font_family,omitempty"`
	FontSize   int    `toml:"font_size,omitempty"`
	TextAlign  string `toml:"text_align,omitempty"`
	Format     string `toml:"format,omitempty"`
}

// Default returns an empty preference set: everything deferred to the
// renderer defaults.
func Default() Prefs {
	return Prefs{}
}

// DefaultPath returns the standard preferences file location under the
// user config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeStore, err, "locate config directory")
	}
	return filepath.Join(dir, "snapcard", "prefs.toml"), nil
}

// Load reads preferences from path. A missing file returns defaults; a
// corrupt file also returns defaults rather than blocking every command
// on a bad config.
func Load(path string) Prefs {
	data, err := os.ReadFile(path)
	if err != nil {
		return Default()
	}
	var p Prefs
	if _, err := toml.Decode(string(data), &p); err != nil {
		return Default()
	}
	return p
}

// Save validates and writes preferences to path atomically, creating
// parent directories as needed.
func Save(path string, p Prefs) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "create config directory")
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(p); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "encode preferences")
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".prefs-*.toml")
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "write preferences")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return errors.Wrap(errors.ErrCodeStore, err, "write preferences")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "write preferences")
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "write preferences")
	}
	return nil
}

// Validate checks that every set field names a real value. Unset fields
// are fine.
func (p Prefs) Validate() error {
	if p.Theme != "" {
		if _, err := snap.LookupTheme(p.Theme); err != nil {
			return err
		}
	}
	if p.Format != "" {
		if err := snap.ValidateFormat(p.Format); err != nil {
			return err
		}
	}
	if p.TextAlign != "" && p.TextAlign != snap.AlignLeft && p.TextAlign != snap.AlignCenter {
		return errors.New(errors.ErrCodeInvalidOptions, "text align must be %q or %q (got %q)", snap.AlignLeft, snap.AlignCenter, p.TextAlign)
	}
	if p.FontSize < 0 {
		return errors.New(errors.ErrCodeInvalidOptions, "font size cannot be negative (got %d)", p.FontSize)
	}
	if p.FontFamily != "" {
		return errors.ValidateFontFamily(p.FontFamily)
	}
	return nil
}

// Apply merges the preferences onto opts: set fields override, unset
// fields leave opts untouched.
func (p Prefs) Apply(opts *snap.Options) error {
	if p.Theme != "" {
		theme, err := snap.LookupTheme(p.Theme)
		if err != nil {
			return err
		}
		theme.Apply(opts)
	}
	if p.FontFamily != "" {
		opts.FontFamily = p.FontFamily
	}
	if p.FontSize > 0 {
		opts.FontSize = p.FontSize
	}
	if p.TextAlign != "" {
		opts.TextAlign = p.TextAlign
	}
	if p.Format != "" {
		opts.Format = p.Format
	}
	return nil
}
