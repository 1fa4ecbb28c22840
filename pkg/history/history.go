// Package history persists recently rendered snaps.
//
// A history entry stores the input text plus light metadata, never the
// encoded image: artifacts are cheap to re-render and expensive to store.
// The store keeps the newest MaxEntries snaps and silently drops the rest.
//
// Four backends implement [Store]: an in-memory store for tests, a JSON
// file store for the CLI, and Redis and MongoDB stores for the server.
package history

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/snapkit/snapcard/pkg/errors"
)

// MaxEntries is the history retention cap. Adding beyond it evicts the
// oldest entries.
const MaxEntries = 100

// Snap is one history entry.
type Snap struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
	Title     string    `json:"title,omitempty"`
	Tags      []string  `json:"tags,omitempty"`
}

// Store is the interface for history backends. All implementations keep
// entries ordered newest first and enforce the MaxEntries cap on Add.
type Store interface {
	// Add validates and persists a snap, evicting the oldest entries
	// beyond MaxEntries.
	Add(ctx context.Context, s Snap) error

	// List returns all entries, newest first.
	List(ctx context.Context) ([]Snap, error)

	// Get returns the entry with the given ID.
	Get(ctx context.Context, id string) (Snap, error)

	// Delete removes the entry with the given ID.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close() error
}

// New builds a validated snap from text and optional metadata, assigning
// a fresh ID and the current timestamp.
func New(text, title string, tags []string) (Snap, error) {
	s := Snap{
		ID:        uuid.NewString(),
		Text:      text,
		Timestamp: time.Now().UTC(),
		Title:     strings.TrimSpace(title),
		Tags:      normalizeTags(tags),
	}
	if err := s.Validate(); err != nil {
		return Snap{}, err
	}
	return s, nil
}

// Validate checks the snap against the persistence limits.
func (s *Snap) Validate() error {
	if err := errors.ValidateSnapText(s.Text); err != nil {
		return err
	}
	if err := errors.ValidateTitle(s.Title); err != nil {
		return err
	}
	for _, tag := range s.Tags {
		if err := errors.ValidateTag(tag); err != nil {
			return err
		}
	}
	if s.ID == "" {
		return errors.New(errors.ErrCodeInvalidSnap, "snap has no id")
	}
	if s.Timestamp.UnixMilli() <= 0 {
		return errors.New(errors.ErrCodeInvalidSnap, "snap timestamp must be positive")
	}
	return nil
}

// normalizeTags trims whitespace and drops empty tags, preserving order.
func normalizeTags(tags []string) []string {
	var out []string
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// notFound is the shared missing-ID error so all backends agree.
func notFound(id string) error {
	return errors.New(errors.ErrCodeNotFound, "snap not found: %s", id)
}
