package history

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/snapkit/snapcard/pkg/errors"
)

// FileStore persists history as a JSON array on disk, newest first. It is
// the CLI backend: one file under the user's data directory, rewritten
// atomically on every mutation so a crash never leaves it half-written.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a file store at path, creating parent directories
// as needed. A missing file reads as empty history.
func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "create history directory")
	}
	return &FileStore{path: path}, nil
}

// Add prepends the snap, evicts past the cap, and rewrites the file.
func (f *FileStore) Add(ctx context.Context, s Snap) error {
	if err := s.Validate(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	snaps, err := f.load()
	if err != nil {
		return err
	}
	snaps = append([]Snap{s}, snaps...)
	if len(snaps) > MaxEntries {
		snaps = snaps[:MaxEntries]
	}
	return f.save(snaps)
}

// List returns all entries, newest first.
func (f *FileStore) List(ctx context.Context) ([]Snap, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.load()
}

// Get returns the entry with the given ID.
func (f *FileStore) Get(ctx context.Context, id string) (Snap, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	snaps, err := f.load()
	if err != nil {
		return Snap{}, err
	}
	for _, s := range snaps {
		if s.ID == id {
			return s, nil
		}
	}
	return Snap{}, notFound(id)
}

// Delete removes the entry with the given ID and rewrites the file.
func (f *FileStore) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	snaps, err := f.load()
	if err != nil {
		return err
	}
	for i, s := range snaps {
		if s.ID == id {
			return f.save(append(snaps[:i], snaps[i+1:]...))
		}
	}
	return notFound(id)
}

// Close is a no-op; the store holds no open handles between calls.
func (f *FileStore) Close() error {
	return nil
}

// load reads the history file. Missing file means empty history; corrupt
// JSON is a store error, not silently discarded data.
func (f *FileStore) load() ([]Snap, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "read history")
	}

	var snaps []Snap
	if err := json.Unmarshal(data, &snaps); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "parse history")
	}
	return snaps, nil
}

// save writes the history atomically: temp file in the same directory,
// then rename over the target.
func (f *FileStore) save(snaps []Snap) error {
	data, err := json.MarshalIndent(snaps, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "encode history")
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".history-*.json")
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "write history")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(errors.ErrCodeStore, err, "write history")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "write history")
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "write history")
	}
	return nil
}

var _ Store = (*FileStore)(nil)
