package history

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/snapkit/snapcard/pkg/errors"
)

// storeFactory builds a fresh store per test so both backends run the same
// behavioral suite.
type storeFactory func(t *testing.T) Store

func stores() map[string]storeFactory {
	return map[string]storeFactory{
		"memory": func(t *testing.T) Store {
			return NewMemoryStore()
		},
		"file": func(t *testing.T) Store {
			s, err := NewFileStore(filepath.Join(t.TempDir(), "history.json"))
			if err != nil {
				t.Fatalf("NewFileStore: %v", err)
			}
			return s
		},
	}
}

func mustSnap(t *testing.T, text string) Snap {
	t.Helper()
	s, err := New(text, "", nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestStoreAddList(t *testing.T) {
	for name, factory := range stores() {
		t.Run(name, func(t *testing.T) {
			store := factory(t)
			defer store.Close()
			ctx := context.Background()

			first := mustSnap(t, "first")
			second := mustSnap(t, "second")
			if err := store.Add(ctx, first); err != nil {
				t.Fatalf("Add: %v", err)
			}
			if err := store.Add(ctx, second); err != nil {
				t.Fatalf("Add: %v", err)
			}

			snaps, err := store.List(ctx)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(snaps) != 2 {
				t.Fatalf("len = %d, want 2", len(snaps))
			}
			// Newest first.
			if snaps[0].ID != second.ID || snaps[1].ID != first.ID {
				t.Errorf("order = [%s %s], want newest first", snaps[0].Text, snaps[1].Text)
			}
		})
	}
}

func TestStoreGetDelete(t *testing.T) {
	for name, factory := range stores() {
		t.Run(name, func(t *testing.T) {
			store := factory(t)
			defer store.Close()
			ctx := context.Background()

			s := mustSnap(t, "keep me")
			if err := store.Add(ctx, s); err != nil {
				t.Fatalf("Add: %v", err)
			}

			got, err := store.Get(ctx, s.ID)
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if got.Text != "keep me" {
				t.Errorf("Text = %q", got.Text)
			}

			if err := store.Delete(ctx, s.ID); err != nil {
				t.Fatalf("Delete: %v", err)
			}
			if _, err := store.Get(ctx, s.ID); errors.GetCode(err) != errors.ErrCodeNotFound {
				t.Errorf("Get after delete = %v, want not found", err)
			}
			if err := store.Delete(ctx, s.ID); errors.GetCode(err) != errors.ErrCodeNotFound {
				t.Errorf("second Delete = %v, want not found", err)
			}
		})
	}
}

func TestStoreCap(t *testing.T) {
	for name, factory := range stores() {
		t.Run(name, func(t *testing.T) {
			store := factory(t)
			defer store.Close()
			ctx := context.Background()

			for i := 0; i < MaxEntries+10; i++ {
				if err := store.Add(ctx, mustSnap(t, fmt.Sprintf("snap %d", i))); err != nil {
					t.Fatalf("Add %d: %v", i, err)
				}
			}

			snaps, err := store.List(ctx)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(snaps) != MaxEntries {
				t.Fatalf("len = %d, want cap %d", len(snaps), MaxEntries)
			}
			// The newest survives; the oldest were evicted.
			if snaps[0].Text != fmt.Sprintf("snap %d", MaxEntries+9) {
				t.Errorf("head = %q, want newest", snaps[0].Text)
			}
			if snaps[MaxEntries-1].Text != "snap 10" {
				t.Errorf("tail = %q, want snap 10", snaps[MaxEntries-1].Text)
			}
		})
	}
}

func TestStoreRejectsInvalid(t *testing.T) {
	for name, factory := range stores() {
		t.Run(name, func(t *testing.T) {
			store := factory(t)
			defer store.Close()

			err := store.Add(context.Background(), Snap{ID: "x", Text: ""})
			if errors.GetCode(err) != errors.ErrCodeInvalidSnap {
				t.Errorf("Add = %v, want invalid snap", err)
			}
		})
	}
}

func TestFileStorePersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	ctx := context.Background()

	first, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	s := mustSnap(t, "persisted")
	if err := first.Add(ctx, s); err != nil {
		t.Fatalf("Add: %v", err)
	}
	first.Close()

	second, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	defer second.Close()

	got, err := second.Get(ctx, s.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Text != "persisted" {
		t.Errorf("Text = %q", got.Text)
	}
}
