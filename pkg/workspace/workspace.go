// Package workspace tracks the set of placements loaded for side-by-side
// comparison.
//
// A workspace is an ordered list of entries, each wrapping one parsed
// placement record under a stable ID. The list is what comparison views
// iterate: metrics run over all entries, colors normalize over their
// union. Entries are keyed by source path, so loading the same file
// twice is rejected instead of silently duplicated.
//
// All methods are safe for concurrent use; the HTTP API mutates a
// shared workspace from request handlers.
package workspace

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mpgalab/placeview/pkg/placement"
)

// Sentinel errors for workspace operations.
var (
	// ErrNotFound is returned when no entry has the requested ID.
	ErrNotFound = errors.New("entry not found")

	// ErrDuplicatePath is returned when a path is already loaded.
	ErrDuplicatePath = errors.New("path already loaded")
)

// Entry is one placement in the comparison list.
type Entry struct {
	ID      string            `json:"id"`
	Name    string            `json:"name"`
	Path    string            `json:"path,omitempty"`
	Record  *placement.Record `json:"-"`
	Source  []byte            `json:"-"`
	AddedAt time.Time         `json:"added_at"`
}

// Workspace is an ordered, concurrency-safe comparison list.
type Workspace struct {
	mu      sync.RWMutex
	entries []*Entry
}

// New creates an empty workspace.
func New() *Workspace {
	return &Workspace{}
}

// AddFile parses the file at path and appends it as a new entry. The
// entry name is the file's base name without extension; the record
// keeps that name too so reports and render titles match.
func (w *Workspace) AddFile(path string) (*Entry, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, e := range w.entries {
		if e.Path == path {
			return nil, fmt.Errorf("%w: %s", ErrDuplicatePath, path)
		}
	}

	rec, err := placement.ParseFile(path)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	rec.Name = name

	entry := &Entry{
		ID:      uuid.NewString(),
		Name:    name,
		Path:    path,
		Record:  rec,
		AddedAt: time.Now(),
	}
	w.entries = append(w.entries, entry)
	return entry, nil
}

// AddRecord appends an already-parsed record under the given name.
// Records have no path, so duplicates are allowed.
func (w *Workspace) AddRecord(name string, rec *placement.Record) (*Entry, error) {
	if rec == nil {
		return nil, fmt.Errorf("add record: nil record")
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	rec.Name = name
	entry := &Entry{
		ID:      uuid.NewString(),
		Name:    name,
		Record:  rec,
		AddedAt: time.Now(),
	}
	w.entries = append(w.entries, entry)
	return entry, nil
}

// AddSource parses raw placement bytes and appends them as a new entry,
// keeping the source alongside the record so later pipeline runs hash
// the exact uploaded bytes.
func (w *Workspace) AddSource(name string, source []byte) (*Entry, error) {
	rec, err := placement.Parse(source)
	if err != nil {
		return nil, err
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	rec.Name = name
	entry := &Entry{
		ID:      uuid.NewString(),
		Name:    name,
		Record:  rec,
		Source:  source,
		AddedAt: time.Now(),
	}
	w.entries = append(w.entries, entry)
	return entry, nil
}

// Get returns the entry with the given ID.
func (w *Workspace) Get(id string) (*Entry, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	for _, e := range w.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Remove deletes the entry with the given ID, preserving order of the
// rest.
func (w *Workspace) Remove(id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i, e := range w.entries {
		if e.ID == id {
			w.entries = append(w.entries[:i], w.entries[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Clear removes every entry.
func (w *Workspace) Clear() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.entries = nil
}

// Len returns the number of entries.
func (w *Workspace) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.entries)
}

// Entries returns a snapshot of the list in insertion order.
func (w *Workspace) Entries() []*Entry {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]*Entry, len(w.entries))
	copy(out, w.entries)
	return out
}

// Records returns the records in insertion order, ready for comparison
// metrics and shared render contexts.
func (w *Workspace) Records() []*placement.Record {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]*placement.Record, len(w.entries))
	for i, e := range w.entries {
		out[i] = e.Record
	}
	return out
}
