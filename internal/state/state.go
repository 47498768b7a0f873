// Package state bundles the todo, category and theme stores into one
// explicit value and persists it as a single JSON document.
package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"taskpad/internal/category"
	"taskpad/internal/theme"
	"taskpad/internal/todo"
)

// ErrCorrupt is returned when a state file cannot be decoded.
var ErrCorrupt = errors.New("corrupt state file")

// State owns the three stores. Mutations go through the stores; State only
// groups them and handles persistence.
type State struct {
	Todos      *todo.Store
	Categories *category.Store
	Theme      *theme.Store
}

// Options configures a fresh State.
type Options struct {
	// Theme is the initial theme when no state file exists.
	Theme theme.Theme

	// TodoOptions are passed to todo.NewStore.
	TodoOptions []todo.Option

	// CategoryIDs overrides the category id generator.
	CategoryIDs func() string
}

// New returns an empty state.
func New(opts Options) *State {
	return &State{
		Todos:      todo.NewStore(opts.TodoOptions...),
		Categories: category.NewStore(opts.CategoryIDs),
		Theme:      theme.NewStore(opts.Theme),
	}
}

// Document is the on-disk form of a State.
type Document struct {
	Theme      theme.Theme         `json:"theme"`
	Categories []category.Category `json:"categories"`
	Todos      []todo.Todo         `json:"todos"`
}

// Snapshot captures the current contents.
func (s *State) Snapshot() Document {
	return Document{
		Theme:      s.Theme.Current(),
		Categories: s.Categories.All(),
		Todos:      s.Todos.All(),
	}
}

// Restore replaces the contents with doc. An invalid theme falls back to
// the store's current one.
func (s *State) Restore(doc Document) {
	s.Theme.Set(doc.Theme)
	s.Categories.Restore(doc.Categories)
	s.Todos.Restore(doc.Todos)
}

// Load reads the state file at path. A missing file yields an empty state.
func Load(path string, opts Options) (*State, error) {
	st := New(opts)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return st, nil
		}
		return nil, fmt.Errorf("read state file: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrCorrupt, path, err)
	}
	st.Restore(doc)
	return st, nil
}

// Save writes the state to path atomically: the document goes to a
// temporary file in the same directory which is then renamed over path.
func (s *State) Save(path string) error {
	data, err := json.MarshalIndent(s.Snapshot(), "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".state-*.json")
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write state file: %w", err)
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close state file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("replace state file: %w", err)
	}
	return nil
}
