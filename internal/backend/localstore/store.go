// Package localstore implements service.Service over a JSON state file.
package localstore

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"taskpad/internal/category"
	"taskpad/internal/config"
	"taskpad/internal/logging"
	"taskpad/internal/service"
	"taskpad/internal/state"
	"taskpad/internal/theme"
	"taskpad/internal/todo"
	"taskpad/internal/transfer"
)

// Store implements service.Service. All calls hold one mutex, so the state
// has a single writer even when the UI and a command share a Store.
type Store struct {
	mu   sync.Mutex
	st   *state.State
	path string
	log  *slog.Logger
}

// New loads the state file named by cfg. A missing file starts empty.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Store, error) {
	return Open(cfg.DataPath(), state.Options{Theme: cfg.InitialTheme()}, logger)
}

// Open loads the state file at path with explicit options (used by tests).
func Open(path string, opts state.Options, logger *slog.Logger) (*Store, error) {
	log := logging.Component(logger, "localstore")

	st, err := state.Load(path, opts)
	if err != nil {
		return nil, err
	}
	log.Debug("state loaded", "path", path, "todos", st.Todos.Len(), "categories", st.Categories.Len())

	return &Store{st: st, path: path, log: log}, nil
}

// Path returns the state file path.
func (s *Store) Path() string {
	return s.path
}

// mutate applies fn and saves the result. fn reports whether it changed
// anything; unchanged state is not written. A failed save restores the state
// to what it was before fn, so memory never runs ahead of the file.
// Callers hold s.mu.
func (s *Store) mutate(op string, fn func() bool) error {
	snap := s.st.Snapshot()
	if !fn() {
		return nil
	}
	if err := s.save(op); err != nil {
		s.st.Restore(snap)
		return err
	}
	return nil
}

// save persists the state. Callers hold s.mu.
func (s *Store) save(op string) error {
	if err := s.st.Save(s.path); err != nil {
		s.log.Error("state save failed", "op", op, "err", err)
		return err
	}
	s.log.Debug("state saved", "op", op, "todos", s.st.Todos.Len())
	return nil
}

// Todos implements service.Service.
func (s *Store) Todos(ctx context.Context) ([]todo.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.Todos.All(), nil
}

// AddTodo implements service.Service.
func (s *Store) AddTodo(ctx context.Context, in todo.NewTodo) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var id string
	var ok bool
	err := s.mutate("add", func() bool {
		id, ok = s.st.Todos.Add(in)
		return ok
	})
	if err != nil {
		return "", err
	}
	if !ok {
		return "", service.ErrEmptyText
	}
	return id, nil
}

// ToggleTodo implements service.Service.
func (s *Store) ToggleTodo(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.st.Todos.Has(id) {
		return fmt.Errorf("todo %s: %w", id, service.ErrNotFound)
	}
	return s.mutate("toggle", func() bool { return s.st.Todos.Toggle(id) })
}

// RemoveTodo implements service.Service.
func (s *Store) RemoveTodo(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.st.Todos.Has(id) {
		return fmt.Errorf("todo %s: %w", id, service.ErrNotFound)
	}
	return s.mutate("remove", func() bool { return s.st.Todos.Remove(id) })
}

// EditTodo implements service.Service.
func (s *Store) EditTodo(ctx context.Context, id string, p todo.Patch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.st.Todos.Has(id) {
		return fmt.Errorf("todo %s: %w", id, service.ErrNotFound)
	}
	return s.mutate("edit", func() bool { return s.st.Todos.Edit(id, p) })
}

// RemoveTodosByCategory implements service.Service.
func (s *Store) RemoveTodosByCategory(ctx context.Context, name string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int
	err := s.mutate("remove-by-category", func() bool {
		n = s.st.Todos.RemoveByCategory(name)
		return n > 0
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}

// RemoveAllTodos implements service.Service.
func (s *Store) RemoveAllTodos(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int
	err := s.mutate("remove-all", func() bool {
		n = s.st.Todos.RemoveAll()
		return n > 0
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}

// Categories implements service.Service.
func (s *Store) Categories(ctx context.Context) ([]category.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.Categories.All(), nil
}

// AddCategory implements service.Service.
func (s *Store) AddCategory(ctx context.Context, name, color string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var id string
	err := s.mutate("add-category", func() bool {
		id = s.st.Categories.Add(name, color)
		return true
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// RemoveCategory implements service.Service.
func (s *Store) RemoveCategory(ctx context.Context, id string) (category.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		c  category.Category
		ok bool
	)
	err := s.mutate("remove-category", func() bool {
		c, ok = s.st.Categories.Remove(id)
		return ok
	})
	if err != nil {
		return category.Category{}, err
	}
	if !ok {
		return category.Category{}, fmt.Errorf("category %s: %w", id, service.ErrNotFound)
	}
	return c, nil
}

// Theme implements service.Service.
func (s *Store) Theme(ctx context.Context) (theme.Theme, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.Theme.Current(), nil
}

// SetTheme implements service.Service.
func (s *Store) SetTheme(ctx context.Context, t theme.Theme) error {
	if !t.Valid() {
		return fmt.Errorf("unknown theme: %s", t)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.mutate("set-theme", func() bool { return s.st.Theme.Set(t) })
}

// ImportTodos implements service.Service. The state is saved once, after
// every record has been applied.
func (s *Store) ImportTodos(ctx context.Context, records []transfer.Record, strategy transfer.Strategy) (transfer.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var res transfer.Result
	err := s.mutate("import", func() bool {
		res = transfer.Apply(s.st.Todos, records, strategy)
		return true
	})
	if err != nil {
		return transfer.Result{}, err
	}
	s.log.Info("import applied",
		"strategy", strategy.String(),
		"added", res.Added,
		"duplicates", res.Duplicates,
		"rejected", res.Rejected,
		"removed", res.Removed,
	)
	return res, nil
}

var _ service.Service = (*Store)(nil)
