// Package service defines the backend-agnostic interface for task operations.
package service

import (
	"context"
	"errors"

	"taskpad/internal/category"
	"taskpad/internal/theme"
	"taskpad/internal/todo"
	"taskpad/internal/transfer"
)

var (
	// ErrNotFound is returned when an id matches no record.
	ErrNotFound = errors.New("not found")

	// ErrEmptyText is returned when a todo would be created without a description.
	ErrEmptyText = errors.New("description required")
)

// Service defines the operations the commands and the UI run against.
// Commands never touch the stores or the state file directly.
type Service interface {
	// Todos returns every todo in insertion order.
	Todos(ctx context.Context) ([]todo.Todo, error)

	// AddTodo creates a todo and returns its id.
	// Returns ErrEmptyText if in.Text is blank.
	AddTodo(ctx context.Context, in todo.NewTodo) (string, error)

	// ToggleTodo flips the completed flag.
	ToggleTodo(ctx context.Context, id string) error

	// RemoveTodo deletes a todo.
	RemoveTodo(ctx context.Context, id string) error

	// EditTodo merges a partial update into a todo.
	EditTodo(ctx context.Context, id string, p todo.Patch) error

	// RemoveTodosByCategory deletes the todos filed under name and returns the count.
	RemoveTodosByCategory(ctx context.Context, name string) (int, error)

	// RemoveAllTodos deletes every todo and returns the count.
	RemoveAllTodos(ctx context.Context) (int, error)

	// Categories returns every category in insertion order.
	Categories(ctx context.Context) ([]category.Category, error)

	// AddCategory creates a category and returns its id.
	AddCategory(ctx context.Context, name, color string) (string, error)

	// RemoveCategory deletes a category and returns it. Todos filed under
	// its name are left alone; callers follow up with RemoveTodosByCategory.
	RemoveCategory(ctx context.Context, id string) (category.Category, error)

	// Theme returns the current theme.
	Theme(ctx context.Context) (theme.Theme, error)

	// SetTheme replaces the current theme.
	SetTheme(ctx context.Context, t theme.Theme) error

	// ImportTodos applies parsed records with the given strategy.
	ImportTodos(ctx context.Context, records []transfer.Record, strategy transfer.Strategy) (transfer.Result, error)
}
