// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"taskpad/internal/category"
	"taskpad/internal/service"
	"taskpad/internal/state"
	"taskpad/internal/theme"
	"taskpad/internal/todo"
	"taskpad/internal/transfer"
)

// FixedTime is the clock reading of every todo created by a FakeService.
var FixedTime = time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

// FakeService is an in-memory implementation of service.Service for testing.
// Todo ids are "t1", "t2", ... and category ids "c1", "c2", ...
type FakeService struct {
	mu sync.RWMutex
	st *state.State

	// Error injection for testing
	TodosErr       error
	AddTodoErr     error
	ToggleTodoErr  error
	RemoveTodoErr  error
	EditTodoErr    error
	RemoveByCatErr error
	RemoveAllErr   error
	CategoriesErr  error
	AddCategoryErr error
	RemoveCatErr   error
	ThemeErr       error
	SetThemeErr    error
	ImportTodosErr error
}

// NewFakeService creates an empty FakeService with the default theme.
func NewFakeService() *FakeService {
	var todoN, catN int
	return &FakeService{
		st: state.New(state.Options{
			TodoOptions: []todo.Option{
				todo.WithClock(func() time.Time { return FixedTime }),
				todo.WithIDGenerator(func() string {
					todoN++
					return fmt.Sprintf("t%d", todoN)
				}),
			},
			CategoryIDs: func() string {
				catN++
				return fmt.Sprintf("c%d", catN)
			},
		}),
	}
}

// AddTask adds a todo with the given text and returns its id.
func (f *FakeService) AddTask(text string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	id, _ := f.st.Todos.Add(todo.NewTodo{Text: text})
	return id
}

// AddTaskIn adds a todo filed under a category and returns its id.
func (f *FakeService) AddTaskIn(text, categoryName string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	id, _ := f.st.Todos.Add(todo.NewTodo{Text: text, Category: categoryName})
	return id
}

// AddCat adds a category and returns its id.
func (f *FakeService) AddCat(name, color string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.st.Categories.Add(name, color)
}

// Get returns a copy of the todo with id.
func (f *FakeService) Get(id string) (todo.Todo, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.st.Todos.Get(id)
}

// TodoCount returns the number of stored todos.
func (f *FakeService) TodoCount() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.st.Todos.Len()
}

// CategoryCount returns the number of stored categories.
func (f *FakeService) CategoryCount() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.st.Categories.Len()
}

// Todos implements service.Service.
func (f *FakeService) Todos(ctx context.Context) ([]todo.Todo, error) {
	if f.TodosErr != nil {
		return nil, f.TodosErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.st.Todos.All(), nil
}

// AddTodo implements service.Service.
func (f *FakeService) AddTodo(ctx context.Context, in todo.NewTodo) (string, error) {
	if f.AddTodoErr != nil {
		return "", f.AddTodoErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	id, ok := f.st.Todos.Add(in)
	if !ok {
		return "", service.ErrEmptyText
	}
	return id, nil
}

// ToggleTodo implements service.Service.
func (f *FakeService) ToggleTodo(ctx context.Context, id string) error {
	if f.ToggleTodoErr != nil {
		return f.ToggleTodoErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.st.Todos.Toggle(id) {
		return service.ErrNotFound
	}
	return nil
}

// RemoveTodo implements service.Service.
func (f *FakeService) RemoveTodo(ctx context.Context, id string) error {
	if f.RemoveTodoErr != nil {
		return f.RemoveTodoErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.st.Todos.Remove(id) {
		return service.ErrNotFound
	}
	return nil
}

// EditTodo implements service.Service.
func (f *FakeService) EditTodo(ctx context.Context, id string, p todo.Patch) error {
	if f.EditTodoErr != nil {
		return f.EditTodoErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.st.Todos.Edit(id, p) {
		return service.ErrNotFound
	}
	return nil
}

// RemoveTodosByCategory implements service.Service.
func (f *FakeService) RemoveTodosByCategory(ctx context.Context, name string) (int, error) {
	if f.RemoveByCatErr != nil {
		return 0, f.RemoveByCatErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.st.Todos.RemoveByCategory(name), nil
}

// RemoveAllTodos implements service.Service.
func (f *FakeService) RemoveAllTodos(ctx context.Context) (int, error) {
	if f.RemoveAllErr != nil {
		return 0, f.RemoveAllErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.st.Todos.RemoveAll(), nil
}

// Categories implements service.Service.
func (f *FakeService) Categories(ctx context.Context) ([]category.Category, error) {
	if f.CategoriesErr != nil {
		return nil, f.CategoriesErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.st.Categories.All(), nil
}

// AddCategory implements service.Service.
func (f *FakeService) AddCategory(ctx context.Context, name, color string) (string, error) {
	if f.AddCategoryErr != nil {
		return "", f.AddCategoryErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.st.Categories.Add(name, color), nil
}

// RemoveCategory implements service.Service.
func (f *FakeService) RemoveCategory(ctx context.Context, id string) (category.Category, error) {
	if f.RemoveCatErr != nil {
		return category.Category{}, f.RemoveCatErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.st.Categories.Remove(id)
	if !ok {
		return category.Category{}, service.ErrNotFound
	}
	return c, nil
}

// Theme implements service.Service.
func (f *FakeService) Theme(ctx context.Context) (theme.Theme, error) {
	if f.ThemeErr != nil {
		return "", f.ThemeErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.st.Theme.Current(), nil
}

// SetTheme implements service.Service.
func (f *FakeService) SetTheme(ctx context.Context, t theme.Theme) error {
	if f.SetThemeErr != nil {
		return f.SetThemeErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.st.Theme.Set(t) {
		return fmt.Errorf("unknown theme: %s", t)
	}
	return nil
}

// ImportTodos implements service.Service.
func (f *FakeService) ImportTodos(ctx context.Context, records []transfer.Record, strategy transfer.Strategy) (transfer.Result, error) {
	if f.ImportTodosErr != nil {
		return transfer.Result{}, f.ImportTodosErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return transfer.Apply(f.st.Todos, records, strategy), nil
}

var _ service.Service = (*FakeService)(nil)
