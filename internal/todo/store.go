package todo

import (
	"time"

	"github.com/google/uuid"
)

// Store owns an ordered collection of todos. Insertion order is kept and no
// sorting is ever applied. A Store is not safe for concurrent use; callers
// serialize access (see backend/localstore).
type Store struct {
	todos []Todo
	now   func() time.Time
	newID func() string
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the clock used for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithIDGenerator overrides the id generator.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) {
		s.newID = gen
	}
}

// NewStore creates an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add appends a new todo and returns its id.
// Blank text is rejected: ok is false and the store is unchanged.
func (s *Store) Add(in NewTodo) (id string, ok bool) {
	if IsBlank(in.Text) {
		return "", false
	}

	t := Todo{
		ID:        s.newID(),
		Title:     DeriveTitle(in.Title, in.Text),
		Text:      in.Text,
		CreatedAt: s.now().UTC().Truncate(time.Millisecond),
		Category:  in.Category,
		Color:     in.Color,
	}
	if in.DueDate != nil {
		d := *in.DueDate
		t.DueDate = &d
	}

	s.todos = append(s.todos, t)
	return t.ID, true
}

// Toggle flips Completed. Returns false if id is unknown.
func (s *Store) Toggle(id string) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.todos[i].Completed = !s.todos[i].Completed
	return true
}

// Remove deletes the todo with id. Returns false if id is unknown.
func (s *Store) Remove(id string) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.todos = append(s.todos[:i], s.todos[i+1:]...)
	return true
}

// RemoveByCategory deletes every todo whose category equals name exactly
// and returns how many were removed.
func (s *Store) RemoveByCategory(name string) int {
	kept := s.todos[:0]
	removed := 0
	for _, t := range s.todos {
		if t.Category == name {
			removed++
			continue
		}
		kept = append(kept, t)
	}
	// Clear the tail so removed records are not retained by the backing array.
	for i := len(kept); i < len(s.todos); i++ {
		s.todos[i] = Todo{}
	}
	s.todos = kept
	return removed
}

// RemoveAll empties the store and returns how many todos were removed.
func (s *Store) RemoveAll() int {
	n := len(s.todos)
	s.todos = nil
	return n
}

// Edit merges p into the todo with id. Returns false if id is unknown.
func (s *Store) Edit(id string, p Patch) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}

	t := &s.todos[i]
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Text != nil {
		t.Text = *p.Text
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	if p.ClearDueDate {
		t.DueDate = nil
	} else if p.DueDate != nil {
		d := *p.DueDate
		t.DueDate = &d
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Color != nil {
		t.Color = *p.Color
	}
	return true
}

// Get returns a copy of the todo with id.
func (s *Store) Get(id string) (Todo, bool) {
	i := s.index(id)
	if i < 0 {
		return Todo{}, false
	}
	return s.todos[i].clone(), true
}

// Has reports whether a todo with id exists.
func (s *Store) Has(id string) bool {
	return s.index(id) >= 0
}

// Len returns the number of todos.
func (s *Store) Len() int {
	return len(s.todos)
}

// All returns a copy of every todo in insertion order.
func (s *Store) All() []Todo {
	out := make([]Todo, len(s.todos))
	for i, t := range s.todos {
		out[i] = t.clone()
	}
	return out
}

// ByCategory returns copies of the todos whose category equals name.
// An empty name matches every todo.
func (s *Store) ByCategory(name string) []Todo {
	if name == "" {
		return s.All()
	}
	var out []Todo
	for _, t := range s.todos {
		if t.Category == name {
			out = append(out, t.clone())
		}
	}
	return out
}

// Restore replaces the collection with previously persisted records,
// keeping their ids and timestamps.
func (s *Store) Restore(todos []Todo) {
	s.todos = make([]Todo, len(todos))
	for i, t := range todos {
		s.todos[i] = t.clone()
	}
}

func (s *Store) index(id string) int {
	for i := range s.todos {
		if s.todos[i].ID == id {
			return i
		}
	}
	return -1
}
