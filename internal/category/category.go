// Package category holds the named, colored tags that group todos.
//
// Todos reference a category by name, not by id. Removing a category does
// not touch todos; callers follow Remove with todo.Store.RemoveByCategory.
package category

import "github.com/google/uuid"

// Palette is the set of colors offered for todos and categories.
var Palette = []string{
	"#A1CEDC", "#FFB6B9", "#F7D6E0", "#B5EAD7", "#FFDAC1",
	"#C7CEEA", "#FF9AA2", "#E2F0CB", "#FFB347", "#B39CD0",
}

// DefaultColor is the color used when none is chosen.
var DefaultColor = Palette[0]

// Category is a named tag.
type Category struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Color string `json:"color" yaml:"color"`
}

// Store owns an ordered list of categories. Not safe for concurrent use.
type Store struct {
	categories []Category
	newID      func() string
}

// NewStore creates an empty store. A nil gen uses random uuids.
func NewStore(gen func() string) *Store {
	if gen == nil {
		gen = uuid.NewString
	}
	return &Store{newID: gen}
}

// Add appends a category and returns its id. Names are not validated here:
// blank and duplicate names are accepted.
func (s *Store) Add(name, color string) string {
	c := Category{ID: s.newID(), Name: name, Color: color}
	s.categories = append(s.categories, c)
	return c.ID
}

// Remove deletes the category with id and returns it.
func (s *Store) Remove(id string) (Category, bool) {
	for i, c := range s.categories {
		if c.ID == id {
			s.categories = append(s.categories[:i], s.categories[i+1:]...)
			return c, true
		}
	}
	return Category{}, false
}

// Get returns the category with id.
func (s *Store) Get(id string) (Category, bool) {
	for _, c := range s.categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// FindByName returns every category named name (exact match).
func (s *Store) FindByName(name string) []Category {
	var out []Category
	for _, c := range s.categories {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// All returns a copy of the categories in insertion order.
func (s *Store) All() []Category {
	out := make([]Category, len(s.categories))
	copy(out, s.categories)
	return out
}

// Len returns the number of categories.
func (s *Store) Len() int {
	return len(s.categories)
}

// Restore replaces the list with persisted records.
func (s *Store) Restore(categories []Category) {
	s.categories = make([]Category, len(categories))
	copy(s.categories, categories)
}
