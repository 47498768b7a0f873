package todo

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 3, 14, 9, 26, 53, 589_793_238, time.UTC)

// newTestStore returns a store with a fixed clock and sequential ids.
func newTestStore() *Store {
	n := 0
	return NewStore(
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		}),
	)
}

func TestStore_AddDefaults(t *testing.T) {
	s := NewStore()
	before := time.Now()

	id, ok := s.Add(NewTodo{Title: "Groceries", Text: "Buy milk"})
	require.True(t, ok)
	require.NotEmpty(t, id)

	got, found := s.Get(id)
	require.True(t, found)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "Groceries", got.Title)
	assert.Equal(t, "Buy milk", got.Text)
	assert.False(t, got.Completed)
	assert.Nil(t, got.DueDate)
	assert.False(t, got.CreatedAt.After(time.Now()), "createdAt must not be in the future")
	assert.False(t, got.CreatedAt.Before(before.Truncate(time.Millisecond)))
	assert.Equal(t, time.UTC, got.CreatedAt.Location())
}

func TestStore_AddUniqueIDs(t *testing.T) {
	s := NewStore()
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		id, ok := s.Add(NewTodo{Text: "task"})
		require.True(t, ok)
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestStore_AddBlankTextRejected(t *testing.T) {
	s := newTestStore()
	s.Add(NewTodo{Text: "existing"})

	for _, text := range []string{"", "   ", "\n\t"} {
		id, ok := s.Add(NewTodo{Title: "has title", Text: text})
		assert.False(t, ok, "text %q should be rejected", text)
		assert.Empty(t, id)
	}
	assert.Equal(t, 1, s.Len())
}

func TestStore_AddDerivesTitle(t *testing.T) {
	s := newTestStore()

	id, ok := s.Add(NewTodo{Title: "", Text: "Buy milk"})
	require.True(t, ok)
	got, _ := s.Get(id)
	assert.Equal(t, "Buy milk", got.Title)

	long := "Call the plumber about the kitchen sink leak before Friday"
	id, ok = s.Add(NewTodo{Title: "  ", Text: long})
	require.True(t, ok)
	got, _ = s.Get(id)
	assert.Equal(t, "Call the plumber about the kit...", got.Title)
	assert.Equal(t, long, got.Text, "text is stored as given")
}

func TestStore_AddPreservesOrderAndFields(t *testing.T) {
	s := newTestStore()
	due := time.Date(2025, 4, 1, 18, 0, 0, 0, time.UTC)

	s.Add(NewTodo{Text: "first"})
	s.Add(NewTodo{Text: "second", DueDate: &due, Category: "Work", Color: "#FFB6B9"})
	s.Add(NewTodo{Text: "third"})

	all := s.All()
	require.Len(t, all, 3)
	assert.Equal(t, []string{"id-1", "id-2", "id-3"}, []string{all[0].ID, all[1].ID, all[2].ID})
	assert.Equal(t, "Work", all[1].Category)
	assert.Equal(t, "#FFB6B9", all[1].Color)
	require.NotNil(t, all[1].DueDate)
	assert.True(t, due.Equal(*all[1].DueDate))
	assert.Equal(t, fixedNow.Truncate(time.Millisecond), all[1].CreatedAt)

	// mutating the caller's due date must not leak into the store
	due = due.Add(time.Hour)
	got, _ := s.Get("id-2")
	assert.Equal(t, 18, got.DueDate.Hour())
}

func TestStore_ToggleIsItsOwnInverse(t *testing.T) {
	s := newTestStore()
	id, _ := s.Add(NewTodo{Text: "flip me"})

	require.True(t, s.Toggle(id))
	got, _ := s.Get(id)
	assert.True(t, got.Completed)

	require.True(t, s.Toggle(id))
	got, _ = s.Get(id)
	assert.False(t, got.Completed)
}

func TestStore_ToggleUnknownIsNoop(t *testing.T) {
	s := newTestStore()
	s.Add(NewTodo{Text: "a"})
	before := s.All()

	assert.False(t, s.Toggle("missing"))
	assert.Equal(t, before, s.All())
}

func TestStore_Remove(t *testing.T) {
	s := newTestStore()
	s.Add(NewTodo{Text: "a"})
	s.Add(NewTodo{Text: "b"})
	s.Add(NewTodo{Text: "c"})

	assert.True(t, s.Remove("id-2"))
	assert.False(t, s.Remove("id-2"))
	assert.False(t, s.Has("id-2"))

	all := s.All()
	require.Len(t, all, 2)
	assert.Equal(t, "a", all[0].Text)
	assert.Equal(t, "c", all[1].Text)
}

func TestStore_RemoveByCategory(t *testing.T) {
	s := newTestStore()
	s.Add(NewTodo{Text: "report", Category: "Work"})
	s.Add(NewTodo{Text: "milk", Category: "Home"})
	s.Add(NewTodo{Text: "deck", Category: "Work"})
	s.Add(NewTodo{Text: "lower", Category: "work"})
	s.Add(NewTodo{Text: "none"})

	assert.Equal(t, 2, s.RemoveByCategory("Work"))

	all := s.All()
	require.Len(t, all, 3)
	for _, todo := range all {
		assert.NotEqual(t, "Work", todo.Category)
	}
	assert.Equal(t, "work", all[1].Category, "matching is case-sensitive")
}

func TestStore_RemoveByCategoryIdempotent(t *testing.T) {
	s := newTestStore()
	s.Add(NewTodo{Text: "report", Category: "Work"})
	s.Add(NewTodo{Text: "milk", Category: "Home"})

	s.RemoveByCategory("Work")
	once := s.All()

	assert.Equal(t, 0, s.RemoveByCategory("Work"))
	assert.Equal(t, once, s.All())
}

func TestStore_RemoveAll(t *testing.T) {
	s := newTestStore()
	s.Add(NewTodo{Text: "a"})
	s.Add(NewTodo{Text: "b"})

	assert.Equal(t, 2, s.RemoveAll())
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.All())
	assert.Equal(t, 0, s.RemoveAll())
}

func TestStore_EditTitleOnly(t *testing.T) {
	s := newTestStore()
	due := time.Date(2025, 5, 1, 8, 30, 0, 0, time.UTC)
	id, _ := s.Add(NewTodo{Title: "Old", Text: "body", DueDate: &due, Category: "Work", Color: "#B5EAD7"})
	s.Toggle(id)
	before, _ := s.Get(id)

	x := "X"
	require.True(t, s.Edit(id, Patch{Title: &x}))

	after, _ := s.Get(id)
	assert.Equal(t, "X", after.Title)
	before.Title = "X"
	assert.Equal(t, before, after)
}

func TestStore_EditFields(t *testing.T) {
	s := newTestStore()
	due := time.Date(2025, 5, 1, 8, 30, 0, 0, time.UTC)
	id, _ := s.Add(NewTodo{Text: "body", DueDate: &due, Category: "Work"})

	text := "new body"
	done := true
	cat := ""
	color := "#C7CEEA"
	require.True(t, s.Edit(id, Patch{Text: &text, Completed: &done, Category: &cat, Color: &color, ClearDueDate: true}))

	got, _ := s.Get(id)
	assert.Equal(t, "new body", got.Text)
	assert.Equal(t, "body", got.Title, "title is not re-derived on edit")
	assert.True(t, got.Completed)
	assert.Empty(t, got.Category)
	assert.Equal(t, "#C7CEEA", got.Color)
	assert.Nil(t, got.DueDate)
	assert.Equal(t, "id-1", got.ID)
	assert.Equal(t, fixedNow.Truncate(time.Millisecond), got.CreatedAt)
}

func TestStore_EditUnknownIsNoop(t *testing.T) {
	s := newTestStore()
	s.Add(NewTodo{Text: "a"})
	before := s.All()

	x := "X"
	assert.False(t, s.Edit("missing", Patch{Title: &x}))
	assert.Equal(t, before, s.All())
}

func TestStore_AllReturnsCopies(t *testing.T) {
	s := newTestStore()
	due := time.Date(2025, 5, 1, 8, 30, 0, 0, time.UTC)
	s.Add(NewTodo{Text: "a", DueDate: &due})

	all := s.All()
	all[0].Text = "mutated"
	*all[0].DueDate = all[0].DueDate.Add(24 * time.Hour)

	got, _ := s.Get("id-1")
	assert.Equal(t, "a", got.Text)
	assert.Equal(t, 1, got.DueDate.Day())
}

func TestStore_ByCategory(t *testing.T) {
	s := newTestStore()
	s.Add(NewTodo{Text: "a", Category: "Work"})
	s.Add(NewTodo{Text: "b", Category: "Home"})
	s.Add(NewTodo{Text: "c", Category: "Work"})

	work := s.ByCategory("Work")
	require.Len(t, work, 2)
	assert.Equal(t, "a", work[0].Text)
	assert.Equal(t, "c", work[1].Text)

	assert.Len(t, s.ByCategory(""), 3)
	assert.Empty(t, s.ByCategory("Garden"))
}

func TestStore_Restore(t *testing.T) {
	s := newTestStore()
	created := time.Date(2024, 12, 24, 20, 0, 0, 0, time.UTC)
	s.Restore([]Todo{
		{ID: "kept-1", Title: "t", Text: "x", CreatedAt: created, Completed: true},
	})

	got, ok := s.Get("kept-1")
	require.True(t, ok)
	assert.Equal(t, created, got.CreatedAt)
	assert.True(t, got.Completed)

	id, _ := s.Add(NewTodo{Text: "after"})
	assert.Equal(t, "id-1", id)
	assert.Equal(t, 2, s.Len())
}

func TestDeriveTitle(t *testing.T) {
	tests := []struct {
		title, text, want string
	}{
		{"Keep", "anything", "Keep"},
		{"", "  padded  ", "padded"},
		{"", "exactly thirty characters long", "exactly thirty characters long"},
		{"", "exactly thirty characters long!", "exactly thirty characters long..."},
		{"", "éééééééééééééééééééééééééééééééé", "éééééééééééééééééééééééééééééé..."},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DeriveTitle(tt.title, tt.text), "DeriveTitle(%q, %q)", tt.title, tt.text)
	}
}

func TestPatch_IsEmpty(t *testing.T) {
	assert.True(t, Patch{}.IsEmpty())
	x := "x"
	assert.False(t, Patch{Color: &x}.IsEmpty())
	assert.False(t, Patch{ClearDueDate: true}.IsEmpty())
}
