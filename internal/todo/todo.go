// Package todo holds the task record and the in-memory store that owns them.
package todo

import (
	"strings"
	"time"
)

// TitleMaxLen is the number of characters kept when a title is derived from text.
const TitleMaxLen = 30

// Todo is a single task record.
type Todo struct {
	ID        string     `json:"id" yaml:"id"`
	Title     string     `json:"title" yaml:"title"`
	Text      string     `json:"text" yaml:"text"`
	Completed bool       `json:"completed" yaml:"completed"`
	DueDate   *time.Time `json:"dueDate,omitempty" yaml:"dueDate,omitempty"`
	CreatedAt time.Time  `json:"createdAt" yaml:"createdAt"`
	Category  string     `json:"category,omitempty" yaml:"category,omitempty"`
	Color     string     `json:"color,omitempty" yaml:"color,omitempty"`
}

// NewTodo carries the fields a caller supplies when creating a task.
type NewTodo struct {
	Title    string
	Text     string
	DueDate  *time.Time
	Category string
	Color    string
}

// Patch is a partial update. Nil fields are left untouched.
// ID and CreatedAt are write-once and have no patch field.
type Patch struct {
	Title     *string
	Text      *string
	Completed *bool
	DueDate   *time.Time
	Category  *string
	Color     *string

	// ClearDueDate removes the due date. It wins over DueDate.
	ClearDueDate bool
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Title == nil && p.Text == nil && p.Completed == nil &&
		p.DueDate == nil && p.Category == nil && p.Color == nil && !p.ClearDueDate
}

// DeriveTitle returns title unchanged when it is not blank, otherwise the
// trimmed text, shortened to TitleMaxLen characters plus "..." when longer.
func DeriveTitle(title, text string) string {
	if strings.TrimSpace(title) != "" {
		return title
	}
	text = strings.TrimSpace(text)
	runes := []rune(text)
	if len(runes) > TitleMaxLen {
		return string(runes[:TitleMaxLen]) + "..."
	}
	return text
}

// IsBlank reports whether s is empty or whitespace only.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func (t Todo) clone() Todo {
	if t.DueDate != nil {
		d := *t.DueDate
		t.DueDate = &d
	}
	return t
}
