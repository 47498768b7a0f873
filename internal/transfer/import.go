package transfer

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"taskpad/internal/todo"
)

// ErrMalformed is returned when an import document is not a JSON array of objects.
var ErrMalformed = errors.New("malformed import document")

// Strategy selects how imported records meet the existing collection.
type Strategy int

const (
	// Merge adds records whose id is not already present.
	Merge Strategy = iota
	// Replace clears the collection first, then adds every record.
	Replace
)

func (s Strategy) String() string {
	switch s {
	case Merge:
		return "merge"
	case Replace:
		return "replace"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// Record is a leniently parsed entry of an import document. Missing keys
// stay zero. Dates are kept as text and parsed on use.
type Record struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	DueDate   string `json:"dueDate"`
	CreatedAt string `json:"createdAt"`
	Category  string `json:"category"`
	Color     string `json:"color"`
}

// Due returns the parsed due date, or nil when absent or unparseable.
func (r Record) Due() *time.Time {
	if r.DueDate == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, r.DueDate)
	if err != nil {
		return nil
	}
	return &t
}

// NewTodo returns the creation input for r. The record's id, createdAt and
// completed flag are not carried over: imported items are new creations.
func (r Record) NewTodo() todo.NewTodo {
	return todo.NewTodo{
		Title:    r.Title,
		Text:     r.Text,
		DueDate:  r.Due(),
		Category: r.Category,
		Color:    r.Color,
	}
}

// Parse reads a JSON array of todo records. On any parse failure it returns
// an error wrapping ErrMalformed and no records. Within a record a value of
// the wrong type is treated as absent; numeric ids are kept as their text
// and numeric dates as epoch milliseconds.
func Parse(r io.Reader) ([]Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read import document: %w", err)
	}

	var raw []map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if raw == nil {
		// A literal null is not an array.
		return nil, fmt.Errorf("%w: expected a JSON array", ErrMalformed)
	}

	records := make([]Record, len(raw))
	for i, fields := range raw {
		records[i] = Record{
			ID:        idField(fields["id"]),
			Title:     stringField(fields["title"]),
			Text:      stringField(fields["text"]),
			Completed: boolField(fields["completed"]),
			DueDate:   dateField(fields["dueDate"]),
			CreatedAt: dateField(fields["createdAt"]),
			Category:  stringField(fields["category"]),
			Color:     stringField(fields["color"]),
		}
	}
	return records, nil
}

func stringField(v json.RawMessage) string {
	var s string
	if json.Unmarshal(v, &s) != nil {
		return ""
	}
	return s
}

func boolField(v json.RawMessage) bool {
	var b bool
	if json.Unmarshal(v, &b) != nil {
		return false
	}
	return b
}

func numberField(v json.RawMessage) (json.Number, bool) {
	var n json.Number
	if json.Unmarshal(v, &n) != nil || n == "" {
		return "", false
	}
	return n, true
}

func idField(v json.RawMessage) string {
	if n, ok := numberField(v); ok {
		return n.String()
	}
	return stringField(v)
}

func dateField(v json.RawMessage) string {
	if n, ok := numberField(v); ok {
		ms, err := n.Int64()
		if err != nil {
			return ""
		}
		return time.UnixMilli(ms).UTC().Format(time.RFC3339Nano)
	}
	return stringField(v)
}

// Target is the subset of todo.Store that Apply mutates.
type Target interface {
	Has(id string) bool
	Add(in todo.NewTodo) (string, bool)
	RemoveAll() int
}

// Result summarizes an Apply call.
type Result struct {
	Added      int
	Duplicates int // merge only: records skipped because their id exists
	Rejected   int // records refused by the store's own validation
	Removed    int // replace only: records cleared before adding
}

// Apply feeds records into target using strategy. Records are applied one
// by one in document order; a rejected record does not undo earlier ones.
func Apply(target Target, records []Record, strategy Strategy) Result {
	var res Result

	if strategy == Replace {
		res.Removed = target.RemoveAll()
	}

	for _, rec := range records {
		if strategy == Merge && rec.ID != "" && target.Has(rec.ID) {
			res.Duplicates++
			continue
		}
		if _, ok := target.Add(rec.NewTodo()); !ok {
			res.Rejected++
			continue
		}
		res.Added++
	}
	return res
}
