package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"taskpad/internal/category"
	"taskpad/internal/service"
	"taskpad/internal/todo"
)

// TaskRef represents a parsed task reference.
type TaskRef struct {
	Num int    // 1-based list number, 0 when ID is set
	ID  string // task id or id prefix
}

var (
	// ErrTaskRefRequired indicates no task reference was provided.
	ErrTaskRefRequired = errors.New("task reference required")

	// ErrAmbiguous is returned when a reference matches more than one record.
	ErrAmbiguous = errors.New("ambiguous reference")
)

// ParseTaskRef parses a task reference from args.
//
// Parsing rules:
// 1. If the first arg is all digits it is a list number
// 2. Otherwise it is a task id (or a unique id prefix)
// 3. Extra args are an error
func ParseTaskRef(args []string) (TaskRef, error) {
	if len(args) == 0 {
		return TaskRef{}, ErrTaskRefRequired
	}
	if len(args) > 1 {
		return TaskRef{}, usageErrorf("unexpected argument: %s", args[1])
	}

	ref := strings.TrimSpace(args[0])
	if ref == "" {
		return TaskRef{}, ErrTaskRefRequired
	}

	if isAllDigits(ref) {
		num, err := strconv.Atoi(ref)
		if err != nil {
			return TaskRef{}, usageErrorf("invalid task reference: %s", ref)
		}
		return TaskRef{Num: num}, nil
	}
	return TaskRef{ID: ref}, nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// findTask resolves ref against todos and returns the task with its
// 1-based list number.
func findTask(todos []todo.Todo, ref TaskRef) (todo.Todo, int, error) {
	if ref.ID == "" {
		if ref.Num < 1 || ref.Num > len(todos) {
			return todo.Todo{}, 0, usageErrorf("task number out of range: %d", ref.Num)
		}
		return todos[ref.Num-1], ref.Num, nil
	}

	match := -1
	for i, t := range todos {
		if t.ID == ref.ID {
			return t, i + 1, nil
		}
		if strings.HasPrefix(t.ID, ref.ID) {
			if match >= 0 {
				return todo.Todo{}, 0, fmt.Errorf("%w: %s", ErrAmbiguous, ref.ID)
			}
			match = i
		}
	}
	if match < 0 {
		return todo.Todo{}, 0, usageErrorf("task not found: %s", ref.ID)
	}
	return todos[match], match + 1, nil
}

// resolveTask parses args and looks the task up through svc.
func resolveTask(ctx context.Context, svc service.Service, args []string) (todo.Todo, int, error) {
	ref, err := ParseTaskRef(args)
	if err != nil {
		return todo.Todo{}, 0, err
	}
	todos, err := svc.Todos(ctx)
	if err != nil {
		return todo.Todo{}, 0, err
	}
	return findTask(todos, ref)
}

// findCategory resolves a 1-based category number or an exact name.
// A name shared by several categories is ambiguous.
func findCategory(cats []category.Category, ref string) (category.Category, error) {
	ref = strings.TrimSpace(ref)
	if isAllDigits(ref) {
		num, err := strconv.Atoi(ref)
		if err == nil && num >= 1 && num <= len(cats) {
			return cats[num-1], nil
		}
		// Fall through: a category may be named with digits.
	}

	var found []category.Category
	for _, c := range cats {
		if c.Name == ref {
			found = append(found, c)
		}
	}
	switch len(found) {
	case 0:
		return category.Category{}, usageErrorf("category not found: %s", ref)
	case 1:
		return found[0], nil
	default:
		return category.Category{}, fmt.Errorf("%w: category name %s (use its number)", ErrAmbiguous, ref)
	}
}
