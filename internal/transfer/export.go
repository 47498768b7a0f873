// Package transfer exports todos to a JSON document and imports them back.
package transfer

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"taskpad/internal/todo"
)

// DefaultIndent is the indent width of exported documents.
const DefaultIndent = 2

// Format selects the export encoding.
type Format string

const (
	// FormatJSON is the interchange format accepted by Parse.
	FormatJSON Format = "json"
	// FormatYAML is a read-only rendering for humans.
	FormatYAML Format = "yaml"
)

// ParseFormat converts s to a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown export format: %s", s)
	}
}

// Options controls Export.
type Options struct {
	Format Format
	Indent int
}

// Export writes todos, in the given order, as a single document.
func Export(w io.Writer, todos []todo.Todo, opts Options) error {
	if todos == nil {
		todos = []todo.Todo{}
	}
	indent := opts.Indent
	if indent <= 0 {
		indent = DefaultIndent
	}

	switch opts.Format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(indent)
		if err := enc.Encode(todos); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case FormatJSON, "":
		data, err := json.MarshalIndent(todos, "", strings.Repeat(" ", indent))
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		data = append(data, '\n')
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("write export: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown export format: %s", opts.Format)
	}
}
