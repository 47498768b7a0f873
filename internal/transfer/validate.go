package transfer

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed export.schema.json
var exportSchema []byte

const exportSchemaURL = "taskpad-export.schema.json"

// ValidationError is a single schema violation.
type ValidationError struct {
	Path string // document path, e.g. [0].text
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Validate strictly checks an export document against the embedded schema.
// Import does not require this; Parse is lenient.
// Returns an error wrapping ErrMalformed for invalid JSON, or the joined
// *ValidationError values for schema violations.
func Validate(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read document: %w", err)
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	schema, err := compileSchema()
	if err != nil {
		return err
	}

	if err := schema.Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if !errors.As(err, &ve) {
			return err
		}
		var errs []error
		collectSchemaErrors(&errs, ve)
		return errors.Join(errs...)
	}
	return nil
}

func compileSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	if err := compiler.AddResource(exportSchemaURL, bytes.NewReader(exportSchema)); err != nil {
		return nil, fmt.Errorf("load export schema: %w", err)
	}
	schema, err := compiler.Compile(exportSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile export schema: %w", err)
	}
	return schema, nil
}

func collectSchemaErrors(errs *[]error, ve *jsonschema.ValidationError) {
	if len(ve.Causes) == 0 {
		*errs = append(*errs, &ValidationError{
			Path: pointerToPath(ve.InstanceLocation),
			Err:  errors.New(ve.Message),
		})
		return
	}
	for _, cause := range ve.Causes {
		collectSchemaErrors(errs, cause)
	}
}

// pointerToPath turns a JSON pointer such as /0/text into [0].text.
func pointerToPath(pointer string) string {
	pointer = strings.TrimPrefix(pointer, "/")
	if pointer == "" {
		return ""
	}
	var b strings.Builder
	for _, part := range strings.Split(pointer, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if isIndex(part) {
			b.WriteString("[" + part + "]")
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}

func isIndex(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
