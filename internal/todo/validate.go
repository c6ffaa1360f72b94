package todo

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nibzard/todotxt-go/internal/utils"
)

//go:embed task.schema.json
var defaultSchema []byte

const defaultSchemaURL = "https://github.com/nibzard/todotxt-go/task.schema.json"

// DefaultSchema returns the embedded JSON Schema describing a decoded task.
func DefaultSchema() []byte {
	out := make([]byte, len(defaultSchema))
	copy(out, defaultSchema)
	return out
}

// ValidationError represents a validation error with context.
type ValidationError struct {
	Line int    // 1-based line number, 0 when unknown
	Path string // JSON path to the error location inside the task
	Err  error  // Underlying error
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	if e.Line > 0 {
		fmt.Fprintf(&b, "line %d: ", e.Line)
	}
	if e.Path != "" {
		fmt.Fprintf(&b, "%s: ", e.Path)
	}
	b.WriteString(e.Err.Error())
	return b.String()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidationOptions controls validation behavior.
type ValidationOptions struct {
	// SchemaPath is the path to a JSON Schema file applied to every task.
	// If empty, the embedded task schema is used.
	SchemaPath string
	// Minimal skips JSON Schema validation entirely.
	Minimal bool
}

// ValidationResult contains validation results.
type ValidationResult struct {
	Valid      bool
	Errors     []error
	Warnings   []string
	UsedSchema bool // true if JSON Schema validation was performed
}

// Validate checks every line of the file. Lines that failed to decode are
// errors; decoded tasks are checked against a JSON Schema when one can be
// compiled and against the record invariants otherwise.
func (f *File) Validate(opts ValidationOptions) *ValidationResult {
	result := &ValidationResult{
		Valid:    true,
		Errors:   make([]error, 0),
		Warnings: make([]string, 0),
	}

	for _, pe := range f.Errors {
		result.Valid = false
		result.Errors = append(result.Errors, &ValidationError{
			Line: pe.Line,
			Err:  fmt.Errorf("%w: %q", pe.Err, pe.Raw),
		})
	}

	f.warnEmptyTags(result)

	if !opts.Minimal {
		schema, warning := compileSchema(opts.SchemaPath)
		if schema != nil {
			result.UsedSchema = true
			f.validateWithSchema(schema, result)
			return result
		}
		result.Warnings = append(result.Warnings, warning)
		result.Warnings = append(result.Warnings, "JSON Schema validation not available, using minimal checks")
	}

	f.validateMinimal(result)
	return result
}

// validateMinimal checks the record invariants without JSON Schema.
func (f *File) validateMinimal(result *ValidationResult) {
	for i, task := range f.Tasks {
		if err := validateTaskMinimal(task); err != nil {
			err.Line = f.lineOf(i)
			result.Valid = false
			result.Errors = append(result.Errors, err)
		}
	}
}

// validateTaskMinimal checks one task against the invariants Parse guarantees.
func validateTaskMinimal(task *Task) *ValidationError {
	if task.Completed && task.CompletionDate == nil {
		return &ValidationError{
			Path: "completion_date",
			Err:  ErrMissingCompletionDate,
		}
	}

	if task.Priority != "" {
		if task.Completed {
			return &ValidationError{
				Path: "priority",
				Err:  fmt.Errorf("completed tasks cannot have a priority"),
			}
		}
		if len(task.Priority) != 1 || !isUpperASCII(task.Priority[0]) {
			return &ValidationError{
				Path: "priority",
				Err:  fmt.Errorf("must be a single letter A-Z, got %q", task.Priority),
			}
		}
	}

	if !strings.HasSuffix(task.Raw, task.Description) {
		return &ValidationError{
			Path: "description",
			Err:  fmt.Errorf("description %q is not part of the line", task.Description),
		}
	}

	if task.Projects == nil || task.Contexts == nil || task.Tags == nil {
		return &ValidationError{
			Err: fmt.Errorf("tag collections must not be nil"),
		}
	}

	return nil
}

// warnEmptyTags reports bare "+" and "@" prefixes, which decode as empty tags.
func (f *File) warnEmptyTags(result *ValidationResult) {
	for i, task := range f.Tasks {
		for _, p := range task.Projects {
			if p == "" {
				result.Warnings = append(result.Warnings, fmt.Sprintf("line %d: empty project tag", f.lineOf(i)))
			}
		}
		for _, c := range task.Contexts {
			if c == "" {
				result.Warnings = append(result.Warnings, fmt.Sprintf("line %d: empty context tag", f.lineOf(i)))
			}
		}
	}
}

// compileSchema compiles the schema at path, or the embedded schema when path
// is empty. It returns a warning instead of the schema when compilation fails.
func compileSchema(path string) (*jsonschema.Schema, string) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	compiler.AssertFormat = true

	if path == "" {
		if err := compiler.AddResource(defaultSchemaURL, bytes.NewReader(defaultSchema)); err != nil {
			return nil, fmt.Sprintf("invalid embedded schema: %v", err)
		}
		schema, err := compiler.Compile(defaultSchemaURL)
		if err != nil {
			return nil, fmt.Sprintf("invalid embedded schema: %v", err)
		}
		return schema, ""
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Sprintf("invalid schema path: %v", err)
	}

	if _, err := os.Stat(absPath); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Sprintf("schema file not found: %s", absPath)
		}
		return nil, fmt.Sprintf("failed to read schema file: %v", err)
	}

	schema, err := compiler.Compile(absPath)
	if err != nil {
		return nil, fmt.Sprintf("invalid schema file: %v", err)
	}
	return schema, ""
}

// validateWithSchema validates each task's JSON form against schema.
func (f *File) validateWithSchema(schema *jsonschema.Schema, result *ValidationResult) {
	for i, task := range f.Tasks {
		line := f.lineOf(i)

		doc, err := taskDocument(task)
		if err != nil {
			result.Valid = false
			result.Errors = append(result.Errors, &ValidationError{
				Line: line,
				Err:  fmt.Errorf("failed to encode task for validation: %w", err),
			})
			continue
		}

		if err := schema.Validate(doc); err != nil {
			result.Valid = false
			appendSchemaErrors(result, line, err)
		}
	}
}

// taskDocument converts a task into the generic form the validator expects.
func taskDocument(task *Task) (interface{}, error) {
	data, err := json.Marshal(task)
	if err != nil {
		return nil, err
	}
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func appendSchemaErrors(result *ValidationResult, line int, err error) {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		result.Errors = append(result.Errors, &ValidationError{Line: line, Err: err})
		return
	}

	collectSchemaErrors(result, line, ve)
}

func collectSchemaErrors(result *ValidationResult, line int, err *jsonschema.ValidationError) {
	if err == nil {
		return
	}

	if len(err.Causes) == 0 {
		result.Errors = append(result.Errors, &ValidationError{
			Line: line,
			Path: utils.JSONPointerToPath(err.InstanceLocation),
			Err:  fmt.Errorf("%s", err.Message),
		})
		return
	}

	for _, cause := range err.Causes {
		collectSchemaErrors(result, line, cause)
	}
}

// lineOf returns the line number of the i-th task, or 0 when unknown.
func (f *File) lineOf(i int) int {
	if i < len(f.Lines) {
		return f.Lines[i]
	}
	return 0
}
