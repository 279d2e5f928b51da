package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

// SchemaValidator checks content files against JSON schemas before they are decoded into Go types
type SchemaValidator interface {
	// ValidateFile picks JSON or YAML by the data file's extension
	ValidateFile(dataPath, schemaPath string) error
	ValidateBytes(data []byte, schemaPath string) error
	ValidateYAML(data []byte, schemaPath string) error
}

// Violation is one leaf failure of a schema check
type Violation struct {
	Path    string // JSON pointer into the document, "(root)" for the top
	Keyword string // e.g. "required", "properties.id.minimum"
	Message string
}

func (v Violation) String() string {
	if v.Keyword == "" {
		return fmt.Sprintf("at %s: %s", v.Path, v.Message)
	}
	return fmt.Sprintf("at %s: %s: %s", v.Path, v.Keyword, v.Message)
}

// SchemaError lists every violation found in one document
type SchemaError struct {
	Schema     string
	Violations []Violation
}

func (e *SchemaError) Error() string {
	lines := make([]string, 0, len(e.Violations)+1)
	lines = append(lines, "schema validation failed against "+e.Schema+":")
	for _, v := range e.Violations {
		lines = append(lines, "  - "+v.String())
	}
	return strings.Join(lines, "\n")
}

var messages = message.NewPrinter(language.English)

type validator struct {
	mu       sync.Mutex
	compiler *jsonschema.Compiler
	schemas  map[string]*jsonschema.Schema
}

// NewSchemaValidator creates a validator that compiles each schema once
func NewSchemaValidator() SchemaValidator {
	return &validator{
		compiler: jsonschema.NewCompiler(),
		schemas:  make(map[string]*jsonschema.Schema),
	}
}

func (v *validator) ValidateFile(dataPath, schemaPath string) error {
	data, err := os.ReadFile(dataPath)
	if err != nil {
		return fmt.Errorf("failed to read data file %s: %w", dataPath, err)
	}

	if ext := strings.ToLower(filepath.Ext(dataPath)); ext == ".yaml" || ext == ".yml" {
		return v.ValidateYAML(data, schemaPath)
	}
	return v.ValidateBytes(data, schemaPath)
}

// ValidateBytes validates a JSON document
func (v *validator) ValidateBytes(data []byte, schemaPath string) error {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to parse JSON data: %w", err)
	}
	return v.validate(doc, schemaPath)
}

// ValidateYAML validates a YAML document by way of its JSON form, so YAML and
// JSON content share one schema.
func (v *validator) ValidateYAML(data []byte, schemaPath string) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse YAML data: %w", err)
	}

	asJSON, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to convert YAML data: %w", err)
	}
	return v.ValidateBytes(asJSON, schemaPath)
}

func (v *validator) validate(doc any, schemaPath string) error {
	schema, err := v.schema(schemaPath)
	if err != nil {
		return fmt.Errorf("failed to load schema %s: %w", schemaPath, err)
	}

	err = schema.Validate(doc)
	if err == nil {
		return nil
	}

	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return fmt.Errorf("validation error: %w", err)
	}
	schemaErr := &SchemaError{Schema: schemaPath}
	flatten(verr, &schemaErr.Violations)
	return schemaErr
}

func (v *validator) schema(schemaPath string) (*jsonschema.Schema, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if schema, ok := v.schemas[schemaPath]; ok {
		return schema, nil
	}

	resolved, err := resolveSchemaPath(schemaPath)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to open schema file: %w", err)
	}
	defer f.Close()

	doc, err := jsonschema.UnmarshalJSON(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema JSON: %w", err)
	}
	if err := v.compiler.AddResource(schemaPath, doc); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}
	schema, err := v.compiler.Compile(schemaPath)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	v.schemas[schemaPath] = schema
	return schema, nil
}

// flatten keeps only the leaves of the cause tree; inner nodes just say
// "some subschema failed"
func flatten(err *jsonschema.ValidationError, out *[]Violation) {
	if len(err.Causes) > 0 {
		for _, cause := range err.Causes {
			flatten(cause, out)
		}
		return
	}

	violation := Violation{Path: "(root)", Message: "validation failed"}
	if len(err.InstanceLocation) > 0 {
		violation.Path = "/" + strings.Join(err.InstanceLocation, "/")
	}
	if err.ErrorKind != nil {
		violation.Keyword = strings.Join(err.ErrorKind.KeywordPath(), ".")
		violation.Message = err.ErrorKind.LocalizedString(messages)
	}
	*out = append(*out, violation)
}

// resolveSchemaPath finds a relative schema path from the working directory or
// any parent up to the module root, so tests run from package directories.
func resolveSchemaPath(schemaPath string) (string, error) {
	if filepath.IsAbs(schemaPath) {
		return schemaPath, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}

	for dir := cwd; ; dir = filepath.Dir(dir) {
		candidate := filepath.Join(dir, schemaPath)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil || filepath.Dir(dir) == dir {
			break
		}
	}

	return "", fmt.Errorf("schema file not found: %s (searched from %s)", schemaPath, cwd)
}
