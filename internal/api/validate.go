package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

// validateInput runs struct validation on a request or document and maps
// the first failing field to an *ErrValidation with a user-facing reason.
func validateInput(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ErrValidation{Reason: err.Error()}
	}

	fe := fieldErrs[0]
	return &ErrValidation{Field: fe.Field(), Reason: validationReason(fe)}
}

func validationReason(fe validator.FieldError) string {
	switch fe.Field() {
	case "Content":
		return "Content is empty. Upload a document first."
	case "NumQuestions":
		return fmt.Sprintf("Number of questions must be between 1 and %d.", MaxNumQuestions)
	case "Name":
		return "File name is missing."
	case "Size":
		size, _ := fe.Value().(int64)
		return fmt.Sprintf("File too large. Maximum size is 50MB. Your file is %.2fMB.", float64(size)/1024/1024)
	case "MIMEType":
		return fmt.Sprintf("Unsupported file type %q. Please upload a PDF or Word document.", fe.Value())
	case "Open":
		return "File cannot be read."
	}
	return fmt.Sprintf("%s failed %q validation", fe.Field(), fe.Tag())
}

// schemaCache caches compiled JSON schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// decode validates raw against schema and unmarshals it into out.
func decode[T any](op string, schema *Schema, raw []byte, out *T) error {
	if err := validateResponse(op, schema, raw); err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &ErrInvalidResponse{Op: op, Content: raw, Err: err}
	}
	return nil
}

// validateResponse validates raw JSON against the given Schema.
func validateResponse(op string, schema *Schema, raw []byte) error {
	if schema == nil {
		return nil
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return &ErrInvalidResponse{
			Op:      op,
			Content: raw,
			Err:     fmt.Errorf("invalid JSON: %w", err),
		}
	}

	compiled, err := getCompiledSchema(schema)
	if err != nil {
		return &ErrInvalidResponse{
			Op:      op,
			Content: raw,
			Err:     fmt.Errorf("compile schema %q: %w", schema.Name, err),
		}
	}

	if err := compiled.Validate(parsed); err != nil {
		return &ErrInvalidResponse{
			Op:      op,
			Content: raw,
			Err:     fmt.Errorf("schema validation failed: %w", err),
		}
	}
	return nil
}

// getCompiledSchema returns a cached compiled schema or compiles and caches it.
func getCompiledSchema(schema *Schema) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(schema.Name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The compiler wants a decoded JSON value, not a Go map with typed
	// slices, so round-trip the definition.
	defBytes, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	schemaURL := fmt.Sprintf("schema://%s.json", schema.Name)
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}

	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(schema.Name, compiled)
	return compiled, nil
}

// checkQuestions enforces what the schema cannot express: the correct
// answer must index into the options.
func checkQuestions(qs []QuizQuestion) error {
	for i, q := range qs {
		if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
			return fmt.Errorf("question %d: correctIndex %d out of range for %d options", i, q.CorrectIndex, len(q.Options))
		}
	}
	return nil
}
