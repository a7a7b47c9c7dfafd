// Package schemas provides JSON Schema validation for LLM-produced
// payloads before they are decoded into typed records.
package schemas

import (
	"embed"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// Schema file names understood by Validate.
const (
	JobRecord    = "job_record.schema.json"
	ResumeRecord = "resume_record.schema.json"
	AIAssessment = "ai_assessment.schema.json"
)

//go:embed *.schema.json
var schemaFiles embed.FS

// ValidationError represents a schema validation failure with field paths.
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field.
type FieldError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "schema validation failed"
	}
	first := e.Errors[0]
	if len(e.Errors) == 1 {
		return fmt.Sprintf("schema validation failed: %s: %s", first.Field, first.Message)
	}
	return fmt.Sprintf("schema validation failed: %s: %s (and %d more)", first.Field, first.Message, len(e.Errors)-1)
}

// Validate checks a JSON document against the named embedded schema.
// Returns a *ValidationError when the document does not conform, or a
// plain error when the schema or document cannot be loaded at all.
func Validate(schemaName string, document []byte) error {
	schemaBytes, err := schemaFiles.ReadFile(schemaName)
	if err != nil {
		return fmt.Errorf("failed to load schema %s: %w", schemaName, err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaBytes),
		gojsonschema.NewBytesLoader(document),
	)
	if err != nil {
		return fmt.Errorf("failed to validate against %s: %w", schemaName, err)
	}

	if result.Valid() {
		return nil
	}

	verr := &ValidationError{}
	for _, desc := range result.Errors() {
		verr.Errors = append(verr.Errors, FieldError{
			Field:   desc.Field(),
			Message: desc.Description(),
		})
	}
	return verr
}
