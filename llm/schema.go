package llm

import (
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// SchemaValidator wraps a compiled JSON Schema used to shape-check decoded
// LLM responses (prior refreshes, hybrid strategy transitions) before callers
// apply field-level enum validation. This is distinct from raw-JSON-syntax
// parsing (ExtractJSON): a payload can be syntactically valid JSON and still
// have the wrong shape, a class of error callers handle by skipping the
// offending field rather than rejecting the whole response.
type SchemaValidator struct {
	schema *jsonschema.Schema
}

// CompileSchema compiles a JSON Schema document (as a decoded map, matching
// jsonschema/v6's in-memory resource API) into a SchemaValidator.
func CompileSchema(name string, doc map[string]any) (*SchemaValidator, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, doc); err != nil {
		return nil, fmt.Errorf("llm: add schema resource: %w", err)
	}
	schema, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("llm: compile schema: %w", err)
	}
	return &SchemaValidator{schema: schema}, nil
}

// Validate checks a decoded JSON value (the output of json.Unmarshal into
// any) against the compiled schema.
func (v *SchemaValidator) Validate(value any) error {
	if err := v.schema.Validate(value); err != nil {
		return fmt.Errorf("llm: schema validation: %w", err)
	}
	return nil
}
