// Package schema builds and validates the JSON Schemas that describe tool
// parameters. Schemas are declared with the small builder functions and
// compiled once at init time; the compiled form validates tool invocation
// arguments at runtime.
//
//	spec := schema.Object(map[string]*schema.Property{
//	    "summary": schema.String("Concise summary of the key points"),
//	}, "summary")
package schema

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema pairs the raw map representation (serialized into prompts and tool
// specifications) with a compiled validator.
type Schema struct {
	raw      map[string]any
	compiled *jsonschema.Schema
}

// Raw returns the underlying map[string]any representation.
func (s *Schema) Raw() map[string]any {
	if s == nil {
		return nil
	}
	return s.raw
}

// Validate validates the given arguments against the schema. Returns nil if
// valid, or a ValidationError describing the failure.
func (s *Schema) Validate(args map[string]any) error {
	if s == nil || s.compiled == nil {
		return nil
	}
	if err := s.compiled.Validate(args); err != nil {
		return &ValidationError{Err: err}
	}
	return nil
}

// ValidationError wraps a JSON Schema validation error.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("schema validation failed: %v", e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Compile compiles a raw schema map into a Schema with a compiled validator.
func Compile(raw map[string]any) (*Schema, error) {
	if raw == nil {
		return nil, nil
	}

	encoded, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}

	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(string(encoded)))
	if err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource("schema.json", doc); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}
	compiled, err := c.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}

	return &Schema{raw: raw, compiled: compiled}, nil
}

// MustCompile is like Compile but panics on error. Use for schemas defined
// at init time.
func MustCompile(raw map[string]any) *Schema {
	s, err := Compile(raw)
	if err != nil {
		panic(err)
	}
	return s
}

// -----------------------------------------------------------------------------
// Builders
// -----------------------------------------------------------------------------

// Object creates an object schema with the given properties. Property names
// passed as variadic arguments are marked required.
func Object(properties map[string]*Property, required ...string) map[string]any {
	props := make(map[string]any, len(properties))
	for name, prop := range properties {
		props[name] = prop.build()
	}

	raw := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		raw["required"] = required
	}

	return raw
}

// Property is a single property in an object schema.
type Property struct {
	typ         string
	description string
	items       map[string]any
}

func (p *Property) build() map[string]any {
	m := map[string]any{}
	if p.typ != "" {
		m["type"] = p.typ
	}
	if p.description != "" {
		m["description"] = p.description
	}
	if p.items != nil {
		m["items"] = p.items
	}
	return m
}

// String creates a string property.
func String(description string) *Property {
	return &Property{typ: "string", description: description}
}

// StringArray creates an array-of-strings property.
func StringArray(description string) *Property {
	return &Property{
		typ:         "array",
		description: description,
		items:       map[string]any{"type": "string"},
	}
}

// Map creates an untyped object property (any keys, any values).
func Map(description string) *Property {
	return &Property{typ: "object", description: description}
}
