// Package schema validates collaborator payloads and slot templates
// against embedded JSON Schemas. Validation happens at the loading
// boundary; the resolution core assumes validated inputs.
package schema

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/extraction.schema.json
var extractionSchemaJSON string

//go:embed schemas/template.schema.json
var templateSchemaJSON string

var (
	extractionSchema = mustCompile("extraction.schema.json", extractionSchemaJSON)
	templateSchema   = mustCompile("template.schema.json", templateSchemaJSON)
)

func mustCompile(name, src string) *jsonschema.Schema {
	c := jsonschema.NewCompiler()
	if err := c.AddResource(name, strings.NewReader(src)); err != nil {
		panic(fmt.Sprintf("schema %s: %v", name, err))
	}
	return c.MustCompile(name)
}

// ValidateExtraction checks raw extraction payload JSON against the
// extraction schema.
func ValidateExtraction(data []byte) error {
	return validate(extractionSchema, "extraction payload", data)
}

// ValidateTemplate checks raw slot template JSON against the template
// schema. YAML templates are converted to JSON by the caller first.
func ValidateTemplate(data []byte) error {
	return validate(templateSchema, "slot template", data)
}

func validate(s *jsonschema.Schema, what string, data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("%s is not valid JSON: %w", what, err)
	}
	if err := s.Validate(v); err != nil {
		return fmt.Errorf("%s failed schema validation: %w", what, err)
	}
	return nil
}
