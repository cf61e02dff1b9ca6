package rules

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/Havardbaban/buildcarbon-sub000/constants"
)

// BuildTableJSONSchema returns the JSON-Schema (draft 2020-12 subset) that an
// externally supplied rule table must satisfy before it is trusted.
func BuildTableJSONSchema() map[string]any {
	unitEnum := make([]any, 0, 5)
	for _, u := range constants.AllUnits() {
		unitEnum = append(unitEnum, string(u))
	}
	categoryEnum := make([]any, 0, 9)
	for _, c := range constants.AsStringSlice() {
		categoryEnum = append(categoryEnum, c)
	}

	factor := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"id":              map[string]any{"type": "string", "minLength": 1},
			"name":            map[string]any{"type": "string"},
			"unit":            map[string]any{"type": "string", "enum": unitEnum},
			"kg_co2_per_unit": decimalProp(),
			"source":          map[string]any{"type": "string"},
		},
		"required": []any{"id", "unit", "kg_co2_per_unit"},
	}

	categoryRule := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"category": map[string]any{"type": "string", "enum": categoryEnum},
			"scope":    map[string]any{"type": "integer", "minimum": 1, "maximum": 3},
			"keywords": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items":    map[string]any{"type": "string", "minLength": 1},
			},
			"factor": factor,
		},
		"required": []any{"category", "scope", "keywords"},
	}

	unitAlias := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"unit":       map[string]any{"type": "string", "enum": unitEnum},
			"multiplier": decimalProp(),
		},
		"required": []any{"unit", "multiplier"},
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"categories": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items":    categoryRule,
			},
			"units": map[string]any{
				"type":                 "object",
				"additionalProperties": unitAlias,
			},
			"piece_mass_kg": decimalProp(),
			"piece_mass_categories": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string", "enum": categoryEnum},
			},
		},
		"required": []any{"categories", "units"},
	}
}

func decimalProp() map[string]any {
	// decimals travel as quoted strings; plain numbers are also accepted
	return map[string]any{
		"type":    []any{"string", "number"},
		"pattern": `^-?\d+(\.\d+)?$`,
	}
}

// ValidateJSONAgainstSchema validates "data" against "schemaMap".
func ValidateJSONAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}
