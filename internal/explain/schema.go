package explain

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ExplanationJSONSchema constrains the model's output to a single
// explanation string. Passed to the API as guidance and enforced
// locally before anything is trusted.
func ExplanationJSONSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"explanation": map[string]any{"type": "string", "minLength": 1},
		},
		"required": []string{"explanation"},
	}
}

// ValidateAgainstSchema checks a raw JSON document against a schema
// expressed as a generic map.
func ValidateAgainstSchema(schema map[string]any, raw []byte) error {
	sb, err := json.Marshal(schema)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiled, err := jsonschema.CompileString("explanation.json", string(sb))
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	return compiled.Validate(doc)
}
