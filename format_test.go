package linkvalidate

import "testing"

func TestDetectFormat_RuleSyntax(t *testing.T) {
	cases := map[string]any{
		"single rule object": map[string]any{
			"username": map[string]any{"type": "string", "required": true, "min": 3},
		},
		"rule array": map[string]any{
			"tags": []any{
				map[string]any{"type": "array", "required": true},
				map[string]any{"min": 1, "max": 5},
			},
		},
		"rule-only type token": map[string]any{
			"contact": map[string]any{"type": "email"},
		},
		"nested fields": map[string]any{
			"user": map[string]any{"type": "object", "fields": map[string]any{}},
		},
	}
	for name, schema := range cases {
		if got := DetectFormat(schema); got != FormatRules {
			t.Fatalf("%s: expected FormatRules, got %v", name, got)
		}
	}
}

func TestDetectFormat_JSONSchema(t *testing.T) {
	cases := map[string]any{
		"$schema marker": map[string]any{
			"$schema": "https://json-schema.org/draft/2020-12/schema",
		},
		"object with properties": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"username": map[string]any{"type": "string", "minLength": 3},
			},
			"required": []any{"username"},
		},
		"root scalar schema": map[string]any{
			"type": "string", "minLength": 3,
		},
		"bare object schema": map[string]any{
			"type": "object",
		},
		"object with required but no properties": map[string]any{
			"type": "object", "required": []any{"a"},
		},
		"non-object root": "not a schema",
	}
	for name, schema := range cases {
		if got := DetectFormat(schema); got != FormatJSONSchema {
			t.Fatalf("%s: expected FormatJSONSchema, got %v", name, got)
		}
	}
}

// Ambiguous inputs read validly under both syntaxes; the documented default
// favors rule syntax.
func TestDetectFormat_AmbiguousDefaultsToRules(t *testing.T) {
	schema := map[string]any{
		"username": map[string]any{"pattern": "^[a-z]+$"},
	}
	if got := DetectFormat(schema); got != FormatRules {
		t.Fatalf("expected ambiguous input to default to FormatRules, got %v", got)
	}
}
