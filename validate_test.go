package linkvalidate

import (
	"encoding/json"
	"testing"

	"github.com/reoring/linkvalidate/jsonschema"
)

func mustCompile(t *testing.T, s *jsonschema.Schema) *compiledNode {
	t.Helper()
	n, err := compileNode("", s, &simpleDiag{})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	return n
}

func TestValidate_TypeMismatchHaltsSubtreeOnly(t *testing.T) {
	n := mustCompile(t, &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"a": {Type: "string", MinLength: intp(3)},
			"b": {Type: "integer"},
		},
	})
	iss := validateNode(n, map[string]any{"a": 5, "b": "x"}, "", nil)
	if len(iss) != 2 {
		t.Fatalf("expected one issue per sibling, got %v", iss)
	}
	// sorted property order: a then b; both invalid_type, never too_short
	if iss[0].Path != "/a" || iss[0].Code != CodeInvalidType {
		t.Fatalf("first issue: %+v", iss[0])
	}
	if iss[1].Path != "/b" || iss[1].Code != CodeInvalidType {
		t.Fatalf("second issue: %+v", iss[1])
	}
}

func TestValidate_RequiredAndSiblingFailureCoOccur(t *testing.T) {
	n := mustCompile(t, &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"a": {Type: "string"},
			"b": {Type: "string", MinLength: intp(5)},
		},
		Required: []string{"a"},
	})
	iss := validateNode(n, map[string]any{"b": "hi"}, "", nil)
	if len(iss) != 2 {
		t.Fatalf("expected required + sibling issue, got %v", iss)
	}
	if iss[0].Code != CodeRequired || iss[0].Path != "/a" {
		t.Fatalf("required must come before descent: %+v", iss[0])
	}
	if iss[1].Code != CodeTooShort || iss[1].Path != "/b" {
		t.Fatalf("sibling violation: %+v", iss[1])
	}
}

func TestValidate_InclusiveBounds(t *testing.T) {
	n := mustCompile(t, &jsonschema.Schema{Type: "number", Minimum: floatp(1), Maximum: floatp(10)})
	for _, v := range []any{1, 10, json.Number("1"), 5.5} {
		if iss := validateNode(n, v, "", nil); len(iss) != 0 {
			t.Fatalf("value %v must satisfy inclusive bounds: %v", v, iss)
		}
	}
	if iss := validateNode(n, 0.999, "", nil); len(iss) != 1 || iss[0].Code != CodeTooSmall {
		t.Fatalf("expected too_small: %v", iss)
	}
	if iss := validateNode(n, json.Number("10.5"), "", nil); len(iss) != 1 || iss[0].Code != CodeTooBig {
		t.Fatalf("expected too_big: %v", iss)
	}
}

func TestValidate_IntegerRequiresIntegralValue(t *testing.T) {
	n := mustCompile(t, &jsonschema.Schema{Type: "integer"})
	if iss := validateNode(n, 42, "", nil); len(iss) != 0 {
		t.Fatalf("42 is an integer: %v", iss)
	}
	if iss := validateNode(n, json.Number("42"), "", nil); len(iss) != 0 {
		t.Fatalf("json.Number 42 is an integer: %v", iss)
	}
	if iss := validateNode(n, 4.2, "", nil); len(iss) != 1 || iss[0].Code != CodeInvalidType {
		t.Fatalf("expected invalid_type for fractional value: %v", iss)
	}
	if iss := validateNode(n, true, "", nil); len(iss) != 1 || iss[0].Code != CodeInvalidType {
		t.Fatalf("booleans are not integers: %v", iss)
	}
}

func TestValidate_ArrayItemsWithIndexPaths(t *testing.T) {
	n := mustCompile(t, &jsonschema.Schema{
		Type:  "array",
		Items: &jsonschema.Schema{Type: "string"},
	})
	iss := validateNode(n, []any{"ok", 1, "ok", false}, "", nil)
	if len(iss) != 2 {
		t.Fatalf("expected two element issues, got %v", iss)
	}
	if iss[0].Path != "/1" || iss[1].Path != "/3" {
		t.Fatalf("expected index paths /1 and /3, got %q and %q", iss[0].Path, iss[1].Path)
	}
}

func TestValidate_EnumStructuralEquality(t *testing.T) {
	n := mustCompile(t, &jsonschema.Schema{
		Enum: []any{"active", json.Number("2"), []any{1, 2}},
	})
	for _, ok := range []any{"active", 2, 2.0, []any{json.Number("1"), 2.0}} {
		if iss := validateNode(n, ok, "", nil); len(iss) != 0 {
			t.Fatalf("value %v must be an enum member: %v", ok, iss)
		}
	}
	if iss := validateNode(n, "inactive", "", nil); len(iss) != 1 || iss[0].Code != CodeInvalidEnum {
		t.Fatalf("expected invalid_enum: %v", iss)
	}
}

func TestValidate_PatternUnanchored(t *testing.T) {
	n := mustCompile(t, &jsonschema.Schema{Type: "string", Pattern: "ab+c"})
	if iss := validateNode(n, "xx abbbc yy", "", nil); len(iss) != 0 {
		t.Fatalf("unanchored pattern must match substrings: %v", iss)
	}
	if iss := validateNode(n, "ac", "", nil); len(iss) != 1 || iss[0].Code != CodePattern {
		t.Fatalf("expected pattern issue: %v", iss)
	}
}

func TestValidate_Formats(t *testing.T) {
	cases := []struct {
		format  string
		ok, bad string
	}{
		{"email", "test@example.com", "not-an-email"},
		{"uri", "https://example.com", "not a uri"},
		{"date-time", "2023-01-01T00:00:00Z", "2023-01-01"},
	}
	for _, c := range cases {
		n := mustCompile(t, &jsonschema.Schema{Type: "string", Format: c.format})
		if iss := validateNode(n, c.ok, "", nil); len(iss) != 0 {
			t.Fatalf("%s: %q must be valid: %v", c.format, c.ok, iss)
		}
		iss := validateNode(n, c.bad, "", nil)
		if len(iss) != 1 || iss[0].Code != CodeInvalidFormat {
			t.Fatalf("%s: expected invalid_format for %q, got %v", c.format, c.bad, iss)
		}
	}
}

func TestValidate_UnknownFormatIsAnnotation(t *testing.T) {
	n := mustCompile(t, &jsonschema.Schema{Type: "string", Format: "hostname"})
	if iss := validateNode(n, "anything goes", "", nil); len(iss) != 0 {
		t.Fatalf("unknown formats must not constrain: %v", iss)
	}
}

func TestValidate_UntypedBoundsApplyOnlyToNumbers(t *testing.T) {
	n := mustCompile(t, &jsonschema.Schema{Minimum: floatp(10)})
	if iss := validateNode(n, "abc", "", nil); len(iss) != 0 {
		t.Fatalf("numeric bound must not constrain strings on untyped nodes: %v", iss)
	}
	if iss := validateNode(n, 5, "", nil); len(iss) != 1 || iss[0].Code != CodeTooSmall {
		t.Fatalf("numeric bound must apply to numbers: %v", iss)
	}
}

func TestValidate_NullType(t *testing.T) {
	n := mustCompile(t, &jsonschema.Schema{Type: "null"})
	if iss := validateNode(n, nil, "", nil); len(iss) != 0 {
		t.Fatalf("nil must satisfy type null: %v", iss)
	}
	if iss := validateNode(n, "x", "", nil); len(iss) != 1 || iss[0].Code != CodeInvalidType {
		t.Fatalf("expected invalid_type: %v", iss)
	}
}

func TestValidate_StringLengthCountsRunes(t *testing.T) {
	n := mustCompile(t, &jsonschema.Schema{Type: "string", MaxLength: intp(3)})
	if iss := validateNode(n, "日本語", "", nil); len(iss) != 0 {
		t.Fatalf("three runes must satisfy maxLength 3: %v", iss)
	}
}

func TestValidate_CustomMessageOverride(t *testing.T) {
	n := mustCompile(t, &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"name": {Type: "string", MinLength: intp(3), Message: "name is too short"},
		},
		Required: []string{"name"},
	})
	iss := validateNode(n, map[string]any{"name": "ab"}, "", nil)
	if len(iss) != 1 || iss[0].Message != "name is too short" {
		t.Fatalf("expected custom message, got %v", iss)
	}
	iss = validateNode(n, map[string]any{}, "", nil)
	if len(iss) != 1 || iss[0].Message != "name is too short" {
		t.Fatalf("required must use the field's custom message, got %v", iss)
	}
}
