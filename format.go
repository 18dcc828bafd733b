package linkvalidate

// OriginFormat records which surface syntax a schema was supplied in. It is
// fixed at compile time and drives how validation errors are rendered.
type OriginFormat int

const (
	// FormatAuto lets Compile detect the format. Never recorded on a
	// compiled Validator.
	FormatAuto OriginFormat = iota
	// FormatRules is the async-validator style per-field rule syntax.
	FormatRules
	// FormatJSONSchema is the canonical JSON-Schema-shaped syntax.
	FormatJSONSchema
)

func (f OriginFormat) String() string {
	switch f {
	case FormatRules:
		return "rules"
	case FormatJSONSchema:
		return "jsonschema"
	default:
		return "auto"
	}
}

// canonicalTypes are the type tokens JSON Schema itself defines. Any other
// token on a nested object value is evidence of rule syntax.
var canonicalTypes = map[string]bool{
	"string": true, "number": true, "integer": true, "boolean": true,
	"array": true, "object": true, "null": true,
}

// ruleOnlyTypes are type tokens that exist only in rule syntax.
var ruleOnlyTypes = map[string]bool{
	"email": true, "url": true, "hex": true, "method": true,
	"regexp": true, "date": true, "any": true,
}

// DetectFormat classifies a raw schema value as rule syntax or canonical
// JSON Schema without mutating it. The heuristic is not a full grammar:
// inputs that read validly under both syntaxes default to FormatRules, since
// rule syntax is the richer form this library exists to translate. Callers
// that know the format should force it with WithFormat instead.
func DetectFormat(schema any) OriginFormat {
	root, ok := schema.(map[string]any)
	if !ok {
		// Non-object roots (true, "...", etc.) can never be rule sets.
		return FormatJSONSchema
	}
	if _, ok := root["$schema"]; ok {
		return FormatJSONSchema
	}
	if t, ok := root["type"].(string); ok && canonicalTypes[t] {
		// A root "type" key holding a canonical token can never be a field
		// rule: rule values are objects or arrays, never strings. This covers
		// bare {"type":"object"} schemas with no properties.
		return FormatJSONSchema
	}
	for _, v := range root {
		switch fv := v.(type) {
		case map[string]any:
			if hasRuleMarker(fv) {
				return FormatRules
			}
		case []any:
			// An array-of-rule-objects value only occurs in rule syntax.
			if len(fv) > 0 {
				if _, ok := fv[0].(map[string]any); ok {
					return FormatRules
				}
			}
		}
	}
	return FormatRules
}

// hasRuleMarker reports whether a per-field object carries a key or type
// token exclusive to rule syntax.
func hasRuleMarker(m map[string]any) bool {
	if _, ok := m["fields"]; ok {
		return true
	}
	if _, ok := m["len"]; ok {
		return true
	}
	if _, ok := m["required"].(bool); ok {
		return true
	}
	if t, ok := m["type"].(string); ok && ruleOnlyTypes[t] {
		return true
	}
	if _, ok := m["min"]; ok {
		return true
	}
	if _, ok := m["max"]; ok {
		return true
	}
	return false
}
