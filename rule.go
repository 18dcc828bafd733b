package linkvalidate

import (
	"fmt"
	"sort"

	"github.com/reoring/linkvalidate/jsonschema"
)

// unsupportedKeys are recognized rule-syntax keys that have no canonical
// schema counterpart. Each occurrence is reported as a Warning and otherwise
// ignored; it never contributes a constraint and is never executed.
var unsupportedKeys = map[string]bool{
	"validator":      true,
	"asyncValidator": true,
	"trigger":        true,
	"whitespace":     true,
	"transform":      true,
}

// fieldRule is one field's constraint set in rule syntax, decoded from a raw
// object. Pointer fields distinguish absent from zero so that merging can
// apply last-write-wins per key.
type fieldRule struct {
	Type     *string
	Required bool
	Min      *float64
	Max      *float64
	Len      *float64
	Pattern  *string
	Enum     []any
	Message  *string
	Fields   any // raw nested mapping or item rule; interpreted by convertRule

	unsupported []string // recognized-but-unsupported keys, in sorted order
	unknown     []string // unrecognized keys, in sorted order
}

// parseRule decodes a single rule object. path identifies the field for
// error reporting.
func parseRule(path string, v any) (fieldRule, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return fieldRule{}, &ConversionError{Field: path, Reason: fmt.Sprintf("rule must be an object, got %T", v)}
	}
	var r fieldRule
	for _, k := range sortedKeys(m) {
		val := m[k]
		switch k {
		case "type":
			s, ok := val.(string)
			if !ok {
				return fieldRule{}, &ConversionError{Field: path, Reason: "type must be a string"}
			}
			r.Type = &s
		case "required":
			b, ok := val.(bool)
			if !ok {
				return fieldRule{}, &ConversionError{Field: path, Reason: "required must be a boolean"}
			}
			r.Required = b
		case "min", "max", "len":
			f, ok := jsonschema.NumberOf(val)
			if !ok {
				return fieldRule{}, &ConversionError{Field: path, Reason: k + " must be numeric"}
			}
			switch k {
			case "min":
				r.Min = &f
			case "max":
				r.Max = &f
			default:
				r.Len = &f
			}
		case "pattern":
			s, ok := val.(string)
			if !ok {
				return fieldRule{}, &ConversionError{Field: path, Reason: "pattern must be a string"}
			}
			r.Pattern = &s
		case "enum":
			e, ok := val.([]any)
			if !ok {
				return fieldRule{}, &ConversionError{Field: path, Reason: "enum must be an array"}
			}
			r.Enum = e
		case "message":
			s, ok := val.(string)
			if !ok {
				return fieldRule{}, &ConversionError{Field: path, Reason: "message must be a string"}
			}
			r.Message = &s
		case "fields":
			r.Fields = val
		default:
			if unsupportedKeys[k] {
				r.unsupported = append(r.unsupported, k)
			} else {
				r.unknown = append(r.unknown, k)
			}
		}
	}
	return r, nil
}

// parseRuleSet decodes a field's rules: a single rule object or an ordered
// array of rule objects.
func parseRuleSet(path string, v any) ([]fieldRule, error) {
	switch t := v.(type) {
	case map[string]any:
		r, err := parseRule(path, t)
		if err != nil {
			return nil, err
		}
		return []fieldRule{r}, nil
	case []any:
		rs := make([]fieldRule, 0, len(t))
		for i, rv := range t {
			r, err := parseRule(fmt.Sprintf("%s[%d]", path, i), rv)
			if err != nil {
				return nil, err
			}
			rs = append(rs, r)
		}
		return rs, nil
	default:
		return nil, &ConversionError{Field: path, Reason: fmt.Sprintf("rules must be an object or an array of objects, got %T", v)}
	}
}

// mergeRules folds an ordered rule sequence into one effective rule. Later
// entries override earlier ones per key; required is OR-combined. Recognized
// unsupported and unknown keys accumulate across entries.
func mergeRules(rs []fieldRule) fieldRule {
	var out fieldRule
	for _, r := range rs {
		if r.Type != nil {
			out.Type = r.Type
		}
		if r.Required {
			out.Required = true
		}
		if r.Min != nil {
			out.Min = r.Min
		}
		if r.Max != nil {
			out.Max = r.Max
		}
		if r.Len != nil {
			out.Len = r.Len
		}
		if r.Pattern != nil {
			out.Pattern = r.Pattern
		}
		if r.Enum != nil {
			out.Enum = r.Enum
		}
		if r.Message != nil {
			out.Message = r.Message
		}
		if r.Fields != nil {
			out.Fields = r.Fields
		}
		out.unsupported = append(out.unsupported, r.unsupported...)
		out.unknown = append(out.unknown, r.unknown...)
	}
	return out
}

func sortedKeys(m map[string]any) []string {
	ks := make([]string, 0, len(m))
	for k := range m {
		ks = append(ks, k)
	}
	sort.Strings(ks)
	return ks
}
