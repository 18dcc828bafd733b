package linkvalidate

import (
	"fmt"

	"github.com/reoring/linkvalidate/jsonschema"
)

const hexPattern = "^[0-9a-fA-F]+$"

// normalizeRules rewrites a rule-syntax schema into a canonical object node.
// The root is an implicit object: every top-level key names a field, every
// value is that field's rule or rule array. d collects one Warning per
// dropped construct.
func normalizeRules(raw map[string]any, d *simpleDiag) (*jsonschema.Schema, error) {
	return normalizeFields("", raw, d)
}

// normalizeFields converts a field->rules mapping into an object node,
// populating properties and the required set.
func normalizeFields(path string, raw map[string]any, d *simpleDiag) (*jsonschema.Schema, error) {
	node := &jsonschema.Schema{
		Type:       "object",
		Properties: make(map[string]*jsonschema.Schema, len(raw)),
	}
	for _, name := range sortedKeys(raw) {
		fieldPath := path + "/" + name
		rs, err := parseRuleSet(fieldPath, raw[name])
		if err != nil {
			return nil, err
		}
		merged := mergeRules(rs)
		child, err := convertRule(fieldPath, merged, d)
		if err != nil {
			return nil, err
		}
		node.Properties[name] = child
		if merged.Required {
			node.Required = append(node.Required, name)
		}
	}
	return node, nil
}

// convertRule maps one merged rule onto a canonical schema node. The mapping
// is commutative over rule keys: type resolution happens first, then each
// constraint is placed according to the resolved type, so key order in the
// source rule never changes the outcome.
func convertRule(path string, r fieldRule, d *simpleDiag) (*jsonschema.Schema, error) {
	node := &jsonschema.Schema{}

	token := ""
	if r.Type != nil {
		token = *r.Type
	}
	switch token {
	case "", "any":
		// No type constraint.
	case "string", "number", "integer", "boolean", "array", "object":
		node.Type = token
	case "method":
		node.Type = "object"
		node.Callable = true
	case "regexp":
		node.Type = "string"
	case "date":
		node.Type = "string"
		node.Format = "date-time"
	case "email":
		node.Type = "string"
		node.Format = "email"
	case "url":
		node.Type = "string"
		node.Format = "uri"
	case "hex":
		node.Type = "string"
		node.Pattern = hexPattern
	default:
		d.warnf(path, "type", "unsupported type %q", token)
	}

	if err := applyBounds(path, r, node, d); err != nil {
		return nil, err
	}

	if r.Pattern != nil {
		node.Pattern = *r.Pattern
	}
	if r.Enum != nil {
		node.Enum = r.Enum
	}
	if r.Message != nil {
		node.Message = *r.Message
	}

	if r.Fields != nil {
		if err := applyFields(path, r.Fields, node, d); err != nil {
			return nil, err
		}
	}

	for _, k := range r.unsupported {
		d.warn(path, k, "")
	}
	for _, k := range r.unknown {
		d.warnf(path, k, "unrecognized rule %q", k)
	}
	return node, nil
}

// applyBounds places min/max/len on the keyword pair matching the node's
// resolved type. Untyped rules treat bounds as numeric, matching the rule
// syntax's own behavior for bare {min: n} rules.
func applyBounds(path string, r fieldRule, node *jsonschema.Schema, d *simpleDiag) error {
	setLen := func(min, max **int, v float64, key string) error {
		if v != float64(int(v)) {
			return &ConversionError{Field: path, Reason: key + " must be an integer for length bounds"}
		}
		n := int(v)
		if min != nil {
			*min = &n
		}
		if max != nil {
			*max = &n
		}
		return nil
	}

	switch node.Type {
	case "string":
		if r.Min != nil {
			if err := setLen(&node.MinLength, nil, *r.Min, "min"); err != nil {
				return err
			}
		}
		if r.Max != nil {
			if err := setLen(nil, &node.MaxLength, *r.Max, "max"); err != nil {
				return err
			}
		}
		if r.Len != nil {
			if err := setLen(&node.MinLength, &node.MaxLength, *r.Len, "len"); err != nil {
				return err
			}
		}
	case "array":
		if r.Min != nil {
			if err := setLen(&node.MinItems, nil, *r.Min, "min"); err != nil {
				return err
			}
		}
		if r.Max != nil {
			if err := setLen(nil, &node.MaxItems, *r.Max, "max"); err != nil {
				return err
			}
		}
		if r.Len != nil {
			if err := setLen(&node.MinItems, &node.MaxItems, *r.Len, "len"); err != nil {
				return err
			}
		}
	default:
		if r.Min != nil {
			node.Minimum = r.Min
		}
		if r.Max != nil {
			node.Maximum = r.Max
		}
		if r.Len != nil {
			d.warn(path, "len", "len applies only to string and array types")
		}
	}
	return nil
}

// applyFields interprets a rule's nested fields. On an object node it is a
// field->rules mapping; on an array node it is the rule (or rule array) for
// every element. Anything else cannot be translated.
func applyFields(path string, raw any, node *jsonschema.Schema, d *simpleDiag) error {
	switch node.Type {
	case "object":
		fm, ok := raw.(map[string]any)
		if !ok {
			return &ConversionError{Field: path, Reason: fmt.Sprintf("fields must be an object, got %T", raw)}
		}
		nested, err := normalizeFields(path, fm, d)
		if err != nil {
			return err
		}
		node.Properties = nested.Properties
		node.Required = nested.Required
	case "array":
		rs, err := parseRuleSet(path+"/items", raw)
		if err != nil {
			return err
		}
		item, err := convertRule(path+"/items", mergeRules(rs), d)
		if err != nil {
			return err
		}
		node.Items = item
	default:
		return &ConversionError{Field: path, Reason: fmt.Sprintf("fields requires type object or array, have %q", node.Type)}
	}
	return nil
}
