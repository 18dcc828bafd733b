package jsonschema

import (
	"encoding/json"
	"fmt"
	"sort"
)

// FromValue decodes an already-parsed canonical schema value into a Schema
// tree. Unknown keywords ($schema, title, additionalProperties, ...) are
// ignored, matching JSON Schema's open-keyword convention; malformed known
// keywords are errors.
func FromValue(v any) (*Schema, error) {
	return fromValue("", v)
}

func fromValue(path string, v any) (*Schema, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("schema node at %q must be an object, got %T", ptr(path), v)
	}
	s := &Schema{}
	if raw, ok := m["type"]; ok {
		t, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("type at %q must be a string", ptr(path))
		}
		s.Type = t
	}
	if raw, ok := m["format"]; ok {
		f, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("format at %q must be a string", ptr(path))
		}
		s.Format = f
	}
	if raw, ok := m["pattern"]; ok {
		p, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("pattern at %q must be a string", ptr(path))
		}
		s.Pattern = p
	}
	if raw, ok := m["enum"]; ok {
		e, ok := raw.([]any)
		if !ok {
			return nil, fmt.Errorf("enum at %q must be an array", ptr(path))
		}
		s.Enum = e
	}
	var err error
	if s.MinLength, err = intKeyword(m, "minLength", path); err != nil {
		return nil, err
	}
	if s.MaxLength, err = intKeyword(m, "maxLength", path); err != nil {
		return nil, err
	}
	if s.MinItems, err = intKeyword(m, "minItems", path); err != nil {
		return nil, err
	}
	if s.MaxItems, err = intKeyword(m, "maxItems", path); err != nil {
		return nil, err
	}
	if s.Minimum, err = floatKeyword(m, "minimum", path); err != nil {
		return nil, err
	}
	if s.Maximum, err = floatKeyword(m, "maximum", path); err != nil {
		return nil, err
	}
	if raw, ok := m["properties"]; ok {
		pm, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("properties at %q must be an object", ptr(path))
		}
		s.Properties = make(map[string]*Schema, len(pm))
		for _, name := range sortedKeys(pm) {
			child, err := fromValue(path+"/"+name, pm[name])
			if err != nil {
				return nil, err
			}
			s.Properties[name] = child
		}
	}
	if raw, ok := m["required"]; ok {
		ra, ok := raw.([]any)
		if !ok {
			return nil, fmt.Errorf("required at %q must be an array", ptr(path))
		}
		for _, r := range ra {
			name, ok := r.(string)
			if !ok {
				return nil, fmt.Errorf("required at %q must list strings", ptr(path))
			}
			s.Required = append(s.Required, name)
		}
	}
	if raw, ok := m["items"]; ok {
		child, err := fromValue(path+"/items", raw)
		if err != nil {
			return nil, err
		}
		s.Items = child
	}
	return s, nil
}

func intKeyword(m map[string]any, key, path string) (*int, error) {
	raw, ok := m[key]
	if !ok {
		return nil, nil
	}
	f, ok := NumberOf(raw)
	if !ok || f != float64(int(f)) {
		return nil, fmt.Errorf("%s at %q must be an integer", key, ptr(path))
	}
	n := int(f)
	return &n, nil
}

func floatKeyword(m map[string]any, key, path string) (*float64, error) {
	raw, ok := m[key]
	if !ok {
		return nil, nil
	}
	f, ok := NumberOf(raw)
	if !ok {
		return nil, fmt.Errorf("%s at %q must be a number", key, ptr(path))
	}
	return &f, nil
}

// NumberOf extracts a float64 from any numeric representation a decoder may
// hand us (json.Number from go-json UseNumber, float64 from encoding/json,
// int family from yaml.v3).
func NumberOf(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}

func sortedKeys(m map[string]any) []string {
	ks := make([]string, 0, len(m))
	for k := range m {
		ks = append(ks, k)
	}
	sort.Strings(ks)
	return ks
}

func ptr(path string) string {
	if path == "" {
		return "/"
	}
	return path
}
