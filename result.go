package linkvalidate

import (
	gojson "github.com/goccy/go-json"
)

// Result is one validation outcome. It is transient: the Validator retains
// no reference to it across calls.
type Result struct {
	Valid  bool
	Issues Issues

	origin OriginFormat
}

// RenderedError is the JSON-serializable error shape. Exactly one of
// InstancePath (canonical-schema origin) or Field (rule-syntax origin) is
// set; both render the same JSON-Pointer path, root-level errors as "".
type RenderedError struct {
	Message      string  `json:"message"`
	InstancePath *string `json:"instancePath,omitempty"`
	Field        *string `json:"field,omitempty"`
}

// Path returns whichever path key is populated.
func (e RenderedError) Path() string {
	if e.InstancePath != nil {
		return *e.InstancePath
	}
	if e.Field != nil {
		return *e.Field
	}
	return ""
}

// Rendered renders the issues using the path-key convention of the schema's
// origin format, preserving content and order.
func (r Result) Rendered() []RenderedError {
	out := make([]RenderedError, 0, len(r.Issues))
	for _, it := range r.Issues {
		p := it.Path
		re := RenderedError{Message: it.Message}
		if r.origin == FormatRules {
			re.Field = &p
		} else {
			re.InstancePath = &p
		}
		out = append(out, re)
	}
	return out
}

// MarshalJSON serializes the result as {"is_valid": ..., "errors": [...]}
// with errors in the origin's rendering shape.
func (r Result) MarshalJSON() ([]byte, error) {
	return gojson.Marshal(struct {
		Valid  bool            `json:"is_valid"`
		Errors []RenderedError `json:"errors"`
	}{Valid: r.Valid, Errors: r.Rendered()})
}
