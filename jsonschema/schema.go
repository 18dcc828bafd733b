package jsonschema

// Schema is the canonical node representation shared by both input syntaxes.
// Keyword fields are grouped by the type they apply to; a keyword populated
// on a node whose values never take that runtime kind is inert during
// validation, matching JSON Schema's applicability rules.
type Schema struct {
	// Core
	Type   string `json:"type,omitempty"`
	Format string `json:"format,omitempty"`
	Enum   []any  `json:"enum,omitempty"`

	// String
	MinLength *int   `json:"minLength,omitempty"`
	MaxLength *int   `json:"maxLength,omitempty"`
	Pattern   string `json:"pattern,omitempty"`

	// Number / integer
	Minimum *float64 `json:"minimum,omitempty"`
	Maximum *float64 `json:"maximum,omitempty"`

	// Object
	Properties map[string]*Schema `json:"properties,omitempty"`
	Required   []string           `json:"required,omitempty"`

	// Array
	Items    *Schema `json:"items,omitempty"`
	MinItems *int    `json:"minItems,omitempty"`
	MaxItems *int    `json:"maxItems,omitempty"`

	// Callable marks values that must be function-like. JSON Schema has no
	// native function type; rule syntax's "method" maps to an object node
	// carrying this marker.
	Callable bool `json:"x-callable,omitempty"`

	// Message optionally overrides rendered messages for violations at this
	// node (rule syntax "message").
	Message string `json:"x-message,omitempty"`
}
