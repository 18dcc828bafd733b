package linkvalidate

import (
	"bytes"
	"context"
	"fmt"

	gojson "github.com/goccy/go-json"

	"github.com/reoring/linkvalidate/jsonschema"
)

// Validator is the compiled, reusable form of a schema. It is immutable
// after Compile and safe for concurrent use by multiple goroutines: every
// Validate call allocates its own path strings and issue list and reads only
// frozen schema data.
type Validator struct {
	root   *compiledNode
	origin OriginFormat
}

// Compile detects the schema's format, normalizes rule syntax to the
// canonical representation, verifies structural well-formedness, and returns
// a reusable Validator. Constructs the translation had to drop are reported
// through the returned Diag, never silently.
func Compile(schema any, opts ...CompileOption) (*Validator, Diag, error) {
	cfg := applyCompileOptions(opts)
	d := &simpleDiag{}

	origin := cfg.format
	if origin == FormatAuto {
		origin = DetectFormat(schema)
	}

	var node *jsonschema.Schema
	switch origin {
	case FormatRules:
		root, ok := schema.(map[string]any)
		if !ok {
			return nil, d, &ConversionError{Reason: fmt.Sprintf("rule schema must be an object, got %T", schema)}
		}
		n, err := normalizeRules(root, d)
		if err != nil {
			return nil, d, err
		}
		node = n
	case FormatJSONSchema:
		n, err := jsonschema.FromValue(schema)
		if err != nil {
			return nil, d, &CompileError{Reason: err.Error()}
		}
		node = n
	default:
		return nil, d, &CompileError{Reason: fmt.Sprintf("unknown origin format %d", origin)}
	}

	root, err := compileNode("", node, d)
	if err != nil {
		return nil, d, err
	}
	return &Validator{root: root, origin: origin}, d, nil
}

// CompileJSON decodes raw JSON and compiles it. Numbers are decoded as
// json.Number so integer precision survives into bound checks.
func CompileJSON(data []byte, opts ...CompileOption) (*Validator, Diag, error) {
	v, err := decodeJSON(data)
	if err != nil {
		return nil, &simpleDiag{}, &CompileError{Reason: "invalid JSON: " + err.Error()}
	}
	return Compile(v, opts...)
}

// CompileYAML decodes a YAML document, normalizes it into JSON-like values,
// and compiles it.
func CompileYAML(data []byte, opts ...CompileOption) (*Validator, Diag, error) {
	v, err := DecodeYAML(data)
	if err != nil {
		return nil, &simpleDiag{}, &CompileError{Reason: "invalid YAML: " + err.Error()}
	}
	return Compile(v, opts...)
}

// Origin reports which surface syntax the schema was supplied in.
func (v *Validator) Origin() OriginFormat { return v.origin }

// Schema returns the canonical schema tree. Callers must treat it as
// read-only; it is shared with every concurrent Validate call.
func (v *Validator) Schema() *jsonschema.Schema { return v.root.schema }

// Validate checks a decoded data value against the compiled schema. It is a
// pure function of its inputs, traverses the whole tree without
// short-circuiting, and returns every violation in depth-first order. There
// is no suspension point; ctx exists for interface symmetry with callers
// that thread contexts through validation layers.
func (v *Validator) Validate(_ context.Context, data any) Result {
	iss := validateNode(v.root, data, "", nil)
	return Result{Valid: len(iss) == 0, Issues: iss, origin: v.origin}
}

// ValidateJSON decodes raw JSON and validates it. A decode failure is an
// error, not a Result: it means there was no data value to check.
func (v *Validator) ValidateJSON(ctx context.Context, data []byte) (Result, error) {
	val, err := decodeJSON(data)
	if err != nil {
		return Result{}, fmt.Errorf("linkvalidate: invalid JSON data: %w", err)
	}
	return v.Validate(ctx, val), nil
}

// Validate is the one-shot convenience: compile then validate. Compilation
// failures surface as an invalid Result carrying a parse_error issue. Reuse
// a compiled Validator instead when validating more than once.
func Validate(ctx context.Context, schema, data any) Result {
	v, _, err := Compile(schema)
	if err != nil {
		return Result{
			Valid:  false,
			Issues: Issues{{Path: "", Code: CodeParseError, Message: err.Error()}},
			origin: FormatJSONSchema,
		}
	}
	return v.Validate(ctx, data)
}

func decodeJSON(data []byte) (any, error) {
	dec := gojson.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}
