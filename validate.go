package linkvalidate

import (
	"math"
	"net/mail"
	"net/url"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/reoring/linkvalidate/i18n"
	"github.com/reoring/linkvalidate/jsonschema"
)

// validateNode walks data against a compiled node depth-first, appending one
// issue per violated constraint. It never short-circuits: a failed type gate
// stops only that subtree, siblings still get their own evaluation, so one
// call yields the complete report.
func validateNode(n *compiledNode, v any, path string, iss Issues) Issues {
	s := n.schema

	if s.Type != "" && !typeMatches(s.Type, v) {
		return AppendIssues(iss, Issue{
			Path:    path,
			Code:    CodeInvalidType,
			Message: nodeMessage(s, CodeInvalidType),
			Params:  map[string]any{"expected": s.Type, "got": kindOf(v)},
		})
	}

	if len(s.Enum) > 0 && !enumContains(s.Enum, v) {
		iss = AppendIssues(iss, Issue{
			Path:    path,
			Code:    CodeInvalidEnum,
			Message: nodeMessage(s, CodeInvalidEnum),
			Params:  map[string]any{"allowed": s.Enum},
		})
	}

	switch val := v.(type) {
	case string:
		iss = checkString(n, val, path, iss)
	case []any:
		iss = checkArray(n, val, path, iss)
	case map[string]any:
		iss = checkObject(n, val, path, iss)
	default:
		if f, ok := jsonschema.NumberOf(v); ok {
			iss = checkNumber(n, f, path, iss)
		}
	}
	return iss
}

func checkString(n *compiledNode, v, path string, iss Issues) Issues {
	s := n.schema
	length := utf8.RuneCountInString(v)
	if s.MinLength != nil && length < *s.MinLength {
		iss = AppendIssues(iss, Issue{
			Path:    path,
			Code:    CodeTooShort,
			Message: nodeMessage(s, CodeTooShort),
			Params:  map[string]any{"min": *s.MinLength, "got": length},
		})
	}
	if s.MaxLength != nil && length > *s.MaxLength {
		iss = AppendIssues(iss, Issue{
			Path:    path,
			Code:    CodeTooLong,
			Message: nodeMessage(s, CodeTooLong),
			Params:  map[string]any{"max": *s.MaxLength, "got": length},
		})
	}
	if n.pattern != nil && !n.pattern.MatchString(v) {
		iss = AppendIssues(iss, Issue{
			Path:    path,
			Code:    CodePattern,
			Message: nodeMessage(s, CodePattern),
			Params:  map[string]any{"pattern": s.Pattern},
		})
	}
	if s.Format != "" && !formatOK(s.Format, v) {
		iss = AppendIssues(iss, Issue{
			Path:    path,
			Code:    CodeInvalidFormat,
			Message: nodeMessage(s, CodeInvalidFormat),
			Params:  map[string]any{"format": s.Format},
		})
	}
	return iss
}

func checkNumber(n *compiledNode, f float64, path string, iss Issues) Issues {
	s := n.schema
	if s.Minimum != nil && f < *s.Minimum {
		iss = AppendIssues(iss, Issue{
			Path:    path,
			Code:    CodeTooSmall,
			Message: nodeMessage(s, CodeTooSmall),
			Params:  map[string]any{"min": *s.Minimum, "got": f},
		})
	}
	if s.Maximum != nil && f > *s.Maximum {
		iss = AppendIssues(iss, Issue{
			Path:    path,
			Code:    CodeTooBig,
			Message: nodeMessage(s, CodeTooBig),
			Params:  map[string]any{"max": *s.Maximum, "got": f},
		})
	}
	return iss
}

func checkArray(n *compiledNode, v []any, path string, iss Issues) Issues {
	s := n.schema
	if s.MinItems != nil && len(v) < *s.MinItems {
		iss = AppendIssues(iss, Issue{
			Path:    path,
			Code:    CodeTooShort,
			Message: nodeMessage(s, CodeTooShort),
			Params:  map[string]any{"min": *s.MinItems, "got": len(v)},
		})
	}
	if s.MaxItems != nil && len(v) > *s.MaxItems {
		iss = AppendIssues(iss, Issue{
			Path:    path,
			Code:    CodeTooLong,
			Message: nodeMessage(s, CodeTooLong),
			Params:  map[string]any{"max": *s.MaxItems, "got": len(v)},
		})
	}
	if n.items != nil {
		for i, el := range v {
			iss = validateNode(n.items, el, path+"/"+strconv.Itoa(i), iss)
		}
	}
	return iss
}

func checkObject(n *compiledNode, v map[string]any, path string, iss Issues) Issues {
	// Required failures are reported before any descent so that a missing
	// sibling and a present sibling's own violations co-occur in one result.
	for _, name := range n.required {
		if _, ok := v[name]; ok {
			continue
		}
		msg := i18n.T(CodeRequired, nil)
		if child, ok := n.props[name]; ok && child.schema.Message != "" {
			msg = child.schema.Message
		}
		iss = AppendIssues(iss, Issue{
			Path:    path + "/" + name,
			Code:    CodeRequired,
			Message: msg,
			Params:  map[string]any{"property": name},
		})
	}
	for _, name := range n.propNames {
		if val, ok := v[name]; ok {
			iss = validateNode(n.props[name], val, path+"/"+name, iss)
		}
	}
	return iss
}

// nodeMessage prefers a rule-supplied custom message over the translated
// default for the code.
func nodeMessage(s *jsonschema.Schema, code string) string {
	if s.Message != "" {
		return s.Message
	}
	return i18n.T(code, nil)
}

func typeMatches(t string, v any) bool {
	switch t {
	case "string":
		_, ok := v.(string)
		return ok
	case "boolean":
		_, ok := v.(bool)
		return ok
	case "number":
		if _, isBool := v.(bool); isBool {
			return false
		}
		_, ok := jsonschema.NumberOf(v)
		return ok
	case "integer":
		if _, isBool := v.(bool); isBool {
			return false
		}
		f, ok := jsonschema.NumberOf(v)
		return ok && f == math.Trunc(f)
	case "array":
		_, ok := v.([]any)
		return ok
	case "object":
		_, ok := v.(map[string]any)
		return ok
	case "null":
		return v == nil
	default:
		return false
	}
}

// kindOf names a value's runtime JSON kind for error params.
func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		if _, ok := jsonschema.NumberOf(v); ok {
			return "number"
		}
		return "unknown"
	}
}

// enumContains tests structural equality against the candidate set. Numbers
// compare by value so json.Number("1"), float64(1) and int(1) all match.
func enumContains(set []any, v any) bool {
	for _, c := range set {
		if structuralEqual(c, v) {
			return true
		}
	}
	return false
}

func structuralEqual(a, b any) bool {
	if fa, ok := jsonschema.NumberOf(a); ok {
		fb, ok := jsonschema.NumberOf(b)
		return ok && fa == fb
	}
	switch av := a.(type) {
	case nil:
		return b == nil
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !structuralEqual(av[i], bv[i]) {
				return false
			}
		}
		return true
	case map[string]any:
		bv, ok := b.(map[string]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, x := range av {
			y, ok := bv[k]
			if !ok || !structuralEqual(x, y) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// formatOK applies the formats the rule syntax can produce. Unknown formats
// are annotations, matching JSON Schema's default vocabulary behavior.
func formatOK(format, v string) bool {
	switch format {
	case "date-time":
		_, err := time.Parse(time.RFC3339, v)
		return err == nil
	case "email":
		_, err := mail.ParseAddress(v)
		return err == nil
	case "uri":
		u, err := url.Parse(v)
		return err == nil && u.Scheme != ""
	default:
		return true
	}
}
