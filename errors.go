package linkvalidate

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidType   = "invalid_type"
	CodeRequired      = "required"
	CodeTooSmall      = "too_small"
	CodeTooBig        = "too_big"
	CodeTooShort      = "too_short"
	CodeTooLong       = "too_long"
	CodePattern       = "pattern"
	CodeInvalidEnum   = "invalid_enum"
	CodeInvalidFormat = "invalid_format"
	CodeParseError    = "parse_error"
)

// Issue represents a single validation entry.
type Issue struct {
	Path    string // JSON Pointer (for example: /user/profile/age).
	Code    string // One of the codes listed above.
	Message string
	// Params carries structured parameters (e.g., {"min":3, "got":2})
	// for i18n and observability.
	Params map[string]any
}

// Issues is a collection of validation errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. invalid_type at /path
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// ConversionError reports rule syntax that is structurally untranslatable,
// such as fields under a scalar type or a non-numeric bound. It aborts
// compilation.
type ConversionError struct {
	Field  string // JSON Pointer to the offending rule ("" for the root).
	Reason string
}

func (e *ConversionError) Error() string {
	if e.Field == "" {
		return "linkvalidate: cannot convert rules: " + e.Reason
	}
	return fmt.Sprintf("linkvalidate: cannot convert rules at %s: %s", e.Field, e.Reason)
}

// CompileError reports a canonical schema that is internally inconsistent,
// such as minimum greater than maximum or an invalid pattern. It aborts
// compilation.
type CompileError struct {
	Path   string // JSON Pointer to the offending schema node ("" for the root).
	Reason string
}

func (e *CompileError) Error() string {
	if e.Path == "" {
		return "linkvalidate: invalid schema: " + e.Reason
	}
	return fmt.Sprintf("linkvalidate: invalid schema at %s: %s", e.Path, e.Reason)
}
