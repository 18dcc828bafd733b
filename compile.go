package linkvalidate

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/reoring/linkvalidate/jsonschema"
)

// compiledNode is the frozen form of a schema node: structurally verified,
// pattern precompiled, property order fixed. Nothing mutates it after
// compileNode returns, which is what makes a Validator safe for concurrent
// use.
type compiledNode struct {
	schema    *jsonschema.Schema
	pattern   *regexp.Regexp
	props     map[string]*compiledNode
	propNames []string // sorted, fixes error ordering across walks
	required  []string // sorted
	items     *compiledNode
}

// compileNode runs the structural well-formedness pass and freezes the tree.
// It is deterministic for a given schema and has no side effects beyond the
// returned value and warnings.
func compileNode(path string, s *jsonschema.Schema, d *simpleDiag) (*compiledNode, error) {
	if s == nil {
		return nil, &CompileError{Path: path, Reason: "nil schema node"}
	}
	if s.Type != "" && !canonicalTypes[s.Type] {
		return nil, &CompileError{Path: path, Reason: fmt.Sprintf("unknown type %q", s.Type)}
	}
	if err := checkLengthBound(path, "minLength", s.MinLength); err != nil {
		return nil, err
	}
	if err := checkLengthBound(path, "maxLength", s.MaxLength); err != nil {
		return nil, err
	}
	if err := checkLengthBound(path, "minItems", s.MinItems); err != nil {
		return nil, err
	}
	if err := checkLengthBound(path, "maxItems", s.MaxItems); err != nil {
		return nil, err
	}
	if s.MinLength != nil && s.MaxLength != nil && *s.MinLength > *s.MaxLength {
		return nil, &CompileError{Path: path, Reason: fmt.Sprintf("invalid range: minLength %d > maxLength %d", *s.MinLength, *s.MaxLength)}
	}
	if s.MinItems != nil && s.MaxItems != nil && *s.MinItems > *s.MaxItems {
		return nil, &CompileError{Path: path, Reason: fmt.Sprintf("invalid range: minItems %d > maxItems %d", *s.MinItems, *s.MaxItems)}
	}
	if s.Minimum != nil && s.Maximum != nil && *s.Minimum > *s.Maximum {
		return nil, &CompileError{Path: path, Reason: fmt.Sprintf("invalid range: minimum %v > maximum %v", *s.Minimum, *s.Maximum)}
	}

	n := &compiledNode{schema: s}

	if s.Pattern != "" {
		re, err := regexp.Compile(s.Pattern)
		if err != nil {
			return nil, &CompileError{Path: path, Reason: fmt.Sprintf("invalid pattern %q: %v", s.Pattern, err)}
		}
		n.pattern = re
	}

	if s.Properties != nil {
		n.props = make(map[string]*compiledNode, len(s.Properties))
		n.propNames = make([]string, 0, len(s.Properties))
		for name := range s.Properties {
			n.propNames = append(n.propNames, name)
		}
		sort.Strings(n.propNames)
		for _, name := range n.propNames {
			child, err := compileNode(path+"/"+name, s.Properties[name], d)
			if err != nil {
				return nil, err
			}
			n.props[name] = child
		}
	}

	if len(s.Required) > 0 {
		n.required = append([]string(nil), s.Required...)
		sort.Strings(n.required)
		// A required name with no matching property is tolerated: the
		// presence check still applies, only the descent is skipped.
		if s.Properties != nil {
			for _, name := range n.required {
				if _, ok := s.Properties[name]; !ok {
					d.warnf(path, "required", "required name %q has no matching property", name)
				}
			}
		}
	}

	if s.Items != nil {
		child, err := compileNode(path+"/items", s.Items, d)
		if err != nil {
			return nil, err
		}
		n.items = child
	}
	return n, nil
}

func checkLengthBound(path, key string, v *int) error {
	if v != nil && *v < 0 {
		return &CompileError{Path: path, Reason: fmt.Sprintf("%s must be non-negative, got %d", key, *v)}
	}
	return nil
}
