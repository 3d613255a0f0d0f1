// Package tools provides the Google Maps MCP tool implementations.
package tools

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// FieldKind is the accepted value shape of a schema field.
type FieldKind int

const (
	// FieldString accepts a single string value.
	FieldString FieldKind = iota
	// FieldStringList accepts an array of non-empty strings.
	FieldStringList
)

// Field is one declarative argument constraint: required/optional, bounds,
// enum membership and default value. Constraints are data, not code, so the
// same validator serves every tool.
type Field struct {
	Name     string
	Kind     FieldKind
	Required bool
	// MaxLen bounds string length in characters. Zero means unbounded.
	MaxLen int
	// MinItems/MaxItems bound list cardinality. Zero MaxItems means unbounded.
	MinItems int
	MaxItems int
	// Enum restricts the value to the listed members.
	Enum []string
	// Default is applied when an optional string field is absent.
	Default string
}

// Schema is the full declarative constraint set for one tool's arguments.
// Refine runs only after every per-field check has passed and expresses
// cross-field invariants.
type Schema struct {
	Fields []Field
	Refine func(args Args) error
}

// Args holds validated, defaulted arguments.
type Args map[string]any

// String returns the named string argument, or "" when absent.
func (a Args) String(name string) string {
	v, _ := a[name].(string)
	return v
}

// StringList returns the named string list argument, or nil when absent.
func (a Args) StringList(name string) []string {
	v, _ := a[name].([]string)
	return v
}

// ValidationError is a field-attributed argument violation. It is detected
// before any upstream call and never retried.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid arguments: %s", e.Message)
	}
	return fmt.Sprintf("invalid argument %q: %s", e.Field, e.Message)
}

func violation(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// Validate checks raw arguments against the schema. Unknown fields are
// rejected, defaults are applied, and the first violation is returned with
// the offending field named.
func (s Schema) Validate(raw map[string]any) (Args, error) {
	known := make(map[string]bool, len(s.Fields))
	for _, f := range s.Fields {
		known[f.Name] = true
	}
	var unknown []string
	for name := range raw {
		if !known[name] {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, &ValidationError{Message: fmt.Sprintf("unknown field(s): %s", strings.Join(unknown, ", "))}
	}

	args := make(Args, len(s.Fields))
	for _, f := range s.Fields {
		value, present := raw[f.Name]
		if !present || value == nil {
			if f.Required {
				return nil, violation(f.Name, "required field is missing")
			}
			if f.Kind == FieldString && f.Default != "" {
				args[f.Name] = f.Default
			}
			continue
		}

		switch f.Kind {
		case FieldString:
			str, ok := value.(string)
			if !ok {
				return nil, violation(f.Name, "must be a string")
			}
			str = strings.TrimSpace(str)
			if str == "" {
				if f.Required {
					return nil, violation(f.Name, "must not be empty")
				}
				if f.Default != "" {
					args[f.Name] = f.Default
				}
				continue
			}
			if n := utf8.RuneCountInString(str); f.MaxLen > 0 && n > f.MaxLen {
				return nil, violation(f.Name, "must be at most %d characters, got %d", f.MaxLen, n)
			}
			if len(f.Enum) > 0 && !contains(f.Enum, str) {
				return nil, violation(f.Name, "must be one of: %s", strings.Join(f.Enum, ", "))
			}
			args[f.Name] = str

		case FieldStringList:
			list, err := toStringList(value)
			if err != nil {
				return nil, violation(f.Name, "%s", err)
			}
			if f.MinItems > 0 && len(list) < f.MinItems {
				return nil, violation(f.Name, "must contain at least %d item(s), got %d", f.MinItems, len(list))
			}
			if f.MaxItems > 0 && len(list) > f.MaxItems {
				return nil, violation(f.Name, "must contain at most %d item(s), got %d", f.MaxItems, len(list))
			}
			args[f.Name] = list
		}
	}

	if s.Refine != nil {
		if err := s.Refine(args); err != nil {
			return nil, err
		}
	}
	return args, nil
}

func toStringList(value any) ([]string, error) {
	switch v := value.(type) {
	case []string:
		for i, s := range v {
			if strings.TrimSpace(s) == "" {
				return nil, fmt.Errorf("item %d must be a non-empty string", i)
			}
		}
		return v, nil
	case []any:
		list := make([]string, 0, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok || strings.TrimSpace(s) == "" {
				return nil, fmt.Errorf("item %d must be a non-empty string", i)
			}
			list = append(list, s)
		}
		return list, nil
	default:
		return nil, fmt.Errorf("must be an array of strings")
	}
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
