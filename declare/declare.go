package declare

import (
	"fmt"
	"sort"
	"strings"

	ns "github.com/0xalexb/hjarta-ns"
)

// Schema describes which top-level keys a type accepts as externally
// refinable attributes. It replaces runtime class introspection with an
// explicit capability set validated at construction time.
type Schema struct {
	typeName string
	attrs    map[string]bool
	order    []string
}

// NewSchema builds a schema for the named type accepting the given
// attribute names.
func NewSchema(typeName string, attrs ...string) *Schema {
	s := &Schema{
		typeName: typeName,
		attrs:    make(map[string]bool, len(attrs)),
	}

	for _, attr := range attrs {
		if !s.attrs[attr] {
			s.order = append(s.order, attr)
		}

		s.attrs[attr] = true
	}

	return s
}

// TypeName returns the name the schema was declared for.
func (s *Schema) TypeName() string {
	return s.typeName
}

// Attributes returns the declared attribute names in declaration order.
func (s *Schema) Attributes() []string {
	attrs := make([]string, len(s.order))
	copy(attrs, s.order)

	return attrs
}

// Has reports whether the attribute is declared.
func (s *Schema) Has(attr string) bool {
	return s.attrs[attr]
}

// Refine merges the override sources over the declared defaults (overrides
// win) and validates that every top-level key names a declared attribute.
// Undeclared keys fail with UnknownKeywordError, enumerated alphabetically.
func (s *Schema) Refine(defaults *ns.Namespace, overrides ...any) (*ns.Namespace, error) {
	sources := make([]any, 0, len(overrides)+1)
	sources = append(sources, defaults)
	sources = append(sources, overrides...)

	merged := ns.New(sources...)

	var unknown []string

	for _, key := range merged.Keys() {
		if !s.attrs[key] {
			unknown = append(unknown, key)
		}
	}

	if len(unknown) > 0 {
		sort.Strings(unknown)

		return nil, &UnknownKeywordError{TypeName: s.typeName, Names: unknown}
	}

	return merged, nil
}

// UnknownKeywordError reports override keys that do not match any declared
// attribute.
type UnknownKeywordError struct {
	TypeName string
	Names    []string
}

func (e *UnknownKeywordError) Error() string {
	return fmt.Sprintf("'%s' object has no refinable attribute(s): %s", e.TypeName, strings.Join(e.Names, ", "))
}

// AssertEmpty fails with UnexpectedArgumentError when kwargs is non-empty,
// naming the calling context. It is a no-op on an empty mapping.
func AssertEmpty(kwargs map[string]any, context string) error {
	if len(kwargs) == 0 {
		return nil
	}

	names := make([]string, 0, len(kwargs))
	for name := range kwargs {
		names = append(names, name)
	}

	sort.Strings(names)

	return &UnexpectedArgumentError{Context: context, Names: names}
}

// UnexpectedArgumentError reports keyword arguments left unconsumed by a
// call, enumerated alphabetically.
type UnexpectedArgumentError struct {
	Context string
	Names   []string
}

func (e *UnexpectedArgumentError) Error() string {
	quoted := make([]string, len(e.Names))
	for i, name := range e.Names {
		quoted[i] = "'" + name + "'"
	}

	return fmt.Sprintf("%s() got unexpected keyword arguments %s", e.Context, strings.Join(quoted, ", "))
}
