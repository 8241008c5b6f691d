// schema.go — ordered field maps with ancestor-style extension.
//
// Merge rule (matching inherited field maps): ancestors first, most-derived
// overrides last, a same-named override reuses the original position.

package schema

import (
	"fmt"

	"github.com/ymahlau/treeclass/field"
)

// Schema is an immutable, insertion-ordered field map for one class.
type Schema struct {
	name   string
	fields []*field.Field
	index  map[string]int
}

// New builds a Schema named name from the given descriptors, in declaration
// order. Declaration-shape errors surface here (see errors.go).
func New(name string, fields ...*field.Field) (*Schema, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	s := &Schema{name: name, index: make(map[string]int, len(fields))}
	if err := s.overlay(fields); err != nil {
		return nil, fmt.Errorf("schema %q: %w", name, err)
	}
	if err := s.checkConstructorShape(); err != nil {
		return nil, fmt.Errorf("schema %q: %w", name, err)
	}
	return s, nil
}

// MustNew is New panicking on declaration errors; intended for package-level
// schema declarations.
func MustNew(name string, fields ...*field.Field) *Schema {
	s, err := New(name, fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// Extend derives a new Schema from s: s's entries come first (ancestors
// first), then the given declarations overlay them. A declaration shadowing
// an inherited name replaces it in place, keeping the original position.
func (s *Schema) Extend(name string, fields ...*field.Field) (*Schema, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	out := &Schema{
		name:   name,
		fields: make([]*field.Field, len(s.fields)),
		index:  make(map[string]int, len(s.fields)+len(fields)),
	}
	copy(out.fields, s.fields)
	for n, i := range s.index {
		out.index[n] = i
	}
	if err := out.overlay(fields); err != nil {
		return nil, fmt.Errorf("schema %q: %w", name, err)
	}
	if err := out.checkConstructorShape(); err != nil {
		return nil, fmt.Errorf("schema %q: %w", name, err)
	}
	return out, nil
}

// overlay merges one declaration list into the field map. Shadowing an
// existing (inherited) entry is allowed and position-stable; a duplicate
// within the list itself is a declaration error.
func (s *Schema) overlay(fields []*field.Field) error {
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if f == nil {
			return ErrNilField
		}
		if _, dup := seen[f.Name()]; dup {
			return fmt.Errorf("%q: %w", f.Name(), ErrDuplicateField)
		}
		seen[f.Name()] = struct{}{}

		if i, ok := s.index[f.Name()]; ok {
			s.fields[i] = f
			continue
		}
		s.index[f.Name()] = len(s.fields)
		s.fields = append(s.fields, f)
	}
	return nil
}

// checkConstructorShape rejects a required positional field declared after a
// defaulted positional field; the synthesized constructor could never bind it.
func (s *Schema) checkConstructorShape() error {
	sawDefault := false
	for _, f := range s.fields {
		if !f.Init() || f.KwOnly() {
			continue
		}
		if f.Required() && sawDefault {
			return fmt.Errorf("%q: %w", f.Name(), ErrRequiredAfterDefault)
		}
		if !f.Required() {
			sawDefault = true
		}
	}
	return nil
}

// Name returns the schema name.
func (s *Schema) Name() string { return s.name }

// Len returns the number of fields.
func (s *Schema) Len() int { return len(s.fields) }

// Has reports whether name is a declared field.
func (s *Schema) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Get returns the descriptor for name, or ErrUnknownField.
func (s *Schema) Get(name string) (*field.Field, error) {
	i, ok := s.index[name]
	if !ok {
		return nil, fmt.Errorf("schema %q: %q: %w", s.name, name, ErrUnknownField)
	}
	return s.fields[i], nil
}

// Fields returns the descriptors in declaration order. The slice is a copy;
// descriptors themselves are immutable and shared.
func (s *Schema) Fields() []*field.Field {
	out := make([]*field.Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// Names returns the field names in declaration order.
func (s *Schema) Names() []string {
	out := make([]string, len(s.fields))
	for i, f := range s.fields {
		out[i] = f.Name()
	}
	return out
}

// InitFields returns, in declaration order, the fields bound from
// constructor arguments (Init == true).
func (s *Schema) InitFields() []*field.Field {
	out := make([]*field.Field, 0, len(s.fields))
	for _, f := range s.fields {
		if f.Init() {
			out = append(out, f)
		}
	}
	return out
}
