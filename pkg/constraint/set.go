package constraint

import "fmt"

// Set maps field names to their constraint lists, preserving declaration
// order. It is immutable once built by NewSet.
type Set struct {
	order  []string
	fields map[string]Field
}

// NewSet validates and copies the supplied fields. Field names must be unique
// and every constraint must have been constructed without error.
func NewSet(fields ...Field) (*Set, error) {
	set := &Set{
		order:  make([]string, 0, len(fields)),
		fields: make(map[string]Field, len(fields)),
	}
	for _, field := range fields {
		if err := field.validate(); err != nil {
			return nil, err
		}
		if _, exists := set.fields[field.Name]; exists {
			return nil, fmt.Errorf("%w %q", ErrDuplicateField, field.Name)
		}
		set.order = append(set.order, field.Name)
		set.fields[field.Name] = field.clone()
	}
	return set, nil
}

// Evaluate checks raw against the constraints declared for name. Undeclared
// names always pass.
func (s *Set) Evaluate(name, raw string) *Failure {
	if s == nil {
		return nil
	}
	field, ok := s.fields[name]
	if !ok {
		return nil
	}
	return field.Evaluate(raw)
}

// Field returns a copy of the named field.
func (s *Set) Field(name string) (Field, bool) {
	if s == nil {
		return Field{}, false
	}
	field, ok := s.fields[name]
	if !ok {
		return Field{}, false
	}
	return field.clone(), true
}

// Fields returns copies of every field in declaration order.
func (s *Set) Fields() []Field {
	if s == nil {
		return nil
	}
	out := make([]Field, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.fields[name].clone())
	}
	return out
}

// Names returns field names in declaration order.
func (s *Set) Names() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.order...)
}

// Len reports the number of declared fields.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}
