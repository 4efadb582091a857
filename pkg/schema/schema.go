package schema

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-quoteform/pkg/constraint"
)

// Schema is an ordered, immutable mapping from field name to field rules.
// It is safe for concurrent use.
type Schema struct {
	name   string
	set    *constraint.Set
	origin map[string]string
}

// New builds a schema from fields in declaration order.
func New(name string, fields ...constraint.Field) (*Schema, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameMissing
	}
	set, err := constraint.NewSet(fields...)
	if err != nil {
		return nil, fmt.Errorf("schema %q: %w", name, err)
	}
	origin := make(map[string]string, set.Len())
	for _, fieldName := range set.Names() {
		origin[fieldName] = name
	}
	return &Schema{name: name, set: set, origin: origin}, nil
}

// MustNew is New for static declarations; it panics on error.
func MustNew(name string, fields ...constraint.Field) *Schema {
	s, err := New(name, fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// Compose unions section schemas into a new schema named name. Fields keep
// the order in which sections declare them. A field declared by more than one
// section must carry an identical constraint list in each; otherwise Compose
// returns ErrFieldCollision.
func Compose(name string, sections ...*Schema) (*Schema, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameMissing
	}
	if len(sections) == 0 {
		return nil, fmt.Errorf("schema %q: %w", name, ErrNoSections)
	}

	var fields []constraint.Field
	index := make(map[string]int)
	origin := make(map[string]string)

	for idx, section := range sections {
		if section == nil {
			return nil, fmt.Errorf("schema %q: section %d: %w", name, idx, ErrNilSection)
		}
		for _, field := range section.set.Fields() {
			if pos, seen := index[field.Name]; seen {
				if !fields[pos].SameRules(field) {
					return nil, fmt.Errorf("%w: %q is declared by %q as %s and by %q as %s",
						ErrFieldCollision, field.Name,
						origin[field.Name], describeRules(fields[pos]),
						section.origin[field.Name], describeRules(field))
				}
				continue
			}
			index[field.Name] = len(fields)
			origin[field.Name] = section.origin[field.Name]
			fields = append(fields, field)
		}
	}

	set, err := constraint.NewSet(fields...)
	if err != nil {
		return nil, fmt.Errorf("schema %q: %w", name, err)
	}
	return &Schema{name: name, set: set, origin: origin}, nil
}

// MustCompose is Compose for static declarations; it panics on error.
func MustCompose(name string, sections ...*Schema) *Schema {
	s, err := Compose(name, sections...)
	if err != nil {
		panic(err)
	}
	return s
}

// Name returns the schema name.
func (s *Schema) Name() string {
	if s == nil {
		return ""
	}
	return s.name
}

// Fields returns copies of the declared fields in order.
func (s *Schema) Fields() []constraint.Field {
	if s == nil {
		return nil
	}
	return s.set.Fields()
}

// Field returns a copy of the named field.
func (s *Schema) Field(name string) (constraint.Field, bool) {
	if s == nil {
		return constraint.Field{}, false
	}
	return s.set.Field(name)
}

// Names returns declared field names in order.
func (s *Schema) Names() []string {
	if s == nil {
		return nil
	}
	return s.set.Names()
}

// Origin returns the name of the section that first declared field.
func (s *Schema) Origin(field string) string {
	if s == nil {
		return ""
	}
	return s.origin[field]
}

// Evaluate checks a single field value; see constraint.Set.Evaluate.
func (s *Schema) Evaluate(name, raw string) *constraint.Failure {
	if s == nil {
		return nil
	}
	return s.set.Evaluate(name, raw)
}

func describeRules(field constraint.Field) string {
	parts := make([]string, len(field.Constraints))
	for i, c := range field.Constraints {
		parts[i] = c.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
