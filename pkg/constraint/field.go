package constraint

import (
	"fmt"
	"slices"
	"strings"
)

// InputType hints which control a renderer should use for a field.
type InputType string

const (
	InputText   InputType = "text"
	InputEmail  InputType = "email"
	InputTel    InputType = "tel"
	InputSelect InputType = "select"
)

// Option is a selectable value for select fields. Label is what renderers show;
// Value is what gets validated and submitted.
type Option struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
}

// Text returns Label, or Value when no label is set.
func (o Option) Text() string {
	if o.Label != "" {
		return o.Label
	}
	return o.Value
}

// Field is the ordered constraint list for one named field, plus the
// presentation metadata renderers need to draw it.
type Field struct {
	Name        string       `json:"name"`
	Input       InputType    `json:"input,omitempty"`
	Label       string       `json:"label,omitempty"`
	Placeholder string       `json:"placeholder,omitempty"`
	Options     []Option     `json:"options,omitempty"`
	Constraints []Constraint `json:"-"`
}

// NewField builds a text field and reports the first construction error
// among its constraints.
func NewField(name string, constraints ...Constraint) (Field, error) {
	field := Field{Name: name, Input: InputText, Constraints: slices.Clone(constraints)}
	if err := field.validate(); err != nil {
		return Field{}, err
	}
	return field, nil
}

// Failure describes the first constraint a field value did not satisfy.
type Failure struct {
	Field   string
	Kind    Kind
	Message string
}

func (f Failure) String() string {
	return fmt.Sprintf("%s: %s (%s)", f.Field, f.Message, f.Kind)
}

// Evaluate runs the constraints in declared order against raw and returns the
// first failure, or nil when every constraint passes.
func (f Field) Evaluate(raw string) *Failure {
	for _, c := range f.Constraints {
		if c.Check(raw) {
			continue
		}
		return &Failure{Field: f.Name, Kind: c.Kind(), Message: c.Message()}
	}
	return nil
}

// SameRules reports whether both fields share a name and an identical
// constraint list. Presentation metadata is not compared.
func (f Field) SameRules(other Field) bool {
	return f.Name == other.Name && slices.EqualFunc(f.Constraints, other.Constraints, Constraint.Equal)
}

// Required reports whether the field declares a Required constraint.
func (f Field) Required() bool {
	return slices.ContainsFunc(f.Constraints, func(c Constraint) bool { return c.Kind() == KindRequired })
}

// Find returns the first constraint of the given kind.
func (f Field) Find(kind Kind) (Constraint, bool) {
	idx := slices.IndexFunc(f.Constraints, func(c Constraint) bool { return c.Kind() == kind })
	if idx < 0 {
		return Constraint{}, false
	}
	return f.Constraints[idx], true
}

// DisplayLabel returns Label or, when unset, the field name.
func (f Field) DisplayLabel() string {
	if label := strings.TrimSpace(f.Label); label != "" {
		return label
	}
	return f.Name
}

func (f Field) validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return ErrFieldNameMissing
	}
	for idx, c := range f.Constraints {
		if err := c.Err(); err != nil {
			return fmt.Errorf("field %q constraint %d: %w", f.Name, idx, err)
		}
	}
	return nil
}

func (f Field) clone() Field {
	out := f
	out.Options = slices.Clone(f.Options)
	out.Constraints = slices.Clone(f.Constraints)
	return out
}
