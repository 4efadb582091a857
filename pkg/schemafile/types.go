package schemafile

import (
	"sort"

	"github.com/goliatone/go-quoteform/pkg/constraint"
	"github.com/goliatone/go-quoteform/pkg/schema"
)

// Store keeps the schemas built from form documents. It is safe for
// concurrent readers once LoadFS returns.
type Store struct {
	sections map[string]*schema.Schema
	forms    map[string]*schema.Schema
	titles   map[string]string
}

// Form returns a form or a section by name. Forms shadow sections of the same
// name.
func (s *Store) Form(name string) (*schema.Schema, bool) {
	if s == nil {
		return nil, false
	}
	if form, ok := s.forms[name]; ok {
		return form, true
	}
	section, ok := s.sections[name]
	return section, ok
}

// Title returns the display title declared for a section or form.
func (s *Store) Title(name string) string {
	if s == nil {
		return ""
	}
	return s.titles[name]
}

// Names lists every form and section name, sorted.
func (s *Store) Names() []string {
	if s == nil {
		return nil
	}
	seen := make(map[string]struct{}, len(s.forms)+len(s.sections))
	for name := range s.sections {
		seen[name] = struct{}{}
	}
	for name := range s.forms {
		seen[name] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Empty reports whether the store holds any schema.
func (s *Store) Empty() bool {
	return s == nil || (len(s.sections) == 0 && len(s.forms) == 0)
}

type documentFile struct {
	Sections map[string]sectionFile `json:"sections" yaml:"sections"`
	Forms    map[string]formFile    `json:"forms" yaml:"forms"`
}

type sectionFile struct {
	Title  string      `json:"title" yaml:"title"`
	Fields []fieldFile `json:"fields" yaml:"fields"`
}

type formFile struct {
	Title    string   `json:"title" yaml:"title"`
	Sections []string `json:"sections" yaml:"sections"`
}

type fieldFile struct {
	Name        string              `json:"name" yaml:"name"`
	Input       string              `json:"input,omitempty" yaml:"input,omitempty"`
	Label       string              `json:"label,omitempty" yaml:"label,omitempty"`
	Placeholder string              `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Options     []constraint.Option `json:"options,omitempty" yaml:"options,omitempty"`
	Rules       []ruleFile          `json:"rules,omitempty" yaml:"rules,omitempty"`
}

// ruleFile declares exactly one constraint. oneOfOptions is an enum rule over
// the field's option values.
type ruleFile struct {
	Required     bool     `json:"required,omitempty" yaml:"required,omitempty"`
	MinLength    *int     `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength    *int     `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	Pattern      string   `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Email        bool     `json:"email,omitempty" yaml:"email,omitempty"`
	Enum         []string `json:"enum,omitempty" yaml:"enum,omitempty"`
	OneOfOptions bool     `json:"oneOfOptions,omitempty" yaml:"oneOfOptions,omitempty"`
	Message      string   `json:"message,omitempty" yaml:"message,omitempty"`
}
