package schemafile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-quoteform/pkg/constraint"
	"github.com/goliatone/go-quoteform/pkg/schema"
)

var (
	// ErrDuplicateName reports a section or form declared more than once.
	ErrDuplicateName = errors.New("schemafile: duplicate name")
	// ErrUnknownSection reports a form that references an undeclared section.
	ErrUnknownSection = errors.New("schemafile: unknown section")
	// ErrInvalidRule reports a rule that declares zero or several constraints.
	ErrInvalidRule = errors.New("schemafile: rule must declare exactly one constraint")
)

// LoadFS walks fsys and parses every JSON/YAML form document. Sections and
// forms from all files share one namespace. Schemas are built once every file
// is read, so a form may reference sections from any file. When fsys is nil or
// holds no documents, the returned store is empty.
func LoadFS(fsys fs.FS) (*Store, error) {
	merged := documentFile{
		Sections: make(map[string]sectionFile),
		Forms:    make(map[string]formFile),
	}
	if fsys == nil {
		return build(merged)
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isSchemaFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("schemafile: read %s: %w", path, err)
		}
		doc, err := parseDocument(data, path)
		if err != nil {
			return err
		}
		return mergeDocument(&merged, doc, path)
	})
	if err != nil {
		return nil, err
	}

	return build(merged)
}

// Load parses a single document. source names the document in errors.
func Load(data []byte, source string) (*Store, error) {
	doc, err := parseDocument(data, source)
	if err != nil {
		return nil, err
	}
	merged := documentFile{
		Sections: make(map[string]sectionFile),
		Forms:    make(map[string]formFile),
	}
	if err := mergeDocument(&merged, doc, source); err != nil {
		return nil, err
	}
	return build(merged)
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("schemafile: file %s is empty", source)
	}

	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	doc = documentFile{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return documentFile{}, fmt.Errorf("schemafile: parse %s: invalid JSON or YAML: %w", source, err)
	}
	return doc, nil
}

func mergeDocument(dst *documentFile, doc documentFile, source string) error {
	for rawName, section := range doc.Sections {
		name := strings.TrimSpace(rawName)
		if name == "" {
			return fmt.Errorf("schemafile: file %s defines a section with an empty name", source)
		}
		if _, exists := dst.Sections[name]; exists {
			return fmt.Errorf("%w: section %q (file %s)", ErrDuplicateName, name, source)
		}
		dst.Sections[name] = section
	}
	for rawName, form := range doc.Forms {
		name := strings.TrimSpace(rawName)
		if name == "" {
			return fmt.Errorf("schemafile: file %s defines a form with an empty name", source)
		}
		if _, exists := dst.Forms[name]; exists {
			return fmt.Errorf("%w: form %q (file %s)", ErrDuplicateName, name, source)
		}
		dst.Forms[name] = form
	}
	return nil
}

func build(doc documentFile) (*Store, error) {
	store := &Store{
		sections: make(map[string]*schema.Schema, len(doc.Sections)),
		forms:    make(map[string]*schema.Schema, len(doc.Forms)),
		titles:   make(map[string]string, len(doc.Sections)+len(doc.Forms)),
	}

	for _, name := range sortedKeys(doc.Sections) {
		raw := doc.Sections[name]
		fields := make([]constraint.Field, 0, len(raw.Fields))
		for _, rawField := range raw.Fields {
			field, err := normaliseField(rawField)
			if err != nil {
				return nil, fmt.Errorf("schemafile: section %q: %w", name, err)
			}
			fields = append(fields, field)
		}
		section, err := schema.New(name, fields...)
		if err != nil {
			return nil, fmt.Errorf("schemafile: section %q: %w", name, err)
		}
		store.sections[name] = section
		store.titles[name] = raw.Title
	}

	for _, name := range sortedKeys(doc.Forms) {
		raw := doc.Forms[name]
		parts := make([]*schema.Schema, 0, len(raw.Sections))
		for _, ref := range raw.Sections {
			section, ok := store.sections[strings.TrimSpace(ref)]
			if !ok {
				return nil, fmt.Errorf("%w: form %q references %q", ErrUnknownSection, name, ref)
			}
			parts = append(parts, section)
		}
		form, err := schema.Compose(name, parts...)
		if err != nil {
			return nil, fmt.Errorf("schemafile: form %q: %w", name, err)
		}
		store.forms[name] = form
		store.titles[name] = raw.Title
	}

	return store, nil
}

func normaliseField(raw fieldFile) (constraint.Field, error) {
	field := constraint.Field{
		Name:        strings.TrimSpace(raw.Name),
		Input:       constraint.InputType(strings.ToLower(strings.TrimSpace(raw.Input))),
		Label:       raw.Label,
		Placeholder: raw.Placeholder,
		Options:     append([]constraint.Option(nil), raw.Options...),
	}
	if field.Input == "" {
		field.Input = constraint.InputText
		if len(field.Options) > 0 {
			field.Input = constraint.InputSelect
		}
	}

	for idx, rule := range raw.Rules {
		c, err := normaliseRule(rule, field.Options)
		if err != nil {
			return constraint.Field{}, fmt.Errorf("field %q rule %d: %w", field.Name, idx, err)
		}
		field.Constraints = append(field.Constraints, c)
	}
	return field, nil
}

func normaliseRule(rule ruleFile, options []constraint.Option) (constraint.Constraint, error) {
	var (
		out   constraint.Constraint
		count int
	)
	if rule.Required {
		out, count = constraint.Required(rule.Message), count+1
	}
	if rule.MinLength != nil {
		out, count = constraint.MinLength(*rule.MinLength, rule.Message), count+1
	}
	if rule.MaxLength != nil {
		out, count = constraint.MaxLength(*rule.MaxLength, rule.Message), count+1
	}
	if rule.Pattern != "" {
		out, count = constraint.Pattern(rule.Pattern, rule.Message), count+1
	}
	if rule.Email {
		out, count = constraint.Email(rule.Message), count+1
	}
	if len(rule.Enum) > 0 {
		out, count = constraint.OneOf(rule.Enum, rule.Message), count+1
	}
	if rule.OneOfOptions {
		values := make([]string, len(options))
		for i, option := range options {
			values[i] = option.Value
		}
		out, count = constraint.OneOf(values, rule.Message), count+1
	}
	if count != 1 {
		return constraint.Constraint{}, ErrInvalidRule
	}
	return out, nil
}

func isSchemaFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
