package openapi

import (
	"net/http"
	"strings"
	"unicode"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-quoteform/pkg/constraint"
	"github.com/goliatone/go-quoteform/pkg/schema"
)

const (
	anchorPrefix = "^(?:"
	anchorSuffix = ")$"
)

const (
	extensionNamespace = "x-quoteform"
	// Object-level: field names in declaration order.
	orderExtensionKey = extensionNamespace + "-order"
	// Object-level: schema name.
	nameExtensionKey = extensionNamespace + "-name"
	// Property-level: ordered rule kinds with their declared messages.
	rulesExtensionKey = extensionNamespace + "-rules"
	// Property-level: renderer metadata.
	fieldExtensionKey = extensionNamespace + "-field"
)

// ruleHint records one rule with its parameters, so a field holding several
// rules of the same kind survives a round trip even though the keyword holds
// only one value.
type ruleHint struct {
	Kind    constraint.Kind `json:"kind"`
	Message string          `json:"message,omitempty"`
	Limit   *int            `json:"limit,omitempty"`
	Expr    string          `json:"pattern,omitempty"`
	Values  []string        `json:"values,omitempty"`
}

func hintFor(c constraint.Constraint) ruleHint {
	h := ruleHint{Kind: c.Kind(), Message: c.DeclaredMessage()}
	switch c.Kind() {
	case constraint.KindMinLength, constraint.KindMaxLength:
		limit := c.Limit()
		h.Limit = &limit
	case constraint.KindPattern:
		h.Expr = c.Expr()
	case constraint.KindEnum:
		h.Values = c.Allowed()
	}
	return h
}

type fieldHint struct {
	Input       constraint.InputType `json:"input,omitempty"`
	Placeholder string               `json:"placeholder,omitempty"`
	Options     []constraint.Option  `json:"options,omitempty"`
}

// Export converts a form schema into an OpenAPI object schema. Length,
// pattern, email and enum rules map onto the matching keywords; a repeated
// rule kind adds an allOf entry carrying the extra keyword. Every field that
// rejects the empty string is listed under "required", since a missing field
// validates as empty. Rule order, parameters, messages and renderer metadata
// travel in x-quoteform-* extensions so Import can rebuild the same schema.
func Export(s *schema.Schema) *openapi3.Schema {
	out := openapi3.NewObjectSchema()
	out.Extensions = map[string]any{
		nameExtensionKey:  s.Name(),
		orderExtensionKey: s.Names(),
	}

	for _, field := range s.Fields() {
		prop := openapi3.NewStringSchema()
		prop.Title = field.Label
		hints := make([]ruleHint, 0, len(field.Constraints))
		seen := make(map[constraint.Kind]bool, len(field.Constraints))

		for _, c := range field.Constraints {
			hints = append(hints, hintFor(c))
			if c.Kind() == constraint.KindRequired {
				continue
			}
			target := prop
			if seen[c.Kind()] {
				target = openapi3.NewStringSchema()
				prop.AllOf = append(prop.AllOf, openapi3.NewSchemaRef("", target))
			}
			seen[c.Kind()] = true
			applyKeyword(target, c)
		}

		if field.Evaluate("") != nil {
			out.Required = append(out.Required, field.Name)
		}
		prop.Extensions = map[string]any{
			rulesExtensionKey: hints,
			fieldExtensionKey: fieldHint{
				Input:       field.Input,
				Placeholder: field.Placeholder,
				Options:     field.Options,
			},
		}
		out.WithProperty(field.Name, prop)
	}
	return out
}

func applyKeyword(target *openapi3.Schema, c constraint.Constraint) {
	switch c.Kind() {
	case constraint.KindMinLength:
		target.WithMinLength(int64(c.Limit()))
	case constraint.KindMaxLength:
		target.WithMaxLength(int64(c.Limit()))
	case constraint.KindPattern:
		target.WithPattern(anchored(c.Expr()))
	case constraint.KindEmail:
		target.WithFormat("email")
	case constraint.KindEnum:
		values := make([]any, 0, len(c.Allowed()))
		for _, v := range c.Allowed() {
			values = append(values, v)
		}
		target.WithEnum(values...)
	}
}

// Document wraps forms in an OpenAPI 3 document with one JSON POST operation
// per form. The operation id is the form name.
func Document(title, version string, forms ...*schema.Schema) *openapi3.T {
	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info:    &openapi3.Info{Title: title, Version: version},
		Paths:   openapi3.NewPaths(),
	}
	for _, form := range forms {
		if form == nil {
			continue
		}
		body := openapi3.NewRequestBody().
			WithRequired(true).
			WithJSONSchema(Export(form))

		op := openapi3.NewOperation()
		op.OperationID = form.Name()
		op.Summary = "Submit " + form.Name()
		op.RequestBody = &openapi3.RequestBodyRef{Value: body}
		op.Responses = openapi3.NewResponses(
			openapi3.WithStatus(http.StatusAccepted, &openapi3.ResponseRef{
				Value: openapi3.NewResponse().WithDescription("Accepted"),
			}),
			openapi3.WithStatus(http.StatusUnprocessableEntity, &openapi3.ResponseRef{
				Value: openapi3.NewResponse().WithDescription("Field errors keyed by field name"),
			}),
		)
		doc.AddOperation("/forms/"+pathSegment(form.Name()), http.MethodPost, op)
	}
	return doc
}

// anchored wraps expr the way constraint.Pattern compiles it. OpenAPI
// patterns are unanchored searches, and a top-level alternation such as
// "^ab|cd" only matches whole values inside a group.
func anchored(expr string) string {
	return anchorPrefix + expr + anchorSuffix
}

func pathSegment(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	return b.String()
}
