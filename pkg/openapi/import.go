package openapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-quoteform/pkg/constraint"
	"github.com/goliatone/go-quoteform/pkg/schema"
)

var (
	// ErrOperationNotFound reports an operation id missing from the document.
	ErrOperationNotFound = errors.New("openapi: operation not found")
	// ErrNoJSONBody reports an operation without an application/json body.
	ErrNoJSONBody = errors.New("openapi: operation has no JSON request body")
	// ErrUnsupportedSchema reports a body schema that is not a flat object of
	// strings.
	ErrUnsupportedSchema = errors.New("openapi: unsupported schema")
)

const jsonMediaType = "application/json"

// Import loads an OpenAPI 3 document (JSON or YAML) and builds a form schema
// from the JSON request body of operationID. External references are not
// followed.
func Import(ctx context.Context, raw []byte, operationID string) (*schema.Schema, error) {
	if len(raw) == 0 {
		return nil, errors.New("openapi: document is empty")
	}

	loader := openapi3.NewLoader()
	loader.Context = ctx
	loader.IsExternalRefsAllowed = false

	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if doc.Paths == nil {
		return nil, fmt.Errorf("%w: %q", ErrOperationNotFound, operationID)
	}

	for _, path := range sortedKeys(doc.Paths.Map()) {
		item := doc.Paths.Value(path)
		for _, op := range item.Operations() {
			if op == nil || op.OperationID != operationID {
				continue
			}
			body := requestSchema(op)
			if body == nil {
				return nil, fmt.Errorf("%w: %q", ErrNoJSONBody, operationID)
			}
			return FromSchema(operationID, body)
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrOperationNotFound, operationID)
}

// FromSchema converts an object schema of string properties into a form
// schema. x-quoteform-* extensions restore rule order, messages and renderer
// metadata; without them fields are sorted by name and rules follow a fixed
// order (required, minLength, maxLength, pattern, email, enum).
func FromSchema(name string, in *openapi3.Schema) (*schema.Schema, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: nil schema", ErrUnsupportedSchema)
	}
	if in.Type != nil && !in.Type.Is(openapi3.TypeObject) {
		return nil, fmt.Errorf("%w: body type %v is not an object", ErrUnsupportedSchema, in.Type.Slice())
	}

	order := fieldOrder(in)
	required := make(map[string]struct{}, len(in.Required))
	for _, fieldName := range in.Required {
		required[fieldName] = struct{}{}
	}

	fields := make([]constraint.Field, 0, len(order))
	for _, fieldName := range order {
		ref := in.Properties[fieldName]
		if ref == nil || ref.Value == nil {
			return nil, fmt.Errorf("%w: property %q has no schema", ErrUnsupportedSchema, fieldName)
		}
		_, isRequired := required[fieldName]
		field, err := convertProperty(fieldName, ref.Value, isRequired)
		if err != nil {
			return nil, err
		}
		fields = append(fields, field)
	}

	return schema.New(name, fields...)
}

func convertProperty(name string, prop *openapi3.Schema, required bool) (constraint.Field, error) {
	if prop.Type != nil && !prop.Type.Is(openapi3.TypeString) {
		return constraint.Field{}, fmt.Errorf("%w: property %q type %v is not a string", ErrUnsupportedSchema, name, prop.Type.Slice())
	}

	field := constraint.Field{
		Name:  name,
		Label: prop.Title,
		Input: constraint.InputText,
	}

	var hint fieldHint
	hasHint, err := decodeExtension(prop.Extensions, fieldExtensionKey, &hint)
	if err != nil {
		return constraint.Field{}, fmt.Errorf("openapi: property %q: %w", name, err)
	}
	if hasHint {
		field.Placeholder = hint.Placeholder
		field.Options = hint.Options
		if hint.Input != "" {
			field.Input = hint.Input
		}
	}
	if !hasHint {
		switch {
		case len(prop.Enum) > 0:
			field.Input = constraint.InputSelect
		case prop.Format == "email":
			field.Input = constraint.InputEmail
		}
	}

	var hints []ruleHint
	if _, err := decodeExtension(prop.Extensions, rulesExtensionKey, &hints); err != nil {
		return constraint.Field{}, fmt.Errorf("openapi: property %q: %w", name, err)
	}
	if hints == nil {
		hints = impliedRules(prop, required)
	}

	for _, h := range hints {
		c, err := buildConstraint(h, prop)
		if err != nil {
			return constraint.Field{}, fmt.Errorf("openapi: property %q: %w", name, err)
		}
		field.Constraints = append(field.Constraints, c)
	}
	return field, nil
}

func impliedRules(prop *openapi3.Schema, required bool) []ruleHint {
	var out []ruleHint
	if required {
		out = append(out, ruleHint{Kind: constraint.KindRequired})
	}
	if prop.MinLength > 0 {
		out = append(out, ruleHint{Kind: constraint.KindMinLength})
	}
	if prop.MaxLength != nil {
		out = append(out, ruleHint{Kind: constraint.KindMaxLength})
	}
	if prop.Pattern != "" {
		out = append(out, ruleHint{Kind: constraint.KindPattern})
	}
	if prop.Format == "email" {
		out = append(out, ruleHint{Kind: constraint.KindEmail})
	}
	if len(prop.Enum) > 0 {
		out = append(out, ruleHint{Kind: constraint.KindEnum})
	}
	return out
}

// buildConstraint prefers the parameters carried by the hint and falls back
// to the property keywords for hand-written documents.
func buildConstraint(h ruleHint, prop *openapi3.Schema) (constraint.Constraint, error) {
	var c constraint.Constraint
	switch h.Kind {
	case constraint.KindRequired:
		c = constraint.Required(h.Message)
	case constraint.KindMinLength:
		limit := int(prop.MinLength)
		if h.Limit != nil {
			limit = *h.Limit
		}
		c = constraint.MinLength(limit, h.Message)
	case constraint.KindMaxLength:
		switch {
		case h.Limit != nil:
			c = constraint.MaxLength(*h.Limit, h.Message)
		case prop.MaxLength != nil:
			c = constraint.MaxLength(int(*prop.MaxLength), h.Message)
		default:
			return c, fmt.Errorf("%w: maxLength rule without maxLength keyword", ErrUnsupportedSchema)
		}
	case constraint.KindPattern:
		expr := h.Expr
		if expr == "" {
			expr = unanchored(prop.Pattern)
		}
		c = constraint.Pattern(expr, h.Message)
	case constraint.KindEmail:
		c = constraint.Email(h.Message)
	case constraint.KindEnum:
		values := h.Values
		if values == nil {
			values = make([]string, 0, len(prop.Enum))
			for _, v := range prop.Enum {
				s, ok := v.(string)
				if !ok {
					return c, fmt.Errorf("%w: enum value %v is not a string", ErrUnsupportedSchema, v)
				}
				values = append(values, s)
			}
		}
		c = constraint.OneOf(values, h.Message)
	default:
		return c, fmt.Errorf("%w: %q", constraint.ErrUnknownKind, h.Kind)
	}
	return c, c.Err()
}

func fieldOrder(in *openapi3.Schema) []string {
	var order []string
	if ok, err := decodeExtension(in.Extensions, orderExtensionKey, &order); ok && err == nil && len(order) == len(in.Properties) {
		return order
	}
	return sortedKeys(in.Properties)
}

// decodeExtension copies an extension value into out. Values arrive as
// json.RawMessage, decoded JSON, or the typed values Export stores, so each is
// normalised through JSON.
func decodeExtension(extensions map[string]any, key string, out any) (bool, error) {
	value, ok := extensions[key]
	if !ok || value == nil {
		return false, nil
	}
	raw, isRaw := value.(json.RawMessage)
	if !isRaw {
		encoded, err := json.Marshal(value)
		if err != nil {
			return true, fmt.Errorf("extension %s: %w", key, err)
		}
		raw = encoded
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return true, fmt.Errorf("extension %s: %w", key, err)
	}
	return true, nil
}

func requestSchema(op *openapi3.Operation) *openapi3.Schema {
	if op.RequestBody == nil || op.RequestBody.Value == nil {
		return nil
	}
	media := op.RequestBody.Value.Content.Get(jsonMediaType)
	if media == nil || media.Schema == nil {
		return nil
	}
	return media.Schema.Value
}

// unanchored strips the wrapper added by anchored. Other patterns are kept
// as written, unless the stripped text would not compile on its own.
func unanchored(expr string) string {
	if !strings.HasPrefix(expr, anchorPrefix) || !strings.HasSuffix(expr, anchorSuffix) {
		return expr
	}
	inner := strings.TrimSuffix(strings.TrimPrefix(expr, anchorPrefix), anchorSuffix)
	if _, err := regexp.Compile(inner); err != nil {
		return expr
	}
	return inner
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
