package vanilla

import (
	"context"
	"errors"
	"io/fs"
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-quoteform/pkg/constraint"
	"github.com/goliatone/go-quoteform/pkg/schema"
)

// ErrNilSchema is returned when Render is called without a form schema.
var ErrNilSchema = errors.New("vanilla: schema is nil")

// Option configures a Renderer.
type Option func(*config)

type config struct {
	templateFS  fs.FS
	templateDir string
	submitLabel string
	method      string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS. The bundle
// must contain form.tpl.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.templateFS = files
		}
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateDir = path
		cfg.templateFS = nil
	}
}

// WithSubmitLabel overrides the submit button text.
func WithSubmitLabel(label string) Option {
	return func(cfg *config) {
		if label != "" {
			cfg.submitLabel = label
		}
	}
}

// WithMethod overrides the form method (POST by default).
func WithMethod(method string) Option {
	return func(cfg *config) {
		if method != "" {
			cfg.method = strings.ToUpper(method)
		}
	}
}

// RenderOptions carries per-request state: the values to echo back and the
// field errors of the last submission.
type RenderOptions struct {
	Title  string
	Action string
	Values schema.Record
	Errors schema.FieldErrors
	// Sections maps field names to a section label emitted as data-section.
	Sections func(field string) string
}

// Renderer produces server-side HTML for a form schema.
type Renderer struct {
	engine      *engine
	submitLabel string
	method      string
}

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS:  TemplatesFS(),
		submitLabel: "Request Quote",
		method:      "POST",
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	eng, err := newEngine(cfg.templateFS, cfg.templateDir)
	if err != nil {
		return nil, err
	}
	return &Renderer{engine: eng, submitLabel: cfg.submitLabel, method: cfg.method}, nil
}

// Name identifies the renderer.
func (r *Renderer) Name() string {
	return "vanilla"
}

// ContentType reports the media type of rendered output.
func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render emits one labelled control per field in declaration order. Select
// fields list their options and mark the current value; text fields carry
// HTML length hints. A field with an entry in opts.Errors is flagged invalid
// and shows the message.
func (r *Renderer) Render(ctx context.Context, s *schema.Schema, opts RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil {
		return nil, ErrNilSchema
	}

	fields := make([]pongo2.Context, 0, len(s.Names()))
	for _, field := range s.Fields() {
		view := fieldView(field, opts.Values[field.Name], opts.Errors[field.Name])
		if opts.Sections != nil {
			view["section"] = opts.Sections(field.Name)
		}
		fields = append(fields, view)
	}

	return r.engine.render(FormTemplate, pongo2.Context{
		"form": pongo2.Context{
			"id":     controlID(s.Name()),
			"title":  plainText(opts.Title),
			"action": opts.Action,
			"method": r.method,
			"submit": plainText(r.submitLabel),
		},
		"fields": fields,
	})
}

func fieldView(field constraint.Field, value, message string) pongo2.Context {
	input := field.Input
	if input == "" {
		input = constraint.InputText
	}

	view := pongo2.Context{
		"id":          controlID(field.Name),
		"name":        field.Name,
		"label":       plainText(field.DisplayLabel()),
		"placeholder": plainText(field.Placeholder),
		"input":       string(input),
		"required":    field.Required(),
		"value":       value,
		"error":       plainText(message),
	}
	if c, ok := field.Find(constraint.KindMinLength); ok && c.Limit() > 0 {
		view["minlength"] = c.Limit()
	}
	if c, ok := field.Find(constraint.KindMaxLength); ok {
		view["maxlength"] = c.Limit()
	}

	if input == constraint.InputSelect {
		options := field.Options
		if len(options) == 0 {
			if enum, ok := field.Find(constraint.KindEnum); ok {
				for _, allowed := range enum.Allowed() {
					options = append(options, constraint.Option{Value: allowed})
				}
			}
		}
		views := make([]pongo2.Context, 0, len(options))
		for _, option := range options {
			views = append(views, pongo2.Context{
				"value":    option.Value,
				"label":    plainText(option.Text()),
				"selected": option.Value == value,
			})
		}
		view["options"] = views
	}
	return view
}

func controlID(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}
	return "qf-" + trimmed
}
