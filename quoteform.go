// Package quoteform wires the glulam quote-request forms together: the Go
// declarations in pkg/quote, optional declarative documents loaded through
// pkg/schemafile, and the HTML, terminal and OpenAPI front-ends.
package quoteform

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-quoteform/pkg/openapi"
	"github.com/goliatone/go-quoteform/pkg/quote"
	"github.com/goliatone/go-quoteform/pkg/renderers/vanilla"
	"github.com/goliatone/go-quoteform/pkg/schema"
	"github.com/goliatone/go-quoteform/pkg/schemafile"
)

// ErrUnknownForm reports a form name that is neither declared in Go nor
// loaded from a document.
var ErrUnknownForm = errors.New("quoteform: unknown form")

// Record aliases schema.Record for callers that only import the root package.
type Record = schema.Record

// FieldErrors aliases schema.FieldErrors.
type FieldErrors = schema.FieldErrors

// Result aliases schema.Result.
type Result = schema.Result

// RenderOptions aliases vanilla.RenderOptions.
type RenderOptions = vanilla.RenderOptions

// Option configures a Forms registry.
type Option func(*Forms)

// WithStore registers forms loaded from declarative documents. Document forms
// shadow Go declarations of the same name.
func WithStore(store *schemafile.Store) Option {
	return func(f *Forms) {
		f.store = store
	}
}

// WithHTMLRenderer overrides the renderer used by RenderHTML.
func WithHTMLRenderer(renderer *vanilla.Renderer) Option {
	return func(f *Forms) {
		if renderer != nil {
			f.html = renderer
		}
	}
}

// Forms resolves form names to schemas and drives the renderers.
type Forms struct {
	store *schemafile.Store
	html  *vanilla.Renderer
}

// New builds a registry over the Go-declared quote forms plus any options.
func New(options ...Option) (*Forms, error) {
	f := &Forms{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}
	if f.html == nil {
		renderer, err := vanilla.New()
		if err != nil {
			return nil, fmt.Errorf("quoteform: configure html renderer: %w", err)
		}
		f.html = renderer
	}
	return f, nil
}

// NewFromFS is New with the documents found in fsys registered as a store.
func NewFromFS(fsys fs.FS, options ...Option) (*Forms, error) {
	store, err := schemafile.LoadFS(fsys)
	if err != nil {
		return nil, err
	}
	return New(append([]Option{WithStore(store)}, options...)...)
}

// Lookup returns the schema registered under name.
func (f *Forms) Lookup(name string) (*schema.Schema, error) {
	if f != nil && f.store != nil {
		if s, ok := f.store.Form(name); ok {
			return s, nil
		}
	}
	if s, ok := quote.Form(name); ok {
		return s, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownForm, name)
}

// Title returns the display title of a form, falling back to its name.
func (f *Forms) Title(name string) string {
	if f != nil && f.store != nil {
		if title := f.store.Title(name); title != "" {
			return title
		}
	}
	if name == quote.FormRequest {
		return quote.RequestTitle
	}
	return name
}

// Names lists every resolvable form name, sorted.
func (f *Forms) Names() []string {
	seen := make(map[string]struct{})
	for _, name := range quote.FormNames() {
		seen[name] = struct{}{}
	}
	if f != nil && f.store != nil {
		for _, name := range f.store.Names() {
			seen[name] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Validate validates record against the named form.
func (f *Forms) Validate(name string, record Record) (Result, error) {
	s, err := f.Lookup(name)
	if err != nil {
		return Result{}, err
	}
	return s.Validate(record), nil
}

// RenderHTML renders the named form. When opts.Title is empty the form title
// is used; fields are tagged with the section that declared them.
func (f *Forms) RenderHTML(ctx context.Context, name string, opts RenderOptions) ([]byte, error) {
	s, err := f.Lookup(name)
	if err != nil {
		return nil, err
	}
	if opts.Title == "" {
		opts.Title = f.Title(name)
	}
	if opts.Sections == nil {
		opts.Sections = s.Origin
	}
	return f.html.Render(ctx, s, opts)
}

// OpenAPI builds a document with one operation per named form. With no names
// every registered form is included.
func (f *Forms) OpenAPI(title, version string, names ...string) (*openapi3.T, error) {
	if len(names) == 0 {
		names = f.Names()
	}
	forms := make([]*schema.Schema, 0, len(names))
	for _, name := range names {
		s, err := f.Lookup(name)
		if err != nil {
			return nil, err
		}
		forms = append(forms, s)
	}
	return openapi.Document(title, version, forms...), nil
}

// ValidateRequest validates a raw record against the full quote request and
// decodes it into the typed request.
func ValidateRequest(record Record) (quote.Request, error) {
	return quote.ValidateRequest(record)
}
