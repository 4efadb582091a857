package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/goliatone/go-quoteform/pkg/constraint"
	"github.com/goliatone/go-quoteform/pkg/schema"
)

const skipOptionLabel = "(skip)"

// Renderer walks a form schema field by field, prompting through a
// PromptDriver and rejecting answers that fail the field's constraints.
type Renderer struct {
	driver        PromptDriver
	outputFormat  OutputFormat
	theme         Theme
	confirmSubmit bool
	pageSize      int
}

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) *Renderer {
	r := &Renderer{
		driver:       defaultDriver(),
		outputFormat: OutputFormatJSON,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Fill prompts for every field of s in declaration order. prefill supplies
// default answers. Each answer is re-asked until it passes the field's
// constraints, so the returned result is always valid unless an error is
// returned.
func (r *Renderer) Fill(ctx context.Context, s *schema.Schema, prefill schema.Record) (schema.Result, error) {
	if ctx == nil {
		return schema.Result{}, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return schema.Result{}, err
	}
	if s == nil {
		return schema.Result{}, ErrNilSchema
	}

	answers := make(schema.Record, len(s.Names()))
	for _, field := range s.Fields() {
		var (
			value string
			err   error
		)
		if field.Input == constraint.InputSelect || len(selectOptions(field)) > 0 {
			value, err = r.promptSelect(ctx, field, prefill[field.Name])
		} else {
			value, err = r.promptInput(ctx, field, prefill[field.Name])
		}
		if err != nil {
			return schema.Result{}, err
		}
		if value != "" {
			answers[field.Name] = value
		}
	}

	if r.confirmSubmit {
		ok, err := r.driver.Confirm(ctx, ConfirmConfig{Message: "Submit " + s.Name() + "?", Default: true})
		if err != nil {
			return schema.Result{}, err
		}
		if !ok {
			return schema.Result{}, ErrDeclined
		}
	}

	return s.Validate(answers), nil
}

// Render fills s and serializes the validated record in the configured
// output format.
func (r *Renderer) Render(ctx context.Context, s *schema.Schema, prefill schema.Record) ([]byte, error) {
	result, err := r.Fill(ctx, s, prefill)
	if err != nil {
		return nil, err
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("tui: collected record is invalid: %w", err)
	}
	return r.Encode(s, result.Record)
}

func (r *Renderer) promptInput(ctx context.Context, field constraint.Field, current string) (string, error) {
	check := func(value string) error {
		if failure := field.Evaluate(value); failure != nil {
			return errors.New(failure.Message)
		}
		return nil
	}

	for {
		response, err := r.driver.Input(ctx, InputConfig{
			Message:   field.DisplayLabel(),
			Default:   current,
			Help:      field.Placeholder,
			Validator: check,
		})
		if err != nil {
			return "", err
		}
		if err := check(response); err != nil {
			r.info(ctx, r.theme.ErrorPrefix+field.DisplayLabel()+": "+err.Error())
			continue
		}
		return response, nil
	}
}

func (r *Renderer) promptSelect(ctx context.Context, field constraint.Field, current string) (string, error) {
	options := selectOptions(field)
	labels := make([]string, 0, len(options)+1)
	values := make([]string, 0, len(options)+1)
	if field.Evaluate("") == nil {
		labels = append(labels, skipOptionLabel)
		values = append(values, "")
	}
	for _, option := range options {
		labels = append(labels, option.Text())
		values = append(values, option.Value)
	}

	defaultIdx := -1
	if current != "" {
		defaultIdx = slices.Index(values, current)
	}

	for {
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      field.DisplayLabel(),
			Options:      labels,
			DefaultIndex: defaultIdx,
			Help:         field.Placeholder,
			PageSize:     r.pageSize,
		})
		if err != nil {
			return "", err
		}
		if idx < 0 || idx >= len(values) {
			r.info(ctx, r.theme.ErrorPrefix+fmt.Sprintf("Invalid %s selection", field.Name))
			continue
		}
		selected := values[idx]
		if failure := field.Evaluate(selected); failure != nil {
			r.info(ctx, r.theme.ErrorPrefix+field.DisplayLabel()+": "+failure.Message)
			continue
		}
		return selected, nil
	}
}

func (r *Renderer) info(ctx context.Context, msg string) {
	_ = r.driver.Info(ctx, msg)
}

// selectOptions prefers the field's declared options and falls back to the
// values allowed by an enum constraint.
func selectOptions(field constraint.Field) []constraint.Option {
	if len(field.Options) > 0 {
		return field.Options
	}
	enum, ok := field.Find(constraint.KindEnum)
	if !ok {
		return nil
	}
	allowed := enum.Allowed()
	out := make([]constraint.Option, len(allowed))
	for i, value := range allowed {
		out[i] = constraint.Option{Value: value}
	}
	return out
}

// Encode serializes record in the configured output format. Form and text
// output follow the declaration order of s.
func (r *Renderer) Encode(s *schema.Schema, record schema.Record) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		values := url.Values{}
		for _, name := range s.Names() {
			if value, ok := record[name]; ok {
				values.Set(name, value)
			}
		}
		return []byte(values.Encode()), nil
	case OutputFormatPrettyText:
		var b strings.Builder
		for _, field := range s.Fields() {
			value, ok := record[field.Name]
			if !ok {
				continue
			}
			fmt.Fprintf(&b, "%s%s: %s\n", r.theme.InfoPrefix, field.DisplayLabel(), value)
		}
		return []byte(b.String()), nil
	default:
		return json.MarshalIndent(record, "", "  ")
	}
}
