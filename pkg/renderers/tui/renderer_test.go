package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-quoteform/pkg/constraint"
	"github.com/goliatone/go-quoteform/pkg/quote"
	"github.com/goliatone/go-quoteform/pkg/schema"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	confirm      []bool
	inputCfgs    []InputConfig
	selectCfgs   []SelectConfig
	infoMessages []string
	inputPos     int
	selectPos    int
	confirmPos   int
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	s.inputCfgs = append(s.inputCfgs, cfg)
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.selectCfgs = append(s.selectCfgs, cfg)
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func TestFill_RepromptsUntilValid(t *testing.T) {
	driver := &stubDriver{
		inputs: []string{"A", "Ada", "Lovelace", "Analytical Engines", "ada@example", "ada@example.com", "555-0100", "555-010-0100"},
	}
	r := New(WithPromptDriver(driver), WithTheme(Theme{ErrorPrefix: "! "}))

	result, err := r.Fill(context.Background(), quote.CustomerSchema(), nil)
	if err != nil {
		t.Fatalf("fill: %v", err)
	}
	if !result.Valid() {
		t.Fatalf("expected valid result, got %v", result.Errors)
	}

	wantRecord := schema.Record{
		"firstName": "Ada",
		"lastName":  "Lovelace",
		"company":   "Analytical Engines",
		"email":     "ada@example.com",
		"phone":     "555-010-0100",
	}
	if diff := cmp.Diff(wantRecord, result.Record); diff != "" {
		t.Fatalf("record mismatch (-want +got):\n%s", diff)
	}

	wantInfo := []string{
		"! First Name: First name must be at least 2 characters",
		"! Email: Please enter a valid email address",
		"! Phone: Please enter a valid phone number",
	}
	if diff := cmp.Diff(wantInfo, driver.infoMessages); diff != "" {
		t.Fatalf("info messages mismatch (-want +got):\n%s", diff)
	}
}

func TestFill_SelectUsesOptionLabels(t *testing.T) {
	driver := &stubDriver{selectIdx: []int{9, 0, 1, 2}}
	r := New(WithPromptDriver(driver), WithPageSize(4))

	result, err := r.Fill(context.Background(), quote.GlulamSchema(), schema.Record{
		quote.FieldSpanLength: string(quote.Span10To20),
	})
	if err != nil {
		t.Fatalf("fill: %v", err)
	}

	want := schema.Record{
		quote.FieldApplicationType: string(quote.ApplicationTypes()[0]),
		quote.FieldSpanLength:      string(quote.Span10To20),
		quote.FieldBeamDimensions:  string(quote.BeamDimensionOptions()[2]),
	}
	if diff := cmp.Diff(want, result.Record); diff != "" {
		t.Fatalf("record mismatch (-want +got):\n%s", diff)
	}

	if len(driver.infoMessages) != 1 || !strings.Contains(driver.infoMessages[0], "Invalid applicationType selection") {
		t.Fatalf("expected out-of-range warning, got %v", driver.infoMessages)
	}
	span := driver.selectCfgs[2]
	if span.DefaultIndex != 1 || span.Options[0] != "Less than 10 ft" || span.PageSize != 4 {
		t.Fatalf("unexpected span prompt %+v", span)
	}
}

func TestFill_OptionalSelectOffersSkip(t *testing.T) {
	s := schema.MustNew("prefs",
		constraint.Field{
			Name:    "grade",
			Input:   constraint.InputSelect,
			Options: []constraint.Option{{Value: "A"}, {Value: "B"}},
		},
		constraint.Field{
			Name:        "tier",
			Constraints: []constraint.Constraint{constraint.OneOf([]string{"gold", "silver"}, "")},
		},
	)
	driver := &stubDriver{selectIdx: []int{0, 1}}

	result, err := New(WithPromptDriver(driver)).Fill(context.Background(), s, nil)
	if err != nil {
		t.Fatalf("fill: %v", err)
	}
	if diff := cmp.Diff([]string{skipOptionLabel, "A", "B"}, driver.selectCfgs[0].Options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"gold", "silver"}, driver.selectCfgs[1].Options); diff != "" {
		t.Fatalf("enum-only field should not offer skip (-want +got):\n%s", diff)
	}
	want := schema.Record{"grade": "", "tier": "silver"}
	if diff := cmp.Diff(want, result.Record); diff != "" {
		t.Fatalf("record mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_OutputFormats(t *testing.T) {
	s := schema.MustNew("contact",
		constraint.Field{Name: "name", Label: "Name", Constraints: []constraint.Constraint{constraint.Required("")}},
		constraint.Field{Name: "note"},
	)
	cases := map[OutputFormat]string{
		OutputFormatJSON:           "{\n  \"name\": \"Ada L\",\n  \"note\": \"hi\"\n}",
		OutputFormatFormURLEncoded: "name=Ada+L&note=hi",
		OutputFormatPrettyText:     "Name: Ada L\nnote: hi\n",
	}
	for format, want := range cases {
		t.Run(string(format), func(t *testing.T) {
			driver := &stubDriver{inputs: []string{"Ada L", "hi"}}
			r := New(WithPromptDriver(driver), WithOutputFormat(format))
			out, err := r.Render(context.Background(), s, nil)
			if err != nil {
				t.Fatalf("render: %v", err)
			}
			if diff := cmp.Diff(want, string(out)); diff != "" {
				t.Fatalf("output mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFill_ConfirmAndErrors(t *testing.T) {
	s := schema.MustNew("contact", constraint.Field{Name: "name"})

	declined := &stubDriver{inputs: []string{"x"}, confirm: []bool{false}}
	if _, err := New(WithPromptDriver(declined), WithConfirmSubmit(true)).Fill(context.Background(), s, nil); !errors.Is(err, ErrDeclined) {
		t.Fatalf("expected ErrDeclined, got %v", err)
	}

	if _, err := New(WithPromptDriver(&stubDriver{})).Fill(context.Background(), nil, nil); !errors.Is(err, ErrNilSchema) {
		t.Fatalf("expected ErrNilSchema, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New(WithPromptDriver(&stubDriver{})).Fill(ctx, s, nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	if _, err := New(WithPromptDriver(&stubDriver{})).Fill(context.Background(), s, nil); err == nil {
		t.Fatalf("driver errors should propagate")
	}
}

func TestContentType(t *testing.T) {
	if got := New(WithOutputFormat(OutputFormatPrettyText)).ContentType(); got != "text/plain" {
		t.Fatalf("content type = %q", got)
	}
	if got := New().ContentType(); got != "application/json" {
		t.Fatalf("content type = %q", got)
	}
}
