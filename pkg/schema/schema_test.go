package schema_test

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-quoteform/pkg/constraint"
	"github.com/goliatone/go-quoteform/pkg/schema"
)

const firstNameMin = "First name must be at least 2 characters"

func firstNameOnly(t *testing.T) *schema.Schema {
	t.Helper()
	s, err := schema.New("names", constraint.Field{
		Name:        "firstName",
		Constraints: []constraint.Constraint{constraint.MinLength(2, firstNameMin)},
	})
	if err != nil {
		t.Fatalf("new schema: %v", err)
	}
	return s
}

func TestValidateReportsDeclaredFieldsOnly(t *testing.T) {
	s := firstNameOnly(t)
	input := schema.Record{"firstName": "A", "lastName": "Smith"}

	result := s.Validate(input)
	if result.Valid() {
		t.Fatalf("expected invalid result")
	}
	if diff := cmp.Diff(schema.FieldErrors{"firstName": firstNameMin}, result.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if result.Record != nil {
		t.Fatalf("invalid result must not carry a record, got %v", result.Record)
	}
	if diff := cmp.Diff(schema.Record{"firstName": "A", "lastName": "Smith"}, input); diff != "" {
		t.Fatalf("input was mutated (-want +got):\n%s", diff)
	}
}

func TestValidateReturnsDeclaredValues(t *testing.T) {
	s := firstNameOnly(t)

	result := schema.Validate(s, schema.Record{"firstName": "Al", "extra": "ignored"})
	if !result.Valid() {
		t.Fatalf("expected valid result, got %v", result.Errors)
	}
	if diff := cmp.Diff(schema.Record{"firstName": "Al"}, result.Record); diff != "" {
		t.Fatalf("record mismatch (-want +got):\n%s", diff)
	}
	if result.Err() != nil {
		t.Fatalf("valid result should have nil Err, got %v", result.Err())
	}
}

func TestValidateMissingFieldIsEmpty(t *testing.T) {
	s := schema.MustNew("span", constraint.Field{
		Name:        "spanLength",
		Input:       constraint.InputSelect,
		Constraints: []constraint.Constraint{constraint.Required("Please select a span length"), constraint.OneOf([]string{"40 ft"}, "")},
	})

	missing := s.Validate(schema.Record{})
	empty := s.Validate(schema.Record{"spanLength": ""})
	if diff := cmp.Diff(missing, empty); diff != "" {
		t.Fatalf("missing and empty should match (-missing +empty):\n%s", diff)
	}
	if got := missing.Errors["spanLength"]; got != "Please select a span length" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestValidateCollectsEveryFailingField(t *testing.T) {
	s := schema.MustNew("customer",
		constraint.Field{Name: "firstName", Constraints: []constraint.Constraint{constraint.MinLength(2, "first")}},
		constraint.Field{Name: "lastName", Constraints: []constraint.Constraint{constraint.MinLength(2, "last")}},
		constraint.Field{Name: "email", Constraints: []constraint.Constraint{constraint.Email("email")}},
	)

	result := s.Validate(schema.Record{"firstName": "Ada", "lastName": "L", "email": "nope"})

	if diff := cmp.Diff(schema.FieldErrors{"lastName": "last", "email": "email"}, result.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"lastName", "email"}, result.FailedFields()); diff != "" {
		t.Fatalf("failure order mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(result.Err().Error(), `"lastName":"last"`) {
		t.Fatalf("error text should list field messages, got %q", result.Err())
	}
}

func TestValidateIsIdempotent(t *testing.T) {
	s := firstNameOnly(t)
	input := schema.Record{"firstName": "A"}

	first := s.Validate(input)
	second := s.Validate(input)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("results differ (-first +second):\n%s", diff)
	}
}

func TestValidateNilSchema(t *testing.T) {
	var s *schema.Schema
	result := s.Validate(schema.Record{"anything": "x"})
	if !result.Valid() || len(result.Record) != 0 {
		t.Fatalf("nil schema should accept with an empty record, got %+v", result)
	}
}

func TestComposeRejectsConflictingFields(t *testing.T) {
	customer := schema.MustNew("customer", constraint.Field{
		Name: "company",
		Constraints: []constraint.Constraint{
			constraint.MinLength(2, "Company name must be at least 2 characters"),
			constraint.MaxLength(100, "Company name must be less than 100 characters"),
		},
	})
	draft := schema.MustNew("rfq-draft", constraint.Field{
		Name:        "company",
		Constraints: []constraint.Constraint{constraint.MinLength(2, "Company name must be at least 2 characters")},
	})

	_, err := schema.Compose("request", customer, draft)
	if !errors.Is(err, schema.ErrFieldCollision) {
		t.Fatalf("expected ErrFieldCollision, got %v", err)
	}
	for _, want := range []string{`"company"`, `"customer"`, `"rfq-draft"`} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q should mention %s", err, want)
		}
	}
}

func TestComposeMergesIdenticalFields(t *testing.T) {
	email := constraint.Field{Name: "email", Constraints: []constraint.Constraint{constraint.Email("bad email")}}
	a := schema.MustNew("a", email, constraint.Field{Name: "first"})
	b := schema.MustNew("b", constraint.Field{Name: "second"}, email)

	merged, err := schema.Compose("ab", a, b)
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if diff := cmp.Diff([]string{"email", "first", "second"}, merged.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if merged.Origin("second") != "b" || merged.Origin("email") != "a" {
		t.Fatalf("unexpected origins: email=%q second=%q", merged.Origin("email"), merged.Origin("second"))
	}
}

func TestComposeTracksOriginThroughNesting(t *testing.T) {
	a := schema.MustNew("a", constraint.Field{Name: "x", Constraints: []constraint.Constraint{constraint.Required("")}})
	b := schema.MustNew("b", constraint.Field{Name: "y"})
	ab := schema.MustCompose("ab", a, b)
	c := schema.MustNew("c", constraint.Field{Name: "x"})

	_, err := schema.Compose("abc", ab, c)
	if !errors.Is(err, schema.ErrFieldCollision) {
		t.Fatalf("expected collision, got %v", err)
	}
	if !strings.Contains(err.Error(), `by "a"`) {
		t.Fatalf("collision should name the declaring section, got %q", err)
	}
}

func TestComposeArgumentErrors(t *testing.T) {
	a := schema.MustNew("a")
	cases := []struct {
		name    string
		compose func() error
		wantErr error
	}{
		{name: "empty name", compose: func() error { _, err := schema.Compose(" ", a); return err }, wantErr: schema.ErrNameMissing},
		{name: "no sections", compose: func() error { _, err := schema.Compose("x"); return err }, wantErr: schema.ErrNoSections},
		{name: "nil section", compose: func() error { _, err := schema.Compose("x", a, nil); return err }, wantErr: schema.ErrNilSection},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.compose(); !errors.Is(err, tc.wantErr) {
				t.Fatalf("got %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestNewPropagatesFieldErrors(t *testing.T) {
	_, err := schema.New("broken", constraint.Field{Name: "a"}, constraint.Field{Name: "a"})
	if !errors.Is(err, constraint.ErrDuplicateField) {
		t.Fatalf("expected duplicate field error, got %v", err)
	}
	if _, err := schema.New(""); !errors.Is(err, schema.ErrNameMissing) {
		t.Fatalf("expected ErrNameMissing, got %v", err)
	}
}

func TestValidateConcurrentCallers(t *testing.T) {
	s := firstNameOnly(t)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			value := "A"
			if i%2 == 0 {
				value = "Al"
			}
			result := s.Validate(schema.Record{"firstName": value})
			if result.Valid() != (i%2 == 0) {
				t.Errorf("caller %d: unexpected validity %v", i, result.Valid())
			}
		}(i)
	}
	wg.Wait()
}
