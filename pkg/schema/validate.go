package schema

import (
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-quoteform/pkg/constraint"
)

// Record is a raw or validated input record keyed by field name. A key that is
// absent stands for an undefined value, such as an unselected dropdown.
type Record map[string]string

// FieldErrors maps field names to the message of the first constraint that
// failed for that field. Passing fields never appear.
type FieldErrors map[string]string

// Error implements the error interface.
func (fe FieldErrors) Error() string {
	if len(fe) == 0 {
		return "validation error"
	}
	b, err := json.Marshal(map[string]string(fe))
	if err != nil {
		return fmt.Sprintf("validation error (failed to marshal: %v)", err)
	}
	return string(b)
}

// Result is the outcome of one Validate call. Exactly one of Record and
// Errors is populated.
type Result struct {
	Record   Record
	Errors   FieldErrors
	Failures []constraint.Failure
}

// Valid reports whether every declared field passed.
func (r Result) Valid() bool {
	return len(r.Errors) == 0
}

// FailedFields lists the failed field names in schema declaration order.
func (r Result) FailedFields() []string {
	out := make([]string, 0, len(r.Failures))
	for _, failure := range r.Failures {
		out = append(out, failure.Field)
	}
	return out
}

// Err returns the field errors as an error, or nil when the record is valid.
func (r Result) Err() error {
	if r.Valid() {
		return nil
	}
	return r.Errors
}

// Validate evaluates record against every field declared by s. Undeclared keys
// in record are ignored and neither argument is modified.
func Validate(s *Schema, record Record) Result {
	fields := s.Names()
	values := make(Record, len(fields))
	var failures []constraint.Failure

	for _, name := range fields {
		raw := record[name]
		if failure := s.Evaluate(name, raw); failure != nil {
			failures = append(failures, *failure)
			continue
		}
		values[name] = raw
	}

	if len(failures) == 0 {
		return Result{Record: values}
	}
	errs := make(FieldErrors, len(failures))
	for _, failure := range failures {
		errs[failure.Field] = failure.Message
	}
	return Result{Errors: errs, Failures: failures}
}

// Validate is shorthand for Validate(s, record).
func (s *Schema) Validate(record Record) Result {
	return Validate(s, record)
}
