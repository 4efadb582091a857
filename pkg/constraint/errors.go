package constraint

import "errors"

var (
	// ErrUnknownKind reports a zero-value or unrecognised constraint.
	ErrUnknownKind = errors.New("constraint: unknown kind")
	// ErrInvalidBound reports a negative length bound.
	ErrInvalidBound = errors.New("constraint: length bound must not be negative")
	// ErrInvalidPattern reports a pattern that does not compile.
	ErrInvalidPattern = errors.New("constraint: invalid pattern")
	// ErrEmptyEnum reports an enum constraint without allowed values.
	ErrEmptyEnum = errors.New("constraint: enum requires at least one value")
	// ErrFieldNameMissing reports a field declared without a name.
	ErrFieldNameMissing = errors.New("constraint: field name is required")
	// ErrDuplicateField reports two fields with the same name in one set.
	ErrDuplicateField = errors.New("constraint: duplicate field")
)
