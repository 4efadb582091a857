package constraint

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Kind identifies a constraint variant. Values double as stable error codes and
// match the keyword names used by JSON Schema / OpenAPI where one exists.
type Kind string

const (
	KindRequired  Kind = "required"
	KindMinLength Kind = "minLength"
	KindMaxLength Kind = "maxLength"
	KindPattern   Kind = "pattern"
	KindEmail     Kind = "email"
	KindEnum      Kind = "enum"
)

// PhonePattern accepts (123) 456-7890, 123-456-7890, 123.456.7890 and
// 1234567890.
const PhonePattern = `^\(?([0-9]{3})\)?[-. ]?([0-9]{3})[-. ]?([0-9]{4})$`

// Constraint is a single pass/fail rule plus the message reported when it
// fails. Build values with the constructors below; the zero value is invalid.
// Constraints are immutable and safe for concurrent use.
type Constraint struct {
	kind    Kind
	message string
	limit   int
	pattern string
	allowed []string

	re  *regexp.Regexp
	err error
}

// Required fails on empty values. Missing fields are evaluated as empty.
func Required(message string) Constraint {
	return Constraint{kind: KindRequired, message: message}
}

// MinLength fails when the value has fewer than n characters.
func MinLength(n int, message string) Constraint {
	c := Constraint{kind: KindMinLength, message: message, limit: n}
	if n < 0 {
		c.err = fmt.Errorf("%w: minLength %d", ErrInvalidBound, n)
	}
	return c
}

// MaxLength fails when the value has more than n characters.
func MaxLength(n int, message string) Constraint {
	c := Constraint{kind: KindMaxLength, message: message, limit: n}
	if n < 0 {
		c.err = fmt.Errorf("%w: maxLength %d", ErrInvalidBound, n)
	}
	return c
}

// Pattern fails when the whole value does not match expr. The expression is
// anchored on both ends, so callers may omit ^ and $.
func Pattern(expr, message string) Constraint {
	c := Constraint{kind: KindPattern, message: message, pattern: expr}
	re, err := regexp.Compile(`^(?:` + expr + `)$`)
	if err != nil {
		c.err = fmt.Errorf("%w: %q: %v", ErrInvalidPattern, expr, err)
		return c
	}
	c.re = re
	return c
}

// Email fails when the value is not a syntactically valid address with a
// dotted domain.
func Email(message string) Constraint {
	return Constraint{kind: KindEmail, message: message}
}

// OneOf fails unless the value equals one of allowed exactly. No case folding
// or trimming is applied.
func OneOf(allowed []string, message string) Constraint {
	c := Constraint{kind: KindEnum, message: message, allowed: slices.Clone(allowed)}
	if len(allowed) == 0 {
		c.err = ErrEmptyEnum
	}
	return c
}

// Kind reports the constraint variant.
func (c Constraint) Kind() Kind { return c.kind }

// Limit returns the bound of a length constraint.
func (c Constraint) Limit() int { return c.limit }

// Expr returns the pattern source as declared.
func (c Constraint) Expr() string { return c.pattern }

// Allowed returns a copy of the enum values.
func (c Constraint) Allowed() []string { return slices.Clone(c.allowed) }

// DeclaredMessage returns the message as declared, which may be empty.
func (c Constraint) DeclaredMessage() string { return c.message }

// Message returns the failure message, falling back to a default per kind.
func (c Constraint) Message() string {
	if strings.TrimSpace(c.message) != "" {
		return c.message
	}
	switch c.kind {
	case KindRequired:
		return "Required"
	case KindMinLength:
		return "Must contain at least " + strconv.Itoa(c.limit) + " character(s)"
	case KindMaxLength:
		return "Must contain at most " + strconv.Itoa(c.limit) + " character(s)"
	case KindPattern:
		return "Invalid format"
	case KindEmail:
		return "Invalid email"
	case KindEnum:
		quoted := make([]string, len(c.allowed))
		for i, v := range c.allowed {
			quoted[i] = "'" + v + "'"
		}
		return "Invalid enum value. Expected " + strings.Join(quoted, " | ")
	default:
		return "Invalid value"
	}
}

// Err reports a construction problem, such as an invalid regular expression.
func (c Constraint) Err() error {
	if c.kind == "" {
		return ErrUnknownKind
	}
	return c.err
}

// Check reports whether value satisfies the constraint. It never panics; a
// constraint that failed construction rejects every value.
func (c Constraint) Check(value string) bool {
	if c.err != nil {
		return false
	}
	switch c.kind {
	case KindRequired:
		return value != ""
	case KindMinLength:
		return utf8.RuneCountInString(value) >= c.limit
	case KindMaxLength:
		return utf8.RuneCountInString(value) <= c.limit
	case KindPattern:
		return c.re != nil && c.re.MatchString(value)
	case KindEmail:
		return isEmail(value)
	case KindEnum:
		return slices.Contains(c.allowed, value)
	default:
		return false
	}
}

// Equal reports whether two constraints declare the same rule and message.
func (c Constraint) Equal(other Constraint) bool {
	return c.kind == other.kind &&
		c.message == other.message &&
		c.limit == other.limit &&
		c.pattern == other.pattern &&
		slices.Equal(c.allowed, other.allowed)
}

// String renders the constraint for diagnostics, e.g. minLength(2).
func (c Constraint) String() string {
	switch c.kind {
	case KindMinLength, KindMaxLength:
		return fmt.Sprintf("%s(%d)", c.kind, c.limit)
	case KindPattern:
		return fmt.Sprintf("%s(%q)", c.kind, c.pattern)
	case KindEnum:
		return fmt.Sprintf("%s(%s)", c.kind, strings.Join(c.allowed, ", "))
	default:
		return string(c.kind)
	}
}
