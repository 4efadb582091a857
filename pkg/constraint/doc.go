// Package constraint declares per-field validation rules and evaluates raw
// string values against them.
//
// A Field holds an ordered list of Constraints; evaluation stops at the first
// failing constraint and reports its message. A Set maps field names to
// Fields and is the leaf component the schema package composes. All values
// are immutable after construction and safe for concurrent use.
package constraint
