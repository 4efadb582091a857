// Package schema composes constraint sets into named form schemas and
// validates whole input records against them.
//
// A Schema is built once, either directly from fields (New) or as the union of
// section schemas (Compose), and is immutable afterwards. Composition fails
// fast when two sections declare the same field with different rules, so a
// section validated on its own and the same section inside a larger form can
// never disagree.
//
// Validate evaluates every declared field, ignores undeclared record keys, and
// returns either the declared values or one message per failing field.
package schema
