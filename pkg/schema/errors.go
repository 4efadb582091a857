package schema

import "errors"

var (
	// ErrNameMissing reports a schema built without a name.
	ErrNameMissing = errors.New("schema: name is required")
	// ErrNoSections reports a composition without any sections.
	ErrNoSections = errors.New("schema: compose requires at least one section")
	// ErrNilSection reports a nil section passed to Compose.
	ErrNilSection = errors.New("schema: section is nil")
	// ErrFieldCollision reports two sections declaring the same field with
	// different constraint lists.
	ErrFieldCollision = errors.New("schema: field collision")
)
