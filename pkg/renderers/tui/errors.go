package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrNilSchema is returned when Fill is called without a form schema.
	ErrNilSchema = errors.New("tui: schema is nil")
	// ErrDeclined is returned when the user declines the submit confirmation.
	ErrDeclined = errors.New("tui: submission declined")
)
