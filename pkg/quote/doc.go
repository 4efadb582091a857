// Package quote declares the glulam quote-request form: the customer, glulam
// and project sections, the composed request form, the closed option types
// behind every select field, and the typed records a valid submission decodes
// into.
package quote
