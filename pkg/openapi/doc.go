// Package openapi converts form schemas to and from OpenAPI 3 object schemas
// using kin-openapi. Export keeps the standard keywords (required, minLength,
// maxLength, pattern, format, enum) in sync with the constraints so generic
// OpenAPI tooling can validate submissions too.
package openapi
