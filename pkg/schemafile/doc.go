// Package schemafile builds form schemas from declarative JSON or YAML
// documents, so a form can be declared as data instead of Go code.
//
// A document declares named sections (ordered field lists with their rules)
// and named forms (ordered lists of sections). Every section is also usable
// as a form on its own. Forms are composed with schema.Compose, so a field
// declared differently by two sections of one form is rejected at load time.
package schemafile
