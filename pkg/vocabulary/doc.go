// Package vocabulary holds the option terms select widgets render.
//
// A Term pairs a value with the token used on the wire, an optional title and
// an optional optgroup label. Terms live in an ordered Vocabulary whose tokens
// are unique; widgets look terms up by token when converting submissions and
// by value when pre-populating a form.
//
// Vocabularies can be declared in code, loaded from YAML/JSON files (LoadFS)
// or derived from an OpenAPI schema whose oneOf branches carry an
// `x-optgroup` extension (FromOpenAPI). Named vocabularies are served to
// widgets through a Provider, typically a Registry.
package vocabulary
