// Package model defines the serialisable field descriptions widgets are built
// from. A Field carries its kind, its requiredness, validation rules (the
// maxLength rule doubles as the select height hint) and two free-form maps:
// Metadata for integration data such as the vocabulary name, and UIHints for
// renderer-facing directives such as `widget`, `cssClass` or `prompt`.
// Collection fields describe their element through Items.
package model
