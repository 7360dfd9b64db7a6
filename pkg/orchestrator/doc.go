// Package orchestrator wires a form model through transformers, widget
// decorators, theme selection and a named renderer, providing a single entry
// point for the CLI and the demo server.
package orchestrator
