// Package formgen renders grouped select widgets from declarative form
// documents. It re-exports the orchestrator entry points and the embedded
// vanilla templates so simple callers need a single import.
package formgen
