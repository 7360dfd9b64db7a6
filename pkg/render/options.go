package render

import (
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formgen-optgroup/pkg/vocabulary"
)

// RenderOptions describe per-request data that renderers use to customise
// their output without mutating the form model.
type RenderOptions struct {
	// Method overrides the HTTP method declared by the form model.
	Method string
	// Locale selects the language term titles and labels are translated into.
	Locale string
	// Translator resolves message keys. When nil every titled term renders
	// its raw title.
	Translator Translator
	// OnMissing decides what a missing translation renders as.
	OnMissing MissingTranslationHandler
	// Values pre-populates controls keyed by field name. Select widgets accept
	// a token, a term value, or a slice of either.
	Values map[string]any
	// Submitted carries raw submitted form values. When present widgets
	// extract their value from it instead of Values.
	Submitted map[string][]string
	// Errors surfaces server-side validation feedback keyed by field name.
	Errors map[string][]string
	// Vocabularies resolves the named vocabularies fields refer to.
	Vocabularies vocabulary.Provider
	// Display renders widgets in display mode instead of input mode.
	Display bool
	// Theme carries partial overrides, CSS variables and asset resolution
	// selected for this render.
	Theme *theme.RendererConfig
}
