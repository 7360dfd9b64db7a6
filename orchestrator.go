package formgen

import (
	"context"
	"io/fs"

	"github.com/goliatone/go-formgen-optgroup/pkg/model"
	"github.com/goliatone/go-formgen-optgroup/pkg/orchestrator"
	"github.com/goliatone/go-formgen-optgroup/pkg/render"
	"github.com/goliatone/go-formgen-optgroup/pkg/vocabulary"
	theme "github.com/goliatone/go-theme"
)

// RenderOptions describes per-request overrides that renderers can use to
// prefill values or surface server-side validation errors.
type RenderOptions = render.RenderOptions

// Request aliases orchestrator.Request for callers of the top-level package.
type Request = orchestrator.Request

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateHTML renders form with the named renderer (vanilla when empty). It
// is the simplest entry point for callers that just want HTML output.
func GenerateHTML(ctx context.Context, form model.FormModel, rendererName string, renderOptions RenderOptions, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Form:          &form,
		Renderer:      rendererName,
		RenderOptions: renderOptions,
	})
}

// GenerateHTMLFromFS loads the form document at path in fsys and renders it.
func GenerateHTMLFromFS(ctx context.Context, fsys fs.FS, path, rendererName string, renderOptions RenderOptions, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		FormFS:        fsys,
		FormPath:      path,
		Renderer:      rendererName,
		RenderOptions: renderOptions,
	})
}

// WithVocabularies forwards the vocabulary provider fields refer to.
func WithVocabularies(provider vocabulary.Provider) orchestrator.Option {
	return orchestrator.WithVocabularies(provider)
}

// WithTranslator forwards the translator used for term titles and labels.
func WithTranslator(translator render.Translator) orchestrator.Option {
	return orchestrator.WithTranslator(translator)
}

// WithThemeSelector passes a go-theme selector through to the orchestrator so
// theme/variant choices can be resolved ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector)
}

// WithThemeFallbacks forwards fallback partials used when deriving renderer
// configuration from a theme selection.
func WithThemeFallbacks(fallbacks map[string]string) orchestrator.Option {
	return orchestrator.WithThemeFallbacks(fallbacks)
}
