package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formgen-optgroup/pkg/model"
	"github.com/goliatone/go-formgen-optgroup/pkg/render"
	"github.com/goliatone/go-formgen-optgroup/pkg/renderers/vanilla"
	"github.com/goliatone/go-formgen-optgroup/pkg/vocabulary"
	"github.com/goliatone/go-formgen-optgroup/pkg/widgets"
	"github.com/goliatone/go-formgen-optgroup/pkg/widgets/optgroup"
)

const defaultRendererName = "vanilla"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithVocabularies sets the provider used when a request does not carry one.
func WithVocabularies(provider vocabulary.Provider) Option {
	return func(o *Orchestrator) {
		o.vocabularies = provider
	}
}

// WithTranslator sets the translator used when a request does not carry one.
func WithTranslator(translator render.Translator) Option {
	return func(o *Orchestrator) {
		o.translator = translator
	}
}

// WithMissingTranslationHandler sets the handler used when a request does not
// carry one.
func WithMissingTranslationHandler(handler render.MissingTranslationHandler) Option {
	return func(o *Orchestrator) {
		o.onMissing = handler
	}
}

// WithSchemaTransformer registers a Transformer that can mutate form models
// before the widget decorators run.
func WithSchemaTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// WithUIDecorators registers decorators that run against the form model
// before rendering. The widget registry decorator always runs last.
func WithUIDecorators(decorators ...model.Decorator) Option {
	return func(o *Orchestrator) {
		if len(decorators) == 0 {
			return
		}
		o.decorators = append(o.decorators, decorators...)
	}
}

// WithWidgetRegistry overrides the widget registry used to annotate fields
// with their resolved widget name.
func WithWidgetRegistry(reg *widgets.Registry) Option {
	return func(o *Orchestrator) {
		o.widgets = reg
	}
}

// Orchestrator coordinates the pipeline from form document to rendered output.
// It defaults to the vanilla renderer while remaining open to dependency
// injection.
type Orchestrator struct {
	registry        *render.Registry
	defaultRenderer string
	vocabularies    vocabulary.Provider
	translator      render.Translator
	onMissing       render.MissingTranslationHandler
	transformer     Transformer
	decorators      []model.Decorator
	widgets         *widgets.Registry
	themeSelector   theme.ThemeSelector
	themeFallbacks  map[string]string
	assetPrefix     string
	initialiseErr   error
	defaultsApplied bool
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		assetPrefix:     defaultAssetPrefix,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes the inputs required to render a form.
type Request struct {
	// Form is rendered as is when set.
	Form *model.FormModel

	// FormFS and FormPath locate a form document to load when Form is nil.
	FormFS   fs.FS
	FormPath string

	// Renderer names the renderer to use. If empty, the orchestrator falls back
	// to the configured default renderer.
	Renderer string

	// ThemeName and ThemeVariant are passed to the theme selector.
	ThemeName    string
	ThemeVariant string

	// RenderOptions carries per-request values, submissions, errors and
	// locale. Empty vocabulary/translator slots are filled from the
	// orchestrator defaults.
	RenderOptions render.RenderOptions
}

// Generate resolves the form, applies transformers and decorators, and renders
// it with the requested renderer.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}

	form, err := o.Form(ctx, req)
	if err != nil {
		return nil, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	options := req.RenderOptions
	if options.Vocabularies == nil {
		options.Vocabularies = o.vocabularies
	}
	if options.Translator == nil {
		options.Translator = o.translator
	}
	if options.OnMissing == nil {
		options.OnMissing = o.onMissing
	}
	if options.Theme == nil {
		cfg, err := o.resolveTheme(req)
		if err != nil {
			return nil, err
		}
		options.Theme = cfg
	}

	output, err := renderer.Render(ctx, form, options)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

// Form returns the request's form model after transformers and decorators
// ran. The caller's model is not mutated.
func (o *Orchestrator) Form(ctx context.Context, req Request) (model.FormModel, error) {
	form, err := resolveForm(req)
	if err != nil {
		return model.FormModel{}, err
	}
	if err := o.applyTransformer(ctx, &form); err != nil {
		return model.FormModel{}, err
	}
	if err := o.applyDecorators(&form); err != nil {
		return model.FormModel{}, err
	}
	return form, nil
}

// Renderers lists the registered renderer names.
func (o *Orchestrator) Renderers() []string {
	if o.registry == nil {
		return nil
	}
	return o.registry.List()
}

func resolveForm(req Request) (model.FormModel, error) {
	if req.Form != nil {
		return cloneForm(*req.Form), nil
	}
	if req.FormFS == nil || strings.TrimSpace(req.FormPath) == "" {
		return model.FormModel{}, errors.New("orchestrator: form or form path is required")
	}
	form, err := model.LoadForm(req.FormFS, req.FormPath)
	if err != nil {
		return model.FormModel{}, fmt.Errorf("orchestrator: load form: %w", err)
	}
	return form, nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}

	renderer, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDecorators(form *model.FormModel) error {
	if form == nil {
		return nil
	}
	decorators := append([]model.Decorator(nil), o.decorators...)
	if o.widgets != nil {
		decorators = append(decorators, o.widgets)
	}
	for _, decorator := range decorators {
		if decorator == nil {
			continue
		}
		if err := decorator.Decorate(form); err != nil {
			return fmt.Errorf("orchestrator: decorate form: %w", err)
		}
	}
	return nil
}

func (o *Orchestrator) applyTransformer(ctx context.Context, form *model.FormModel) error {
	if o.transformer == nil || form == nil {
		return nil
	}
	if err := o.transformer.Transform(ctx, form); err != nil {
		return fmt.Errorf("orchestrator: transform form: %w", err)
	}
	return nil
}

func (o *Orchestrator) applyDefaults() {
	if o.defaultsApplied {
		return
	}

	if o.widgets == nil {
		o.widgets = widgets.NewRegistry()
		optgroup.Register(o.widgets, optgroup.DefaultPriority)
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := vanilla.New(vanilla.WithWidgetRegistry(o.widgets))
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		} else {
			o.registry.MustRegister(renderer)
		}
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}

	o.defaultsApplied = true
}

func cloneForm(form model.FormModel) model.FormModel {
	out := form
	out.Metadata = cloneStringMap(form.Metadata)
	out.Fields = make([]model.Field, len(form.Fields))
	for idx, field := range form.Fields {
		out.Fields[idx] = cloneField(field)
	}
	return out
}

func cloneField(field model.Field) model.Field {
	out := field
	out.Metadata = cloneStringMap(field.Metadata)
	out.UIHints = cloneStringMap(field.UIHints)
	if field.Enum != nil {
		out.Enum = append([]any(nil), field.Enum...)
	}
	if field.Validations != nil {
		out.Validations = append([]model.ValidationRule(nil), field.Validations...)
	}
	if field.Items != nil {
		items := cloneField(*field.Items)
		out.Items = &items
	}
	return out
}

func cloneStringMap(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}
