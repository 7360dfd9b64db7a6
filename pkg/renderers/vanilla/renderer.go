package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formgen-optgroup/pkg/model"
	"github.com/goliatone/go-formgen-optgroup/pkg/render"
	rendertemplate "github.com/goliatone/go-formgen-optgroup/pkg/render/template"
	"github.com/goliatone/go-formgen-optgroup/pkg/render/template/gotemplate"
	"github.com/goliatone/go-formgen-optgroup/pkg/widgets"
	"github.com/goliatone/go-formgen-optgroup/pkg/widgets/optgroup"
)

const (
	templatePrefix = "templates/"
	formTemplate   = "form"
	inputTemplate  = "input"
	defaultSubmit  = "Submit"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	templateFuncs    map[string]any
	widgets          *widgets.Registry
	policy           *bluemonday.Policy
	submitLabel      string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithTemplateFuncs registers helpers such as render.TemplateI18nFuncs with
// the default template engine.
func WithTemplateFuncs(funcs map[string]any) Option {
	return func(cfg *config) {
		if len(funcs) == 0 {
			return
		}
		if cfg.templateFuncs == nil {
			cfg.templateFuncs = make(map[string]any, len(funcs))
		}
		for name, fn := range funcs {
			cfg.templateFuncs[name] = fn
		}
	}
}

// WithWidgetRegistry sets the registry fields are resolved against. The
// default is a fresh registry with the optgroup widget registered.
func WithWidgetRegistry(reg *widgets.Registry) Option {
	return func(cfg *config) {
		if reg != nil {
			cfg.widgets = reg
		}
	}
}

// WithSanitizer replaces the policy translated text passes through before it
// reaches the markup.
func WithSanitizer(policy *bluemonday.Policy) Option {
	return func(cfg *config) {
		if policy != nil {
			cfg.policy = policy
		}
	}
}

// WithSubmitLabel sets the submit button text. It is translated per request.
func WithSubmitLabel(label string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(label); trimmed != "" {
			cfg.submitLabel = trimmed
		}
	}
}

// Renderer renders form models to HTML, building each field widget through
// the widget registry.
type Renderer struct {
	templates   rendertemplate.TemplateRenderer
	widgets     *widgets.Registry
	policy      *bluemonday.Policy
	submitLabel string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.widgets == nil {
		cfg.widgets = widgets.NewRegistry()
		optgroup.Register(cfg.widgets, optgroup.DefaultPriority)
	}
	if cfg.policy == nil {
		cfg.policy = bluemonday.StrictPolicy()
	}
	if cfg.submitLabel == "" {
		cfg.submitLabel = defaultSubmit
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tpl"),
			gotemplate.WithTemplateFunc(cfg.templateFuncs),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates:   renderer,
		widgets:     cfg.widgets,
		policy:      cfg.policy,
		submitLabel: cfg.submitLabel,
	}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Widgets returns the registry fields are resolved against.
func (r *Renderer) Widgets() *widgets.Registry {
	return r.widgets
}

// Render builds, updates and renders a widget for every field, then wraps the
// fragments in the form template.
func (r *Renderer) Render(ctx context.Context, form model.FormModel, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	req := widgets.RequestFromOptions(options, r.widgets)
	mapping := render.MapErrorPayload(form, options.Errors)
	req.Errors = mapping.Fields

	fields := make([]map[string]any, 0, len(form.Fields))
	for _, field := range form.Fields {
		entry, err := r.renderField(ctx, render.LocalizeField(field, options), req, options)
		if err != nil {
			return nil, err
		}
		fields = append(fields, entry)
	}

	method := strings.ToUpper(strings.TrimSpace(options.Method))
	if method == "" {
		method = strings.ToUpper(strings.TrimSpace(form.Method))
	}
	if method == "" {
		method = http.MethodPost
	}

	result, err := r.templates.RenderTemplate(r.templateName(formTemplate, options), map[string]any{
		"method":      method,
		"action":      form.Endpoint,
		"summary":     req.Translate(form.Summary),
		"fields":      fields,
		"form_errors": mapping.Form,
		"display":     options.Display,
		"submit":      req.Translate(r.submitLabel),
		"theme":       themeContext(options.Theme),
		"stylesheet":  stylesheetURL(options.Theme),
		"classes": map[string]any{
			"form":    DefaultFormClass,
			"field":   DefaultFieldClass,
			"actions": DefaultActionsClass,
			"errors":  DefaultErrorsClass,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func (r *Renderer) renderField(ctx context.Context, field model.Field, req *widgets.Request, options render.RenderOptions) (map[string]any, error) {
	entry := map[string]any{
		"label":       field.DisplayLabel(),
		"description": field.Description,
		"required":    field.Required,
		"errors":      req.FieldErrors(field.Name),
	}

	if !r.widgets.Handles(field) {
		html, err := r.renderInput(field, req, options)
		if err != nil {
			return nil, err
		}
		entry["widget"] = inputTemplate
		entry["id"] = widgets.WidgetID(field.Name)
		entry["html"] = html
		return entry, nil
	}
	widget, err := r.widgets.Lookup(field, req)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: field %q: %w", field.Name, err)
	}
	if err := widget.Update(ctx); err != nil {
		return nil, fmt.Errorf("vanilla renderer: update %q: %w", field.Name, err)
	}

	data := r.sanitizeData(widget.TemplateData())
	html, err := r.templates.RenderTemplate(r.templateName(widget.Template(), options), data)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render widget %q: %w", field.Name, err)
	}

	entry["widget"] = widget.Name()
	entry["id"] = widget.ID()
	entry["html"] = html
	return entry, nil
}

func (r *Renderer) renderInput(field model.Field, req *widgets.Request, options render.RenderOptions) (string, error) {
	value := ""
	if raw, ok := req.Form[widgets.InputName(field.Name)]; ok && len(raw) > 0 {
		value = raw[0]
	} else if prefilled, ok := req.Values[field.Name]; ok && prefilled != nil {
		value = fmt.Sprint(prefilled)
	} else if field.Default != nil {
		value = fmt.Sprint(field.Default)
	}

	klass := "text-widget"
	if field.Type != "" {
		klass += " " + string(field.Type) + "-field"
	}
	if field.Required {
		klass += " required"
	}

	html, err := r.templates.RenderTemplate(r.templateName(inputTemplate, options), map[string]any{
		"id":          widgets.WidgetID(field.Name),
		"name":        widgets.InputName(field.Name),
		"klass":       klass,
		"value":       value,
		"placeholder": field.Placeholder,
		"required":    field.Required,
		"display":     options.Display,
	})
	if err != nil {
		return "", fmt.Errorf("vanilla renderer: render input %q: %w", field.Name, err)
	}
	return html, nil
}

// templateName resolves a template through the theme partial overrides
// before falling back to the embedded bundle.
func (r *Renderer) templateName(name string, options render.RenderOptions) string {
	if options.Theme != nil {
		if override := strings.TrimSpace(options.Theme.Partials[name]); override != "" {
			return override
		}
	}
	return templatePrefix + name
}
