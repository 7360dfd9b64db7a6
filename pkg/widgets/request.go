package widgets

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/goliatone/go-formgen-optgroup/pkg/render"
	"github.com/goliatone/go-formgen-optgroup/pkg/vocabulary"
)

// Request carries the per-request state widgets read: submitted form values,
// pre-populated values, locale and translator, validation errors and the
// vocabulary provider.
type Request struct {
	Form         url.Values
	Values       map[string]any
	Locale       string
	Translator   render.Translator
	OnMissing    render.MissingTranslationHandler
	Errors       map[string][]string
	Vocabularies vocabulary.Provider
	Display      bool

	// Widgets is the registry lookups made on behalf of this request go
	// through. Nil means DefaultRegistry.
	Widgets *Registry
}

// RequestOption configures a Request built by NewRequest.
type RequestOption func(*Request)

// WithLocale sets the request locale.
func WithLocale(locale string) RequestOption {
	return func(r *Request) {
		r.Locale = locale
	}
}

// WithTranslator sets the translator used for titled terms.
func WithTranslator(t render.Translator) RequestOption {
	return func(r *Request) {
		r.Translator = t
	}
}

// WithVocabularies sets the vocabulary provider.
func WithVocabularies(p vocabulary.Provider) RequestOption {
	return func(r *Request) {
		r.Vocabularies = p
	}
}

// WithErrors sets validation errors keyed by field name.
func WithErrors(errs map[string][]string) RequestOption {
	return func(r *Request) {
		r.Errors = errs
	}
}

// WithRegistry sets the widget registry used for default lookups.
func WithRegistry(reg *Registry) RequestOption {
	return func(r *Request) {
		r.Widgets = reg
	}
}

// NewRequest builds a widget request from an HTTP request. Submitted values
// are read from the parsed form, so POST bodies and query strings both work.
func NewRequest(r *http.Request, opts ...RequestOption) (*Request, error) {
	req := &Request{}
	if r != nil {
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("widgets: parse form: %w", err)
		}
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			req.Form = r.PostForm
		}
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(req)
	}
	return req, nil
}

// RequestFromOptions builds a widget request from renderer options.
func RequestFromOptions(opts render.RenderOptions, reg *Registry) *Request {
	var form url.Values
	if opts.Submitted != nil {
		form = url.Values(opts.Submitted)
	}
	return &Request{
		Form:         form,
		Values:       opts.Values,
		Locale:       opts.Locale,
		Translator:   opts.Translator,
		OnMissing:    opts.OnMissing,
		Errors:       opts.Errors,
		Vocabularies: opts.Vocabularies,
		Display:      opts.Display,
		Widgets:      reg,
	}
}

// Translate resolves text for the request locale, defaulting to text itself.
func (r *Request) Translate(text string) string {
	if r == nil {
		return text
	}
	return render.Translate(r.Locale, text, text, r.Translator, r.OnMissing)
}

// Registry returns the registry lookups should use.
func (r *Request) Registry() *Registry {
	if r == nil || r.Widgets == nil {
		return DefaultRegistry()
	}
	return r.Widgets
}

// FieldErrors returns the validation messages recorded for name.
func (r *Request) FieldErrors(name string) []string {
	if r == nil || r.Errors == nil {
		return nil
	}
	return r.Errors[name]
}
