package optgroups

import (
	"net/http"

	"github.com/goliatone/go-formgen-optgroup/pkg/render"
	"github.com/goliatone/go-formgen-optgroup/pkg/vocabulary"
)

type EmptySearchMode string

const (
	EmptySearchNone EmptySearchMode = "none"
	EmptySearchTop  EmptySearchMode = "top"
)

type GuardFunc func(r *http.Request) error

// LocaleFunc resolves the locale titles are translated into.
type LocaleFunc func(r *http.Request) string

type Options struct {
	RoutePath       string
	VocabularyParam string
	SearchParam     string
	LimitParam      string
	DefaultLimit    int
	MaxLimit        int
	EmptySearchMode EmptySearchMode
	Guard           GuardFunc

	Vocabularies vocabulary.Provider
	Translator   render.Translator
	Locale       LocaleFunc
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath:       "/api/optgroups",
		VocabularyParam: "vocabulary",
		SearchParam:     "q",
		LimitParam:      "limit",
		DefaultLimit:    50,
		MaxLimit:        200,
		EmptySearchMode: EmptySearchTop,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = 50
	}
	if opts.MaxLimit <= 0 {
		opts.MaxLimit = 200
	}
	if opts.EmptySearchMode == "" {
		opts.EmptySearchMode = EmptySearchTop
	}
	if opts.RoutePath == "" {
		opts.RoutePath = "/api/optgroups"
	}
	if opts.VocabularyParam == "" {
		opts.VocabularyParam = "vocabulary"
	}
	if opts.SearchParam == "" {
		opts.SearchParam = "q"
	}
	if opts.LimitParam == "" {
		opts.LimitParam = "limit"
	}
	return opts
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RoutePath = path
	}
}

func WithVocabularyParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.VocabularyParam = name
	}
}

func WithSearchParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.SearchParam = name
	}
}

func WithLimitParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.LimitParam = name
	}
}

func WithDefaultLimit(limit int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.DefaultLimit = limit
	}
}

func WithMaxLimit(limit int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxLimit = limit
	}
}

func WithEmptySearchMode(mode EmptySearchMode) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.EmptySearchMode = mode
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

// WithVocabularies sets the provider vocabularies are served from.
func WithVocabularies(provider vocabulary.Provider) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Vocabularies = provider
	}
}

// WithTranslator translates titled terms. locale picks the request locale;
// when nil the Accept-Language header is used verbatim.
func WithTranslator(t render.Translator, locale LocaleFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Translator = t
		o.Locale = locale
	}
}

func clampLimit(limit int, opts Options) int {
	if limit < 0 {
		return 0
	}
	if limit == 0 {
		limit = opts.DefaultLimit
	}
	if opts.MaxLimit > 0 && limit > opts.MaxLimit {
		return opts.MaxLimit
	}
	return limit
}
