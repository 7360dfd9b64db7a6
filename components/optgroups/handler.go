package optgroups

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/goliatone/go-formgen-optgroup/pkg/vocabulary"
)

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

type optionsResponse struct {
	Vocabulary string  `json:"vocabulary"`
	Data       []Group `json:"data"`
}

// Handler builds a net/http handler with default options plus any overrides.
func Handler(fns ...OptionFn) http.Handler {
	return NewHandler(fns...)
}

func NewHandler(fns ...OptionFn) http.Handler {
	opts := NewOptions(fns...)
	return HandlerWithOptions(opts)
}

// HandlerWithOptions builds a net/http handler from a pre-constructed Options value.
func HandlerWithOptions(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r == nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		if opts.Guard != nil {
			if err := opts.Guard(r); err != nil {
				writeError(w, err, http.StatusForbidden)
				return
			}
		}

		name := strings.TrimSpace(r.URL.Query().Get(opts.VocabularyParam))
		terms, err := lookup(opts, name)
		if err != nil {
			writeError(w, err, http.StatusInternalServerError)
			return
		}

		locale := r.Header.Get("Accept-Language")
		if opts.Locale != nil {
			locale = opts.Locale(r)
		}

		query := r.URL.Query().Get(opts.SearchParam)
		limit := parseInt(r.URL.Query().Get(opts.LimitParam))

		results := Search(terms, query, limit, TranslatedLabels(locale, opts.Translator), opts)
		if results == nil {
			results = []Group{}
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodHead {
			return
		}

		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(true)
		_ = enc.Encode(optionsResponse{Vocabulary: name, Data: results})
	})
}

func lookup(opts Options, name string) (*vocabulary.Vocabulary, error) {
	if name == "" {
		return nil, StatusError{Code: http.StatusBadRequest, Err: errors.New("optgroups: vocabulary is required")}
	}
	if opts.Vocabularies == nil {
		return nil, StatusError{Code: http.StatusNotFound, Err: vocabulary.ErrUnknownVocabulary}
	}
	terms, err := opts.Vocabularies.Vocabulary(name)
	if errors.Is(err, vocabulary.ErrUnknownVocabulary) {
		return nil, StatusError{Code: http.StatusNotFound, Err: err}
	}
	if err != nil {
		return nil, err
	}
	return terms, nil
}

func writeError(w http.ResponseWriter, err error, fallback int) {
	if w == nil {
		return
	}
	code := fallback
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
		if code <= 0 {
			code = fallback
		}
	}
	http.Error(w, http.StatusText(code), code)
}

func parseInt(raw string) int {
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return value
}
