package render

import (
	"errors"
	"strings"

	"github.com/goliatone/go-formgen-optgroup/pkg/model"
)

const (
	fieldLabelKeyHint       = "labelKey"
	fieldDescriptionKeyHint = "descriptionKey"
	fieldPlaceholderKeyHint = "placeholderKey"
	fieldPromptKeyHint      = "promptKey"
)

// ErrMissingTranslator is reported to MissingTranslationHandler when no
// translator is configured.
var ErrMissingTranslator = errors.New("render: translator not configured")

// Translator resolves a message key for a locale.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// TranslatorFunc adapts a function into a Translator.
type TranslatorFunc func(locale, key string, args ...any) (string, error)

// Translate calls the underlying function.
func (fn TranslatorFunc) Translate(locale, key string, args ...any) (string, error) {
	return fn(locale, key, args...)
}

// MissingTranslationHandler returns the text rendered when key has no
// translation. args carries the template arguments; when called from
// Translate the first argument is a map holding the "default" fallback.
type MissingTranslationHandler func(locale, key string, args []any, err error) string

func missingTranslationDefault(_ string, key string, args []any, _ error) string {
	for _, arg := range args {
		if values, ok := arg.(map[string]any); ok {
			if fallback, ok := values["default"].(string); ok && fallback != "" {
				return fallback
			}
		}
	}
	return key
}

// Translate resolves key for locale, returning fallback (or key when fallback
// is blank) whenever the translator is absent or has no message.
func Translate(locale, key, fallback string, t Translator, onMissing MissingTranslationHandler) string {
	if strings.TrimSpace(key) == "" {
		return fallback
	}
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}

	if t == nil {
		return onMissing(locale, key, []any{map[string]any{"default": fallback}}, ErrMissingTranslator)
	}

	result, err := t.Translate(locale, key)
	if err == nil && strings.TrimSpace(result) != "" {
		return result
	}
	return onMissing(locale, key, []any{map[string]any{"default": fallback}}, err)
}

// LocalizeField returns a copy of field whose label, description, placeholder
// and prompt hints are translated from their `*Key` UI hints.
func LocalizeField(field model.Field, opts RenderOptions) model.Field {
	hint := func(key string) string {
		if field.UIHints == nil {
			return ""
		}
		return strings.TrimSpace(field.UIHints[key])
	}

	if key := hint(fieldLabelKeyHint); key != "" {
		field.Label = Translate(opts.Locale, key, strings.TrimSpace(field.Label), opts.Translator, opts.OnMissing)
	}
	if key := hint(fieldDescriptionKeyHint); key != "" {
		field.Description = Translate(opts.Locale, key, strings.TrimSpace(field.Description), opts.Translator, opts.OnMissing)
	}
	if key := hint(fieldPlaceholderKeyHint); key != "" {
		field.Placeholder = Translate(opts.Locale, key, strings.TrimSpace(field.Placeholder), opts.Translator, opts.OnMissing)
	}
	if key := hint(fieldPromptKeyHint); key != "" {
		hints := make(map[string]string, len(field.UIHints))
		for k, v := range field.UIHints {
			hints[k] = v
		}
		hints["prompt"] = Translate(opts.Locale, key, strings.TrimSpace(hints["prompt"]), opts.Translator, opts.OnMissing)
		field.UIHints = hints
	}
	return field
}
