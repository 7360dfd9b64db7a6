package render

import (
	"fmt"
	"strings"
)

// TemplateI18nConfig configures the template translation helpers.
type TemplateI18nConfig struct {
	// LocaleKey is the map key holding the locale when templates pass their
	// data instead of a locale string. Defaults to "locale".
	LocaleKey string
	// FuncName names the translate helper. Defaults to "translate".
	FuncName string
	// OnMissing decides what a missing message renders as. Defaults to the
	// key itself.
	OnMissing MissingTranslationHandler
}

// TemplateI18nFuncs returns template helpers for vanilla.WithTemplateFuncs:
//
//	translate(locale, key, ...args) string
//	current_locale(locale) string
//
// locale is a locale string, a RenderOptions value, or a map carrying the
// locale under cfg.LocaleKey.
func TemplateI18nFuncs(t Translator, cfg TemplateI18nConfig) map[string]any {
	key := strings.TrimSpace(cfg.LocaleKey)
	if key == "" {
		key = "locale"
	}
	name := strings.TrimSpace(cfg.FuncName)
	if name == "" {
		name = "translate"
	}
	onMissing := cfg.OnMissing
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}

	return map[string]any{
		name: func(src any, message string, args ...any) string {
			message = strings.TrimSpace(message)
			if message == "" {
				return ""
			}
			locale := localeOf(src, key)
			if t == nil {
				return onMissing(locale, message, args, ErrMissingTranslator)
			}
			out, err := t.Translate(locale, message, args...)
			if err != nil || strings.TrimSpace(out) == "" {
				return onMissing(locale, message, args, err)
			}
			return out
		},
		"current_locale": func(src any) string {
			return localeOf(src, key)
		},
	}
}

func localeOf(src any, key string) string {
	switch v := src.(type) {
	case nil:
		return ""
	case string:
		return v
	case RenderOptions:
		return v.Locale
	case *RenderOptions:
		if v == nil {
			return ""
		}
		return v.Locale
	case map[string]string:
		return v[key]
	case map[string]any:
		if value, ok := v[key]; ok && value != nil {
			return strings.TrimSpace(fmt.Sprint(value))
		}
	}
	return ""
}
