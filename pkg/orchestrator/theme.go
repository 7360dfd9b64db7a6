package orchestrator

import (
	"fmt"
	"path"
	"strings"

	theme "github.com/goliatone/go-theme"
)

const defaultAssetPrefix = "/assets"

// WithThemeSelector registers a go-theme selector consulted for every request
// naming a theme or variant. Without a selector renderers receive no theme
// configuration.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
	}
}

// WithThemeFallbacks overrides the partials used when the selected theme does
// not provide its own.
func WithThemeFallbacks(fallbacks map[string]string) Option {
	return func(o *Orchestrator) {
		o.themeFallbacks = cloneStringMap(fallbacks)
	}
}

// WithAssetPrefix sets the URL prefix theme assets are resolved against.
func WithAssetPrefix(prefix string) Option {
	return func(o *Orchestrator) {
		o.assetPrefix = prefix
	}
}

func defaultThemeFallbacks() map[string]string {
	return map[string]string{
		"form":             "templates/form",
		"input":            "templates/input",
		"select":           "templates/select",
		"select_display":   "templates/select_display",
		"optgroup":         "templates/optgroup",
		"optgroup_display": "templates/optgroup_display",
	}
}

func (o *Orchestrator) resolveTheme(req Request) (*theme.RendererConfig, error) {
	if o.themeSelector == nil {
		return nil, nil
	}

	selection, err := o.themeSelector.Select(req.ThemeName, req.ThemeVariant)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: select theme: %w", err)
	}
	if selection == nil {
		return nil, nil
	}

	partials := defaultThemeFallbacks()
	for key, value := range o.themeFallbacks {
		partials[key] = value
	}

	var tokens map[string]string
	if selection.Manifest != nil {
		tokens = cloneStringMap(selection.Manifest.Tokens)
	}

	prefix := o.assetPrefix
	return &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Tokens:   tokens,
		CSSVars:  cssVars(tokens),
		Partials: partials,
		AssetURL: func(key string) string {
			key = strings.TrimSpace(key)
			if key == "" {
				return ""
			}
			return path.Join("/", prefix, key)
		},
	}, nil
}

func cssVars(tokens map[string]string) map[string]string {
	if len(tokens) == 0 {
		return nil
	}
	out := make(map[string]string, len(tokens))
	for key, value := range tokens {
		out["--"+strings.TrimPrefix(key, "--")] = value
	}
	return out
}
