// Package bootstrap loads the form, vocabularies and catalogs the command
// binaries serve, falling back to the bundled lunch order example.
package bootstrap

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/goliatone/go-formgen-optgroup/examples/food"
	"github.com/goliatone/go-formgen-optgroup/internal/source"
	"github.com/goliatone/go-formgen-optgroup/pkg/i18n"
	"github.com/goliatone/go-formgen-optgroup/pkg/model"
	"github.com/goliatone/go-formgen-optgroup/pkg/vocabulary"
	"github.com/goliatone/go-formgen-optgroup/pkg/widgets"
	"github.com/goliatone/go-formgen-optgroup/pkg/widgets/optgroup"
)

const defaultTimeout = 10 * time.Second

// Config names where each asset comes from. Empty locations select the
// bundled example.
type Config struct {
	// Form is a file path or http(s) URL of a form document.
	Form string
	// VocabularyDir holds vocabulary YAML/JSON files.
	VocabularyDir string
	// LocalesDir holds catalog YAML files.
	LocalesDir string
	// OpenAPI is a file path or http(s) URL of an OpenAPI document whose
	// component schemas listed in OpenAPISchemas are registered as
	// vocabularies under the schema name.
	OpenAPI        string
	OpenAPISchemas []string
	// DefaultLocale is the catalog fallback locale.
	DefaultLocale string
	// AllowHTTP enables fetching URL locations.
	AllowHTTP bool
}

// Assets are the loaded inputs.
type Assets struct {
	Form         model.FormModel
	Vocabularies *vocabulary.Registry
	Catalog      *i18n.Catalog
	Widgets      *widgets.Registry
}

// Load resolves every configured asset.
func Load(ctx context.Context, cfg Config) (*Assets, error) {
	loader := source.New(source.Options{
		AllowHTTP:      cfg.AllowHTTP,
		RequestTimeout: defaultTimeout,
	})

	form, err := loadForm(ctx, loader, cfg.Form)
	if err != nil {
		return nil, err
	}

	vocabularies, err := vocabulary.LoadFS(dirOr(cfg.VocabularyDir, food.Vocabularies()))
	if err != nil {
		return nil, fmt.Errorf("bootstrap: %w", err)
	}
	if err := registerOpenAPI(ctx, loader, vocabularies, cfg.OpenAPI, cfg.OpenAPISchemas); err != nil {
		return nil, err
	}

	var opts []i18n.Option
	if locale := strings.TrimSpace(cfg.DefaultLocale); locale != "" {
		opts = append(opts, i18n.WithFallback(locale))
	}
	catalog, err := i18n.LoadFS(dirOr(cfg.LocalesDir, food.Locales()), opts...)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: %w", err)
	}

	reg := widgets.NewRegistry()
	optgroup.Register(reg, optgroup.DefaultPriority)

	return &Assets{
		Form:         form,
		Vocabularies: vocabularies,
		Catalog:      catalog,
		Widgets:      reg,
	}, nil
}

func loadForm(ctx context.Context, loader *source.Loader, location string) (model.FormModel, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return model.LoadForm(food.FS(), food.FormPath)
	}
	data, err := loader.Load(ctx, source.Parse(location))
	if err != nil {
		return model.FormModel{}, fmt.Errorf("bootstrap: %w", err)
	}
	return model.ParseForm(data, location)
}

func registerOpenAPI(ctx context.Context, loader *source.Loader, reg *vocabulary.Registry, location string, schemas []string) error {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil
	}
	if len(schemas) == 0 {
		return fmt.Errorf("bootstrap: openapi document %s: no schemas selected", location)
	}
	data, err := loader.Load(ctx, source.Parse(location))
	if err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}
	for _, name := range schemas {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		v, err := vocabulary.FromOpenAPI(ctx, data, name)
		if err != nil {
			return fmt.Errorf("bootstrap: openapi schema %q: %w", name, err)
		}
		if err := reg.Register(name, v); err != nil {
			return fmt.Errorf("bootstrap: %w", err)
		}
	}
	return nil
}

func dirOr(dir string, fallback fs.FS) fs.FS {
	if strings.TrimSpace(dir) == "" {
		return fallback
	}
	return os.DirFS(dir)
}
