package formgen

import (
	"io/fs"

	"github.com/goliatone/go-formgen-optgroup/pkg/i18n"
	"github.com/goliatone/go-formgen-optgroup/pkg/model"
	"github.com/goliatone/go-formgen-optgroup/pkg/vocabulary"
)

// LoadForm reads a form document from fsys.
func LoadForm(fsys fs.FS, path string) (model.FormModel, error) {
	return model.LoadForm(fsys, path)
}

// LoadVocabularies registers every vocabulary file found in fsys.
func LoadVocabularies(fsys fs.FS) (*vocabulary.Registry, error) {
	return vocabulary.LoadFS(fsys)
}

// LoadCatalog loads every locale file found in fsys into a translation
// catalog falling back to locale.
func LoadCatalog(fsys fs.FS, locale string) (*i18n.Catalog, error) {
	var opts []i18n.Option
	if locale != "" {
		opts = append(opts, i18n.WithFallback(locale))
	}
	return i18n.LoadFS(fsys, opts...)
}
