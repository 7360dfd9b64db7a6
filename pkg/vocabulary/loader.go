package vocabulary

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

const documentKey = "vocabularies"

type termSpec struct {
	Value    any     `mapstructure:"value"`
	Token    *string `mapstructure:"token"`
	Title    string  `mapstructure:"title"`
	Optgroup string  `mapstructure:"optgroup"`
}

// LoadFS walks fsys and registers every vocabulary declared in JSON/YAML
// files. A nil filesystem yields an empty registry.
func LoadFS(fsys fs.FS) (*Registry, error) {
	registry := NewRegistry()
	if fsys == nil {
		return registry, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isVocabularyFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("vocabulary: read %s: %w", path, err)
		}
		parsed, err := Parse(data, path)
		if err != nil {
			return err
		}

		names := make([]string, 0, len(parsed))
		for name := range parsed {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if err := registry.Register(name, parsed[name]); err != nil {
				return fmt.Errorf("vocabulary: file %s: %w", path, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return registry, nil
}

// Parse decodes a vocabulary document. The document maps vocabulary names to
// ordered term records under the top-level "vocabularies" key:
//
//	vocabularies:
//	  food:
//	    - {value: apple, title: Apple, optgroup: Fruit}
//	    - {value: leek, title: Leek, optgroup: Veg}
//
// source is only used in error messages.
func Parse(data []byte, source string) (map[string]*Vocabulary, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("vocabulary: file %s is empty", source)
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		doc = nil
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("vocabulary: parse %s: invalid JSON or YAML", source)
		}
	}

	raw, ok := doc[documentKey].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("vocabulary: file %s has no %q mapping", source, documentKey)
	}

	out := make(map[string]*Vocabulary, len(raw))
	for name, records := range raw {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			return nil, fmt.Errorf("vocabulary: file %s declares an empty vocabulary name", source)
		}
		v, err := decodeTerms(records)
		if err != nil {
			return nil, fmt.Errorf("vocabulary: file %s vocabulary %q: %w", source, trimmed, err)
		}
		out[trimmed] = v
	}
	return out, nil
}

func decodeTerms(records any) (*Vocabulary, error) {
	var specs []termSpec
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      &specs,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(records); err != nil {
		return nil, err
	}

	terms := make([]Term, 0, len(specs))
	for idx, spec := range specs {
		if spec.Value == nil {
			return nil, fmt.Errorf("term %d has no value", idx)
		}
		opts := []TermOption{WithTitle(spec.Title), WithOptgroup(spec.Optgroup)}
		if spec.Token != nil {
			opts = append(opts, WithToken(*spec.Token))
		}
		terms = append(terms, NewTerm(spec.Value, opts...))
	}
	return New(terms...)
}

func isVocabularyFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
