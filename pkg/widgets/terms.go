package widgets

import (
	"fmt"
	"reflect"

	"github.com/goliatone/go-formgen-optgroup/pkg/model"
	"github.com/goliatone/go-formgen-optgroup/pkg/vocabulary"
)

// ResolveTerms returns the vocabulary backing field. A `vocabulary` hint on
// the field (or its items) is looked up through the request provider;
// otherwise the enum values of the field (or its items) become an ungrouped
// vocabulary.
func ResolveTerms(field model.Field, req *Request) (*vocabulary.Vocabulary, error) {
	name := field.Hint(model.MetadataVocabulary)
	if name == "" && field.Items != nil {
		name = field.Items.Hint(model.MetadataVocabulary)
	}
	if name != "" {
		if req == nil || req.Vocabularies == nil {
			return nil, fmt.Errorf("widgets: field %q: %w: %q", field.Name, vocabulary.ErrUnknownVocabulary, name)
		}
		terms, err := req.Vocabularies.Vocabulary(name)
		if err != nil {
			return nil, fmt.Errorf("widgets: field %q: %w", field.Name, err)
		}
		return terms, nil
	}

	values := field.Enum
	if len(values) == 0 && field.Items != nil {
		values = field.Items.Enum
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoVocabulary, field.Name)
	}
	terms, err := vocabulary.FromValues(values...)
	if err != nil {
		return nil, fmt.Errorf("widgets: field %q: %w", field.Name, err)
	}
	return terms, nil
}

// HasTerms reports whether field declares a vocabulary hint or enum values,
// without resolving them.
func HasTerms(field model.Field) bool {
	return field.Hint(model.MetadataVocabulary) != "" || len(field.Enum) > 0
}

func toValues(value any) []any {
	switch typed := value.(type) {
	case nil:
		return nil
	case []any:
		return typed
	case []string:
		out := make([]any, len(typed))
		for idx, item := range typed {
			out[idx] = item
		}
		return out
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		out := make([]any, rv.Len())
		for idx := range out {
			out[idx] = rv.Index(idx).Interface()
		}
		return out
	}
	return []any{value}
}
