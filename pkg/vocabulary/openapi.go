package vocabulary

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

const (
	optgroupExtensionKey = "x-optgroup"
	tokenExtensionKey    = "x-token"
)

// FromOpenAPI builds a vocabulary from the named component schema of an
// OpenAPI document. Each oneOf branch contributes one term: its single enum
// value is the term value, its title the term title, and the `x-optgroup` /
// `x-token` extensions set the group label and token. Schemas without oneOf
// fall back to their plain enum, grouped by the schema-level `x-optgroup`.
func FromOpenAPI(ctx context.Context, data []byte, schemaName string) (*Vocabulary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.New("vocabulary: openapi document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("vocabulary: load openapi document: %w", err)
	}
	if spec.Components == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVocabulary, schemaName)
	}
	ref, ok := spec.Components.Schemas[schemaName]
	if !ok || ref == nil || ref.Value == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVocabulary, schemaName)
	}
	return FromSchema(ref.Value)
}

// FromSchema builds a vocabulary from an already loaded schema.
func FromSchema(schema *openapi3.Schema) (*Vocabulary, error) {
	if schema == nil {
		return nil, errors.New("vocabulary: schema is nil")
	}

	if len(schema.OneOf) == 0 {
		group := extensionString(schema.Extensions, optgroupExtensionKey)
		terms := make([]Term, 0, len(schema.Enum))
		for _, value := range schema.Enum {
			terms = append(terms, NewTerm(value, WithOptgroup(group)))
		}
		return New(terms...)
	}

	terms := make([]Term, 0, len(schema.OneOf))
	for idx, branch := range schema.OneOf {
		if branch == nil || branch.Value == nil {
			return nil, fmt.Errorf("vocabulary: oneOf branch %d is empty", idx)
		}
		value := branch.Value
		if len(value.Enum) != 1 {
			return nil, fmt.Errorf("vocabulary: oneOf branch %d must declare exactly one enum value", idx)
		}
		opts := []TermOption{
			WithTitle(strings.TrimSpace(value.Title)),
			WithOptgroup(extensionString(value.Extensions, optgroupExtensionKey)),
		}
		if token := extensionString(value.Extensions, tokenExtensionKey); token != "" {
			opts = append(opts, WithToken(token))
		}
		terms = append(terms, NewTerm(value.Enum[0], opts...))
	}
	return New(terms...)
}

func extensionString(ext map[string]any, key string) string {
	if len(ext) == 0 {
		return ""
	}
	raw, ok := ext[key]
	if !ok || raw == nil {
		return ""
	}
	if str, ok := raw.(string); ok {
		return strings.TrimSpace(str)
	}
	return strings.TrimSpace(fmt.Sprint(raw))
}
