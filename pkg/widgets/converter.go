package widgets

import (
	"fmt"

	"github.com/goliatone/go-formgen-optgroup/pkg/vocabulary"
)

// SequenceConverter maps between field values and the token sequences select
// widgets submit.
type SequenceConverter struct {
	Terms *vocabulary.Vocabulary
}

// ToWidgetValue returns the tokens of values. Values without a term are
// skipped.
func (c SequenceConverter) ToWidgetValue(values []any) []string {
	tokens := make([]string, 0, len(values))
	for _, value := range values {
		term, err := c.Terms.TermByValue(value)
		if err != nil {
			continue
		}
		tokens = append(tokens, term.Token)
	}
	return tokens
}

// ToFieldValue returns the term values of tokens, dropping the placeholder
// token. An unknown token is an error.
func (c SequenceConverter) ToFieldValue(tokens []string) ([]any, error) {
	values := make([]any, 0, len(tokens))
	for _, token := range tokens {
		if token == NoValueToken {
			continue
		}
		term, err := c.Terms.TermByToken(token)
		if err != nil {
			return nil, fmt.Errorf("widgets: convert: %w", err)
		}
		values = append(values, term.Value)
	}
	return values, nil
}
