package vocabulary

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
)

var (
	// ErrTermNotFound is returned when a token or value has no term.
	ErrTermNotFound = errors.New("vocabulary: term not found")
	// ErrDuplicateToken is returned when two terms share a token.
	ErrDuplicateToken = errors.New("vocabulary: duplicate token")
)

// Vocabulary is an ordered, immutable collection of terms with unique tokens.
type Vocabulary struct {
	terms   []Term
	byToken map[string]int
}

// New builds a vocabulary preserving the term order.
func New(terms ...Term) (*Vocabulary, error) {
	v := &Vocabulary{
		terms:   make([]Term, 0, len(terms)),
		byToken: make(map[string]int, len(terms)),
	}
	for _, term := range terms {
		if _, exists := v.byToken[term.Token]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateToken, term.Token)
		}
		v.byToken[term.Token] = len(v.terms)
		v.terms = append(v.terms, term)
	}
	return v, nil
}

// MustNew panics when New fails. Useful for package-level vocabularies.
func MustNew(terms ...Term) *Vocabulary {
	v, err := New(terms...)
	if err != nil {
		panic(err)
	}
	return v
}

// FromValues builds an ungrouped vocabulary whose tokens are the string form of
// each value.
func FromValues(values ...any) (*Vocabulary, error) {
	terms := make([]Term, 0, len(values))
	for _, value := range values {
		terms = append(terms, NewTerm(value))
	}
	return New(terms...)
}

// Len returns the number of terms.
func (v *Vocabulary) Len() int {
	if v == nil {
		return 0
	}
	return len(v.terms)
}

// Terms returns a copy of the terms in declaration order.
func (v *Vocabulary) Terms() []Term {
	if v == nil {
		return nil
	}
	return slices.Clone(v.terms)
}

// TermByToken returns the term registered for token.
func (v *Vocabulary) TermByToken(token string) (Term, error) {
	if v != nil {
		if idx, ok := v.byToken[token]; ok {
			return v.terms[idx], nil
		}
	}
	return Term{}, fmt.Errorf("%w: token %q", ErrTermNotFound, token)
}

// TermByValue returns the first term whose value equals value. Numbers match
// across Go numeric types, so a float64 decoded from JSON finds a term whose
// value came from YAML as an int.
func (v *Vocabulary) TermByValue(value any) (Term, error) {
	if v != nil {
		for _, term := range v.terms {
			if sameValue(term.Value, value) {
				return term, nil
			}
		}
	}
	return Term{}, fmt.Errorf("%w: value %v", ErrTermNotFound, value)
}

func sameValue(a, b any) bool {
	if reflect.DeepEqual(a, b) {
		return true
	}
	x, ok := numeric(a)
	if !ok {
		return false
	}
	y, ok := numeric(b)
	return ok && x == y
}

func numeric(value any) (float64, bool) {
	if value == nil {
		return 0, false
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

// Contains reports whether token belongs to the vocabulary.
func (v *Vocabulary) Contains(token string) bool {
	if v == nil {
		return false
	}
	_, ok := v.byToken[token]
	return ok
}

// Groups returns the distinct optgroup labels in first-seen order.
func (v *Vocabulary) Groups() []string {
	if v == nil {
		return nil
	}
	seen := make(map[string]struct{})
	var groups []string
	for _, term := range v.terms {
		if _, ok := seen[term.Optgroup]; ok {
			continue
		}
		seen[term.Optgroup] = struct{}{}
		groups = append(groups, term.Optgroup)
	}
	return groups
}

// Grouped reports whether at least one term carries an optgroup label.
func (v *Vocabulary) Grouped() bool {
	if v == nil {
		return false
	}
	for _, term := range v.terms {
		if term.Optgroup != "" {
			return true
		}
	}
	return false
}
