package vocabulary_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formgen-optgroup/pkg/vocabulary"
)

func TestNewTerm_TokenDefaultsToStringValue(t *testing.T) {
	term := vocabulary.NewTerm(42)
	if term.Token != "42" {
		t.Fatalf("expected token %q, got %q", "42", term.Token)
	}
	if term.Titled() {
		t.Fatalf("term without title must not be titled")
	}
	if term.Optgroup != "" {
		t.Fatalf("expected empty optgroup, got %q", term.Optgroup)
	}
}

func TestNewTerm_ExplicitTokenAndTitle(t *testing.T) {
	term := vocabulary.NewTerm("apple",
		vocabulary.WithToken("a1"),
		vocabulary.WithTitle("Apple"),
		vocabulary.WithOptgroup("Fruit"),
	)
	if term.Token != "a1" || term.Title != "Apple" || term.Optgroup != "Fruit" {
		t.Fatalf("unexpected term: %+v", term)
	}
	if !term.Titled() {
		t.Fatalf("term with title must be titled")
	}

	empty := vocabulary.NewTerm("x", vocabulary.WithTitle(""))
	if empty.Titled() {
		t.Fatalf("empty title must not mark the term as titled")
	}
}

func TestNew_RejectsDuplicateTokens(t *testing.T) {
	_, err := vocabulary.New(
		vocabulary.NewTerm("a"),
		vocabulary.NewTerm("b", vocabulary.WithToken("a")),
	)
	if !errors.Is(err, vocabulary.ErrDuplicateToken) {
		t.Fatalf("expected ErrDuplicateToken, got %v", err)
	}
}

func TestVocabulary_Lookups(t *testing.T) {
	v := vocabulary.MustNew(
		vocabulary.NewTerm("apple", vocabulary.WithOptgroup("Fruit")),
		vocabulary.NewTerm("leek", vocabulary.WithOptgroup("Veg")),
		vocabulary.NewTerm("pear", vocabulary.WithOptgroup("Fruit")),
	)

	term, err := v.TermByToken("leek")
	if err != nil {
		t.Fatalf("term by token: %v", err)
	}
	if term.Optgroup != "Veg" {
		t.Fatalf("unexpected term %+v", term)
	}

	if _, err := v.TermByToken("kale"); !errors.Is(err, vocabulary.ErrTermNotFound) {
		t.Fatalf("expected ErrTermNotFound, got %v", err)
	}

	byValue, err := v.TermByValue("pear")
	if err != nil {
		t.Fatalf("term by value: %v", err)
	}
	if byValue.Token != "pear" {
		t.Fatalf("unexpected term %+v", byValue)
	}

	if diff := cmp.Diff([]string{"Fruit", "Veg"}, v.Groups()); diff != "" {
		t.Fatalf("groups mismatch (-want +got):\n%s", diff)
	}
	if !v.Grouped() {
		t.Fatalf("expected grouped vocabulary")
	}
	if v.Len() != 3 {
		t.Fatalf("expected 3 terms, got %d", v.Len())
	}
}

func TestVocabulary_TermByValueMatchesAcrossNumericTypes(t *testing.T) {
	parsed, err := vocabulary.Parse([]byte(`{"vocabularies": {"sizes": [{"value": 1, "title": "One"}, {"value": 2, "title": "Two"}]}}`), "sizes.json")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	sizes := parsed["sizes"]

	for _, value := range []any{2, int64(2), uint8(2), float32(2), 2.0} {
		term, err := sizes.TermByValue(value)
		if err != nil {
			t.Fatalf("term by value %T: %v", value, err)
		}
		if term.Token != "2" || term.Title != "Two" {
			t.Fatalf("unexpected term for %T: %+v", value, term)
		}
	}

	if _, err := sizes.TermByValue("2"); !errors.Is(err, vocabulary.ErrTermNotFound) {
		t.Fatalf("expected strings to stay distinct from numbers, got %v", err)
	}
	if _, err := sizes.TermByValue(2.5); !errors.Is(err, vocabulary.ErrTermNotFound) {
		t.Fatalf("expected ErrTermNotFound, got %v", err)
	}
}

func TestVocabulary_TermsReturnsCopy(t *testing.T) {
	v := vocabulary.MustNew(vocabulary.NewTerm("a"))
	terms := v.Terms()
	terms[0].Token = "mutated"

	if _, err := v.TermByToken("a"); err != nil {
		t.Fatalf("vocabulary mutated through Terms(): %v", err)
	}
	if v.Terms()[0].Token != "a" {
		t.Fatalf("expected stored token to stay intact")
	}
}

func TestRegistry(t *testing.T) {
	reg := vocabulary.NewRegistry()
	v := vocabulary.MustNew(vocabulary.NewTerm("a"))
	reg.MustRegister("letters", v)

	if err := reg.Register("letters", v); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	got, err := reg.Vocabulary(" letters ")
	if err != nil || got != v {
		t.Fatalf("lookup: got %v, err %v", got, err)
	}
	if _, err := reg.Vocabulary("digits"); !errors.Is(err, vocabulary.ErrUnknownVocabulary) {
		t.Fatalf("expected ErrUnknownVocabulary, got %v", err)
	}
	if diff := cmp.Diff([]string{"letters"}, reg.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}
