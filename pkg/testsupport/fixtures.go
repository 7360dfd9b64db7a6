// Package testsupport holds fixtures shared by the package tests.
package testsupport

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/goliatone/go-formgen-optgroup/pkg/model"
	"github.com/goliatone/go-formgen-optgroup/pkg/vocabulary"
)

// FoodVocabularyName is the name FoodRegistry registers FoodVocabulary under.
const FoodVocabularyName = "food"

// FoodVocabulary returns a grouped vocabulary spanning three optgroups:
//
//	t1 Apple (Fruit), t2 Pear (Fruit), t3 Leek (Veg), t4 Kale (Veg),
//	t5 untitled (Grain)
func FoodVocabulary(t *testing.T) *vocabulary.Vocabulary {
	t.Helper()

	v, err := vocabulary.New(
		vocabulary.NewTerm("apple", vocabulary.WithToken("t1"), vocabulary.WithTitle("Apple"), vocabulary.WithOptgroup("Fruit")),
		vocabulary.NewTerm("pear", vocabulary.WithToken("t2"), vocabulary.WithTitle("Pear"), vocabulary.WithOptgroup("Fruit")),
		vocabulary.NewTerm("leek", vocabulary.WithToken("t3"), vocabulary.WithTitle("Leek"), vocabulary.WithOptgroup("Veg")),
		vocabulary.NewTerm("kale", vocabulary.WithToken("t4"), vocabulary.WithTitle("Kale"), vocabulary.WithOptgroup("Veg")),
		vocabulary.NewTerm("rye", vocabulary.WithToken("t5"), vocabulary.WithOptgroup("Grain")),
	)
	if err != nil {
		t.Fatalf("food vocabulary: %v", err)
	}
	return v
}

// FoodRegistry returns a provider serving FoodVocabulary.
func FoodRegistry(t *testing.T) *vocabulary.Registry {
	t.Helper()

	reg := vocabulary.NewRegistry()
	if err := reg.Register(FoodVocabularyName, FoodVocabulary(t)); err != nil {
		t.Fatalf("register food vocabulary: %v", err)
	}
	return reg
}

// FoodField returns a single-valued field bound to the food vocabulary.
func FoodField() model.Field {
	return model.Field{
		Name:     "food",
		Type:     model.FieldTypeString,
		Label:    "Food",
		Metadata: map[string]string{model.MetadataVocabulary: FoodVocabularyName},
	}
}

// FoodListField returns a multi-valued field whose elements are bound to the
// food vocabulary.
func FoodListField() model.Field {
	item := FoodField()
	item.Name = ""
	return model.Field{
		Name:  "foods",
		Type:  model.FieldTypeArray,
		Label: "Foods",
		Items: &item,
	}
}

// StubTranslator translates keys from a fixed map and fails otherwise.
type StubTranslator map[string]string

// Translate implements render.Translator.
func (t StubTranslator) Translate(_ string, key string, _ ...any) (string, error) {
	if msg, ok := t[key]; ok {
		return msg, nil
	}
	return "", errors.New("testsupport: missing translation")
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents. Tests can assert
// the renderer returns and writes the same payload without duplicating buffer
// setup.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
