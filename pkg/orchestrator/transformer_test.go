package orchestrator

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-formgen-optgroup/pkg/model"
	"github.com/goliatone/go-formgen-optgroup/pkg/testsupport"
)

const presetDoc = `
metadata:
  theme: acme
fields:
  food:
    label: Dish
    required: true
    metadata:
      optgroup: "true"
  foods.items:
    metadata:
      optgroup: "true"
  foods:
    maxLength: 3
`

func TestPresetTransformer_AppliesPatches(t *testing.T) {
	transformer, err := NewPresetTransformer([]byte(presetDoc))
	if err != nil {
		t.Fatalf("new transformer: %v", err)
	}

	form := model.FormModel{
		OperationID: "order",
		Fields:      []model.Field{testsupport.FoodField(), testsupport.FoodListField()},
	}
	if err := transformer.Transform(context.Background(), &form); err != nil {
		t.Fatalf("transform: %v", err)
	}

	if form.Metadata["theme"] != "acme" {
		t.Fatalf("expected form metadata, got %+v", form.Metadata)
	}
	food := form.Fields[0]
	if food.Label != "Dish" || !food.Required || food.Metadata[model.MetadataOptgroup] != "true" {
		t.Fatalf("unexpected food field: %+v", food)
	}
	if food.Metadata[model.MetadataVocabulary] != testsupport.FoodVocabularyName {
		t.Fatalf("existing metadata lost: %+v", food.Metadata)
	}
	foods := form.Fields[1]
	if foods.Items.Metadata[model.MetadataOptgroup] != "true" {
		t.Fatalf("expected items patched, got %+v", foods.Items.Metadata)
	}
	if size, ok := foods.MaxLength(); !ok || size != 3 {
		t.Fatalf("expected maxLength 3, got %d (%v)", size, ok)
	}
}

func TestPresetTransformer_Errors(t *testing.T) {
	if _, err := NewPresetTransformer(nil); err == nil {
		t.Fatalf("expected empty document error")
	}
	if _, err := NewPresetTransformerFromFS(fstest.MapFS{}, "preset.yaml"); err == nil {
		t.Fatalf("expected read error")
	}

	transformer, err := NewPresetTransformer([]byte("fields:\n  missing:\n    label: X\n"))
	if err != nil {
		t.Fatalf("new transformer: %v", err)
	}
	form := model.FormModel{Fields: []model.Field{testsupport.FoodField()}}
	err = transformer.Transform(context.Background(), &form)
	if err == nil || !strings.Contains(err.Error(), `field "missing" not found`) {
		t.Fatalf("expected missing field error, got %v", err)
	}
}
