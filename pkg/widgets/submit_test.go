package widgets

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formgen-optgroup/pkg/model"
	"github.com/goliatone/go-formgen-optgroup/pkg/testsupport"
)

func orderForm() model.FormModel {
	food := testsupport.FoodField()
	food.Required = true
	return model.FormModel{
		OperationID: "order",
		Fields: []model.Field{
			food,
			testsupport.FoodListField(),
			{Name: "note", Type: model.FieldTypeString, Required: true},
		},
	}
}

func TestCollect_ConvertsTokens(t *testing.T) {
	req := &Request{
		Form: url.Values{
			"form.widgets.food":  {"t2"},
			"form.widgets.foods": {"t1", "t3"},
			"form.widgets.note":  {" extra napkins "},
		},
		Vocabularies: testsupport.FoodRegistry(t),
		Widgets:      NewRegistry(),
	}

	values, fieldErrors, err := Collect(context.Background(), orderForm(), req)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if len(fieldErrors) != 0 {
		t.Fatalf("unexpected field errors: %+v", fieldErrors)
	}

	want := map[string]any{
		"food":  "pear",
		"foods": []any{"apple", "leek"},
		"note":  "extra napkins",
	}
	if diff := cmp.Diff(want, values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestCollect_RequiredFields(t *testing.T) {
	req := &Request{
		Form: url.Values{
			"form.widgets.food":               {NoValueToken},
			"form.widgets.foods-empty-marker": {"1"},
		},
		Vocabularies: testsupport.FoodRegistry(t),
		Widgets:      NewRegistry(),
		Translator:   testsupport.StubTranslator{RequiredMessage: "Pflichtfeld"},
		Locale:       "de",
	}

	values, fieldErrors, err := Collect(context.Background(), orderForm(), req)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if len(values) != 0 {
		t.Fatalf("expected no values, got %+v", values)
	}
	want := map[string][]string{
		"food": {"Pflichtfeld"},
		"note": {"Pflichtfeld"},
	}
	if diff := cmp.Diff(want, fieldErrors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestCollect_Errors(t *testing.T) {
	form := model.FormModel{Fields: []model.Field{{
		Name:     "food",
		Type:     model.FieldTypeString,
		Metadata: map[string]string{model.MetadataWidget: "missing"},
	}}}
	if _, _, err := Collect(context.Background(), form, &Request{Widgets: NewRegistry()}); !errors.Is(err, ErrNoWidget) {
		t.Fatalf("expected ErrNoWidget, got %v", err)
	}

	failing := errors.New("vocabulary offline")
	reg := NewRegistry()
	reg.Register("broken", 90, func(f model.Field) bool { return f.Name == "food" }, func(model.Field, *Request) (Widget, error) {
		return nil, failing
	})
	req := &Request{Form: url.Values{"food": {"raw"}}, Widgets: reg}
	values, _, err := Collect(context.Background(), orderForm(), req)
	if !errors.Is(err, failing) {
		t.Fatalf("expected factory error to propagate, got %v", err)
	}
	if values != nil {
		t.Fatalf("expected no raw fallback values, got %+v", values)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := Collect(ctx, orderForm(), &Request{Widgets: NewRegistry()}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestInputNameAndWidgetID(t *testing.T) {
	if got := InputName("food"); got != "form.widgets.food" {
		t.Fatalf("unexpected input name %q", got)
	}
	if got := WidgetID("food"); got != "form-widgets-food" {
		t.Fatalf("unexpected widget id %q", got)
	}
}
