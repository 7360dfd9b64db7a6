package widgets

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formgen-optgroup/pkg/model"
	"github.com/goliatone/go-formgen-optgroup/pkg/testsupport"
)

func TestResolve_ExplicitWidgetWins(t *testing.T) {
	reg := NewRegistry()
	field := model.Field{
		Type: model.FieldTypeString,
		Enum: []any{"a"},
		Metadata: map[string]string{
			"admin.widget": "custom-select",
		},
	}

	if got, ok := reg.Resolve(field); !ok || got != "custom-select" {
		t.Fatalf("expected explicit widget to win, got %q (ok=%v)", got, ok)
	}
	if got, ok := reg.ResolveDefault(field); !ok || got != WidgetSelect {
		t.Fatalf("expected default resolution to ignore hints, got %q (ok=%v)", got, ok)
	}
}

func TestResolve_Builtins(t *testing.T) {
	reg := NewRegistry()

	cases := []struct {
		name   string
		field  model.Field
		expect string
		ok     bool
	}{
		{name: "select enum", field: model.Field{Type: model.FieldTypeString, Enum: []any{"a"}}, expect: WidgetSelect, ok: true},
		{name: "select vocabulary", field: testsupport.FoodField(), expect: WidgetSelect, ok: true},
		{name: "multi select items vocabulary", field: testsupport.FoodListField(), expect: WidgetMultiSelect, ok: true},
		{name: "multi select array enum", field: model.Field{Type: model.FieldTypeArray, Enum: []any{"a"}}, expect: WidgetMultiSelect, ok: true},
		{name: "multi select field vocabulary", field: model.Field{Type: model.FieldTypeArray, Metadata: map[string]string{model.MetadataVocabulary: testsupport.FoodVocabularyName}}, expect: WidgetMultiSelect, ok: true},
		{name: "plain string", field: model.Field{Type: model.FieldTypeString}},
		{name: "array without terms", field: model.Field{Type: model.FieldTypeArray, Items: &model.Field{Type: model.FieldTypeString}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := reg.Resolve(tc.field)
			if ok != tc.ok || got != tc.expect {
				t.Fatalf("expected %q (ok=%v), got %q (ok=%v)", tc.expect, tc.ok, got, ok)
			}
		})
	}
}

func TestResolve_PriorityAndOrder(t *testing.T) {
	reg := &Registry{}
	always := func(model.Field) bool { return true }
	reg.Register("low", 10, always, nil)
	reg.Register("first", 50, always, nil)
	reg.Register("second", 50, always, nil)

	if got, _ := reg.Resolve(model.Field{}); got != "first" {
		t.Fatalf("expected registration order to break ties, got %q", got)
	}
	if got, _ := reg.ResolveDefault(model.Field{}, "first", "second"); got != "low" {
		t.Fatalf("expected exclusions to be skipped, got %q", got)
	}
}

func TestHandles(t *testing.T) {
	reg := NewRegistry()
	failing := errors.New("boom")
	reg.Register("broken", 90, func(f model.Field) bool { return f.Name == "broken" }, func(model.Field, *Request) (Widget, error) {
		return nil, failing
	})

	if reg.Handles(model.Field{Name: "plain", Type: model.FieldTypeString}) {
		t.Fatalf("expected plain string to be unhandled")
	}
	broken := model.Field{Name: "broken", Type: model.FieldTypeString}
	if !reg.Handles(broken) {
		t.Fatalf("expected matched field to be handled")
	}
	if _, err := reg.Lookup(broken, nil); !errors.Is(err, failing) || errors.Is(err, ErrNoWidget) {
		t.Fatalf("expected factory error without ErrNoWidget, got %v", err)
	}
}

func TestLookup_BuildsBoundWidget(t *testing.T) {
	reg := NewRegistry()
	req := &Request{Vocabularies: testsupport.FoodRegistry(t)}

	widget, err := reg.Lookup(testsupport.FoodListField(), req)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if widget.Name() != WidgetMultiSelect || !widget.IsMultiple() {
		t.Fatalf("expected multi select, got %q multiple=%v", widget.Name(), widget.IsMultiple())
	}
	if widget.ID() != "form-widgets-foods" || widget.InputName() != "form.widgets.foods" {
		t.Fatalf("unexpected binding id=%q name=%q", widget.ID(), widget.InputName())
	}
}

func TestLookup_Errors(t *testing.T) {
	reg := NewRegistry()

	if _, err := reg.Lookup(model.Field{Name: "plain", Type: model.FieldTypeString}, nil); !errors.Is(err, ErrNoWidget) {
		t.Fatalf("expected ErrNoWidget, got %v", err)
	}

	hinted := model.Field{Name: "x", Metadata: map[string]string{"widget": "missing"}}
	if _, err := reg.Lookup(hinted, nil); !errors.Is(err, ErrNoWidget) {
		t.Fatalf("expected ErrNoWidget for missing factory, got %v", err)
	}

	failing := errors.New("boom")
	reg.Register("broken", 0, nil, func(model.Field, *Request) (Widget, error) { return nil, failing })
	hinted.Metadata["widget"] = "broken"
	if _, err := reg.Lookup(hinted, nil); !errors.Is(err, failing) {
		t.Fatalf("expected factory error to propagate, got %v", err)
	}
}

func TestDecorate_SetsWidgetHints(t *testing.T) {
	reg := NewRegistry()
	form := &model.FormModel{Fields: []model.Field{
		testsupport.FoodField(),
		{Name: "note", Type: model.FieldTypeString},
	}}

	if err := reg.Decorate(form); err != nil {
		t.Fatalf("decorate: %v", err)
	}

	got := []string{form.Fields[0].Metadata["widget"], form.Fields[0].UIHints["widget"], form.Fields[1].UIHints["widget"]}
	if diff := cmp.Diff([]string{WidgetSelect, WidgetSelect, ""}, got); diff != "" {
		t.Fatalf("decorated hints mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistryNames(t *testing.T) {
	if diff := cmp.Diff([]string{WidgetMultiSelect, WidgetSelect}, NewRegistry().Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}
