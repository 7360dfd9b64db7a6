package render_test

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formgen-optgroup/pkg/model"
	"github.com/goliatone/go-formgen-optgroup/pkg/render"
)

func TestMapErrorPayload(t *testing.T) {
	form := model.FormModel{
		Fields: []model.Field{
			{Name: "food", Type: model.FieldTypeString},
			{Name: "tags", Type: model.FieldTypeArray},
		},
	}

	payload := map[string][]string{
		"/body/food":            {"Pick a dish", " Pick a dish "},
		"$.body.tags[0]":        {"Tags must be unique"},
		"form.widgets.food":     {"Unknown token"},
		"non_field_errors":      {"Form level error"},
		"request/body/unknown":  {"Falls back to form errors"},
		"":                      {"Unscoped form error"},
		"/body/food/whitespace": {"   "},
	}

	mapped := render.MapErrorPayload(form, payload)

	for name := range mapped.Fields {
		sort.Strings(mapped.Fields[name])
	}
	wantFields := map[string][]string{
		"food": {"Pick a dish", "Unknown token"},
		"tags": {"Tags must be unique"},
	}
	if diff := cmp.Diff(wantFields, mapped.Fields); diff != "" {
		t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
	}

	sort.Strings(mapped.Form)
	wantForm := []string{"Falls back to form errors", "Form level error", "Unscoped form error"}
	if diff := cmp.Diff(wantForm, mapped.Form); diff != "" {
		t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
	}
}
