package widgets

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formgen-optgroup/pkg/model"
	"github.com/goliatone/go-formgen-optgroup/pkg/testsupport"
	"github.com/goliatone/go-formgen-optgroup/pkg/vocabulary"
)

func newFoodSelect(t *testing.T, req *Request) *SelectWidget {
	t.Helper()
	if req.Vocabularies == nil {
		req.Vocabularies = testsupport.FoodRegistry(t)
	}
	widget := NewSelectWidget(WidgetSelect)
	FieldWidget(testsupport.FoodField(), req, widget)
	if err := widget.Update(testsupport.Context()); err != nil {
		t.Fatalf("update: %v", err)
	}
	return widget
}

func TestSelectWidget_ItemsBeforeUpdate(t *testing.T) {
	widget := NewSelectWidget(WidgetSelect)
	FieldWidget(testsupport.FoodField(), nil, widget)
	if items := widget.Items(); len(items) != 0 {
		t.Fatalf("expected no items before update, got %d", len(items))
	}
}

func TestSelectWidget_ExtractAndSelection(t *testing.T) {
	req := &Request{Form: url.Values{"form.widgets.food": {"t3", "bogus"}}}
	widget := newFoodSelect(t, req)

	if diff := cmp.Diff([]string{"t3"}, widget.Value); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}
	leek, _ := widget.Terms.TermByToken("t3")
	apple, _ := widget.Terms.TermByToken("t1")
	if !widget.IsSelected(leek) || widget.IsSelected(apple) {
		t.Fatalf("unexpected selection state for %v", widget.Value)
	}
	if widget.NoValueSelected() {
		t.Fatalf("placeholder should not be selected")
	}

	items := widget.Items()
	if len(items) != 6 || items[0].Value != NoValueToken || items[0].Content != DefaultNoValueMessage {
		t.Fatalf("unexpected items: %+v", items)
	}
	if items[3].ID != "form-widgets-food-2" || !items[3].Selected {
		t.Fatalf("unexpected leek item: %+v", items[3])
	}
}

func TestSelectWidget_EmptyMarker(t *testing.T) {
	widget := NewSelectWidget(WidgetSelect)
	FieldWidget(testsupport.FoodField(), &Request{Form: url.Values{"form.widgets.food-empty-marker": {"1"}}}, widget)

	values, ok := widget.Extract()
	if !ok || len(values) != 0 {
		t.Fatalf("expected empty submission, got %v ok=%v", values, ok)
	}

	FieldWidget(testsupport.FoodField(), &Request{Form: url.Values{}}, widget)
	if _, ok := widget.Extract(); ok {
		t.Fatalf("expected absent submission")
	}
}

func TestSelectWidget_PrefillAndDefault(t *testing.T) {
	widget := newFoodSelect(t, &Request{Values: map[string]any{"food": "kale"}})
	if diff := cmp.Diff([]string{"t4"}, widget.Value); diff != "" {
		t.Fatalf("prefill mismatch (-want +got):\n%s", diff)
	}

	field := testsupport.FoodField()
	field.Default = "pear"
	req := &Request{Vocabularies: testsupport.FoodRegistry(t)}
	widget = NewSelectWidget(WidgetSelect)
	FieldWidget(field, req, widget)
	if err := widget.Update(context.Background()); err != nil {
		t.Fatalf("update: %v", err)
	}
	if diff := cmp.Diff([]string{"t2"}, widget.Value); diff != "" {
		t.Fatalf("default mismatch (-want +got):\n%s", diff)
	}
}

func TestSelectWidget_YAMLDefaultMatchesJSONVocabulary(t *testing.T) {
	parsed, err := vocabulary.Parse([]byte(`{"vocabularies": {"sizes": [{"value": 1}, {"value": 2}]}}`), "sizes.json")
	if err != nil {
		t.Fatalf("parse vocabulary: %v", err)
	}
	vocabs := vocabulary.NewRegistry()
	vocabs.MustRegister("sizes", parsed["sizes"])

	form, err := model.ParseForm([]byte("operationId: order\nfields:\n  - name: size\n    type: integer\n    default: 2\n    metadata:\n      vocabulary: sizes\n"), "order.yaml")
	if err != nil {
		t.Fatalf("parse form: %v", err)
	}

	widget := NewSelectWidget(WidgetSelect)
	FieldWidget(form.Fields[0], &Request{Vocabularies: vocabs}, widget)
	if err := widget.Update(context.Background()); err != nil {
		t.Fatalf("update: %v", err)
	}
	if diff := cmp.Diff([]string{"2"}, widget.Value); diff != "" {
		t.Fatalf("default mismatch (-want +got):\n%s", diff)
	}
}

func TestSelectWidget_Classes(t *testing.T) {
	field := testsupport.FoodField()
	field.Required = true
	req := &Request{
		Vocabularies: testsupport.FoodRegistry(t),
		Errors:       map[string][]string{"food": {"required"}},
	}
	widget := NewSelectWidget(WidgetSelect)
	FieldWidget(field, req, widget)
	if err := widget.Update(context.Background()); err != nil {
		t.Fatalf("update: %v", err)
	}
	widget.AddFieldClass()

	if got := widget.ClassAttr(); got != "select-widget string-field required error" {
		t.Fatalf("unexpected classes %q", got)
	}
}

func TestSelectWidget_TermContentTranslation(t *testing.T) {
	req := &Request{Translator: testsupport.StubTranslator{"Apple": "Apfel"}, Locale: "de"}
	widget := newFoodSelect(t, req)

	apple, _ := widget.Terms.TermByToken("t1")
	pear, _ := widget.Terms.TermByToken("t2")
	rye, _ := widget.Terms.TermByToken("t5")
	got := []string{widget.TermContent(apple), widget.TermContent(pear), widget.TermContent(rye)}
	if diff := cmp.Diff([]string{"Apfel", "Pear", ""}, got); diff != "" {
		t.Fatalf("content mismatch (-want +got):\n%s", diff)
	}
}

func TestSelectWidget_PromptHint(t *testing.T) {
	field := testsupport.FoodField()
	field.UIHints = map[string]string{"prompt": "Pick one"}
	widget := NewSelectWidget(WidgetSelect)
	FieldWidget(field, &Request{Vocabularies: testsupport.FoodRegistry(t)}, widget)
	if err := widget.Update(context.Background()); err != nil {
		t.Fatalf("update: %v", err)
	}
	if item := widget.PlaceholderItem(); item.Content != "Pick one" || !item.Selected {
		t.Fatalf("unexpected placeholder %+v", item)
	}
}

func TestSelectWidget_FromStringAndFieldValue(t *testing.T) {
	widget := newFoodSelect(t, &Request{Form: url.Values{"form.widgets.food": {NoValueToken}}})

	value, err := widget.FromString(" t3 ")
	if err != nil || value != "leek" {
		t.Fatalf("expected leek, got %v (%v)", value, err)
	}
	if _, err := widget.FromString("nope"); !errors.Is(err, vocabulary.ErrTermNotFound) {
		t.Fatalf("expected ErrTermNotFound, got %v", err)
	}

	values, err := widget.FieldValue()
	if err != nil || len(values) != 0 {
		t.Fatalf("expected placeholder to convert to nothing, got %v (%v)", values, err)
	}
	if !widget.NoValueSelected() {
		t.Fatalf("expected placeholder selected")
	}
}

func TestSelectWidget_UpdateErrors(t *testing.T) {
	widget := NewSelectWidget(WidgetSelect)
	FieldWidget(model.Field{Name: "bare", Type: model.FieldTypeString}, nil, widget)
	if err := widget.Update(context.Background()); !errors.Is(err, ErrNoVocabulary) {
		t.Fatalf("expected ErrNoVocabulary, got %v", err)
	}

	FieldWidget(testsupport.FoodField(), &Request{Vocabularies: vocabulary.NewRegistry()}, widget)
	if err := widget.Update(context.Background()); !errors.Is(err, vocabulary.ErrUnknownVocabulary) {
		t.Fatalf("expected ErrUnknownVocabulary, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := widget.Update(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context error, got %v", err)
	}
}

func TestSelectWidget_EnumFallback(t *testing.T) {
	field := model.Field{Name: "size", Type: model.FieldTypeArray, Items: &model.Field{Type: model.FieldTypeString, Enum: []any{"s", "m"}}}
	widget := NewSelectWidget(WidgetMultiSelect)
	widget.Multiple = true
	FieldWidget(field, nil, widget)
	if err := widget.Update(context.Background()); err != nil {
		t.Fatalf("update: %v", err)
	}

	items := widget.Items()
	if diff := cmp.Diff([]Item{
		{ID: "form-widgets-size-0", Value: "s"},
		{ID: "form-widgets-size-1", Value: "m"},
	}, items); diff != "" {
		t.Fatalf("items mismatch (-want +got):\n%s", diff)
	}
}

func TestNewRequest_ReadsPostForm(t *testing.T) {
	body := strings.NewReader("form.widgets.food=t1&form.widgets.food=t4")
	httpReq := httptest.NewRequest(http.MethodPost, "/?form.widgets.food=t2", body)
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	req, err := NewRequest(httpReq, WithLocale("de"))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if diff := cmp.Diff([]string{"t1", "t4"}, req.Form["form.widgets.food"]); diff != "" {
		t.Fatalf("form mismatch (-want +got):\n%s", diff)
	}
	if req.Locale != "de" || req.Registry() != DefaultRegistry() {
		t.Fatalf("unexpected request %+v", req)
	}
}

func TestSequenceConverter(t *testing.T) {
	conv := SequenceConverter{Terms: testsupport.FoodVocabulary(t)}

	if diff := cmp.Diff([]string{"t1", "t3"}, conv.ToWidgetValue([]any{"apple", "missing", "leek"})); diff != "" {
		t.Fatalf("widget value mismatch (-want +got):\n%s", diff)
	}
	values, err := conv.ToFieldValue([]string{NoValueToken, "t2"})
	if err != nil {
		t.Fatalf("to field value: %v", err)
	}
	if diff := cmp.Diff([]any{"pear"}, values); diff != "" {
		t.Fatalf("field value mismatch (-want +got):\n%s", diff)
	}
	if _, err := conv.ToFieldValue([]string{"zz"}); !errors.Is(err, vocabulary.ErrTermNotFound) {
		t.Fatalf("expected ErrTermNotFound, got %v", err)
	}
}
