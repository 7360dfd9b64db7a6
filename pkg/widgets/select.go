package widgets

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-formgen-optgroup/pkg/model"
	"github.com/goliatone/go-formgen-optgroup/pkg/vocabulary"
)

const (
	// NoValueToken is submitted by the "no value" placeholder option.
	NoValueToken = "--NOVALUE--"
	// DefaultNoValueMessage labels the placeholder of optional selects.
	DefaultNoValueMessage = "No value"
	// DefaultPromptMessage labels the placeholder when Prompt is set.
	DefaultPromptMessage = "Select a value ..."

	emptyMarkerSuffix = "-empty-marker"
	selectKlass       = "select-widget"
)

// Item is one rendered option.
type Item struct {
	ID       string `json:"id"`
	Value    string `json:"value"`
	Content  string `json:"content"`
	Selected bool   `json:"selected"`
}

// SelectWidget is the base widget for vocabulary backed fields. Specialised
// widgets embed it and override Template, TemplateData and Update.
type SelectWidget struct {
	Klass          string
	Classes        []string
	Required       bool
	Multiple       bool
	Prompt         bool
	PromptMessage  string
	NoValueMessage string
	Size           int
	Mode           Mode

	// Terms is resolved by Update unless set beforehand.
	Terms *vocabulary.Vocabulary
	// Value holds the selected tokens. NoValueToken may be present when the
	// placeholder was submitted.
	Value []string

	name      string
	id        string
	inputName string
	field     model.Field
	request   *Request
	updated   bool
}

var _ Widget = (*SelectWidget)(nil)

// NewSelectWidget creates an unbound select widget registered under name.
func NewSelectWidget(name string) *SelectWidget {
	return &SelectWidget{
		Klass:          selectKlass,
		NoValueMessage: DefaultNoValueMessage,
		PromptMessage:  DefaultPromptMessage,
		Size:           1,
		Mode:           InputMode,
		name:           name,
	}
}

func (w *SelectWidget) Name() string       { return w.name }
func (w *SelectWidget) ID() string         { return w.id }
func (w *SelectWidget) InputName() string  { return w.inputName }
func (w *SelectWidget) Field() model.Field { return w.field }
func (w *SelectWidget) Request() *Request  { return w.request }
func (w *SelectWidget) IsMultiple() bool   { return w.Multiple }

// SetMultiple switches between single and multiple selection.
func (w *SelectWidget) SetMultiple(multiple bool) {
	w.Multiple = multiple
}

// SelectBase exposes the embedded base widget to renderers that need terms
// and values regardless of the concrete widget type.
func (w *SelectWidget) SelectBase() *SelectWidget {
	return w
}

// Updated reports whether Update completed successfully.
func (w *SelectWidget) Updated() bool {
	return w.updated
}

// Bind attaches the widget to field and req, deriving id, input name,
// required flag, mode and prompt settings.
func (w *SelectWidget) Bind(field model.Field, req *Request) {
	w.field = field
	w.request = req
	w.id = WidgetID(field.Name)
	w.inputName = InputName(field.Name)
	w.Required = field.Required
	w.updated = false

	if req != nil && req.Display {
		w.Mode = DisplayMode
	}
	if prompt := field.Hint("prompt"); prompt != "" {
		w.Prompt = true
		if prompt != "true" {
			w.PromptMessage = prompt
		}
	}
	if raw := field.Hint("size"); raw != "" {
		if size, err := strconv.Atoi(raw); err == nil && size > 0 {
			w.Size = size
		}
	}
}

// Update resolves the terms and the current value, then applies the field
// CSS classes. Submitted values win over pre-populated values, which win over
// the field default.
func (w *SelectWidget) Update(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if w.Terms == nil {
		terms, err := ResolveTerms(w.field, w.request)
		if err != nil {
			return err
		}
		w.Terms = terms
	}

	w.Value = nil
	if tokens, ok := w.Extract(); ok && w.Mode == InputMode {
		w.Value = w.knownTokens(tokens)
	} else if value, ok := w.prefill(); ok {
		w.Value = w.Converter().ToWidgetValue(toValues(value))
	}

	w.AddFieldClass()
	w.updated = true
	return nil
}

func (w *SelectWidget) prefill() (any, bool) {
	if w.request != nil && w.request.Values != nil {
		if value, ok := w.request.Values[w.field.Name]; ok {
			return value, true
		}
	}
	if w.field.Default != nil {
		return w.field.Default, true
	}
	return nil, false
}

func (w *SelectWidget) knownTokens(tokens []string) []string {
	known := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if token == NoValueToken || w.Terms.Contains(token) {
			known = append(known, token)
		}
	}
	return known
}

// Extract returns the raw submitted tokens. The boolean is false when the
// widget was not part of the submission. The empty marker input makes an
// empty multiple selection distinguishable from an absent one.
func (w *SelectWidget) Extract() ([]string, bool) {
	if w.request == nil || w.request.Form == nil {
		return nil, false
	}
	if values, ok := w.request.Form[w.inputName]; ok {
		return append([]string(nil), values...), true
	}
	if _, ok := w.request.Form[w.inputName+emptyMarkerSuffix]; ok {
		return []string{}, true
	}
	return nil, false
}

// EmptyMarker returns the name of the hidden marker input.
func (w *SelectWidget) EmptyMarker() string {
	return w.inputName + emptyMarkerSuffix
}

// IsSelected reports whether term is part of the current value.
func (w *SelectWidget) IsSelected(term vocabulary.Term) bool {
	for _, token := range w.Value {
		if token == term.Token {
			return true
		}
	}
	return false
}

// NoValueSelected reports whether the placeholder option is the selection:
// Value is empty or holds only NoValueToken.
func (w *SelectWidget) NoValueSelected() bool {
	for _, token := range w.Value {
		if token != NoValueToken {
			return false
		}
	}
	return true
}

// TermContent returns the display text of term. Titled terms are translated
// for the request locale; untitled terms keep their raw title.
func (w *SelectWidget) TermContent(term vocabulary.Term) string {
	if !term.Titled() {
		return term.Title
	}
	return w.request.Translate(term.Title)
}

// PlaceholderItem builds the "no value" option.
func (w *SelectWidget) PlaceholderItem() Item {
	message := w.NoValueMessage
	if w.Prompt {
		message = w.PromptMessage
	}
	return Item{
		ID:       w.id + "-novalue",
		Value:    NoValueToken,
		Content:  w.request.Translate(message),
		Selected: w.NoValueSelected(),
	}
}

// Items returns the flat option list. The placeholder leads single selects.
func (w *SelectWidget) Items() []Item {
	if !w.updated {
		return nil
	}
	terms := w.Terms.Terms()
	items := make([]Item, 0, len(terms)+1)
	if !w.Multiple {
		items = append(items, w.PlaceholderItem())
	}
	for idx, term := range terms {
		items = append(items, Item{
			ID:       fmt.Sprintf("%s-%d", w.id, idx),
			Value:    term.Token,
			Content:  w.TermContent(term),
			Selected: w.IsSelected(term),
		})
	}
	return items
}

// DisplayValue returns the contents of the selected terms, skipping the
// placeholder token and tokens outside the vocabulary.
func (w *SelectWidget) DisplayValue() []string {
	var out []string
	for _, token := range w.Value {
		if token == NoValueToken {
			continue
		}
		term, err := w.Terms.TermByToken(token)
		if err != nil {
			continue
		}
		out = append(out, ContentOrValue(term, w.TermContent(term)))
	}
	return out
}

// ContentOrValue falls back to the term value when content is empty.
func ContentOrValue(term vocabulary.Term, content string) string {
	if content != "" {
		return content
	}
	return fmt.Sprint(term.Value)
}

// FromString maps a submitted token to its term value.
func (w *SelectWidget) FromString(raw string) (any, error) {
	term, err := w.Terms.TermByToken(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("widgets: %s: %w", w.field.Name, err)
	}
	return term.Value, nil
}

// FieldValue converts the current selection into field values.
func (w *SelectWidget) FieldValue() ([]any, error) {
	return w.Converter().ToFieldValue(w.Value)
}

// Converter returns the data converter bound to the widget terms.
func (w *SelectWidget) Converter() SequenceConverter {
	return SequenceConverter{Terms: w.Terms}
}

// ClassAttr returns the class attribute value.
func (w *SelectWidget) ClassAttr() string {
	return strings.Join(mergeClasses(append([]string{w.Klass}, w.Classes...)), " ")
}

// Template returns the template for the current mode.
func (w *SelectWidget) Template() string {
	if w.Mode == DisplayMode {
		return "select_display"
	}
	return "select"
}

// TemplateData returns the data the select templates read.
func (w *SelectWidget) TemplateData() map[string]any {
	data := w.BaseTemplateData()
	items := w.Items()
	rows := make([]map[string]any, 0, len(items))
	for _, item := range items {
		rows = append(rows, ItemData(item))
	}
	data["items"] = rows
	data["display_value"] = w.DisplayValue()
	return data
}

// BaseTemplateData returns the attributes shared by every select template.
func (w *SelectWidget) BaseTemplateData() map[string]any {
	return map[string]any{
		"widget":         w.name,
		"id":             w.id,
		"name":           w.inputName,
		"klass":          w.ClassAttr(),
		"required":       w.Required,
		"multiple":       w.Multiple,
		"size":           w.Size,
		"mode":           string(w.Mode),
		"empty_marker":   w.EmptyMarker(),
		"no_value_token": NoValueToken,
		"field":          w.field.Name,
		"errors":         w.request.FieldErrors(w.field.Name),
	}
}

// ItemData converts an item to template data.
func ItemData(item Item) map[string]any {
	return map[string]any{
		"id":       item.ID,
		"value":    item.Value,
		"content":  item.Content,
		"selected": item.Selected,
	}
}
