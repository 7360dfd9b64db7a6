package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/goliatone/go-formgen-optgroup/pkg/model"
	"github.com/goliatone/go-formgen-optgroup/pkg/render"
	"github.com/goliatone/go-formgen-optgroup/pkg/widgets"
	"github.com/goliatone/go-formgen-optgroup/pkg/widgets/optgroup"
)

// Renderer implements render.Renderer for terminal sessions. Select backed
// fields are prompted through the same widgets the HTML renderer builds, so
// grouping, translation and selection defaults match.
type Renderer struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	widgets           *widgets.Registry
	submitTransformer SubmitTransformer
	theme             Theme
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		outputFormat: OutputFormatJSON,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	if r.driver == nil {
		r.driver = NewSurveyDriver(nil)
	}
	if r.widgets == nil {
		r.widgets = widgets.NewRegistry()
		optgroup.Register(r.widgets, optgroup.DefaultPriority)
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

type answer struct {
	field   model.Field
	label   string
	input   string
	tokens  []string
	value   any
	display string
}

// Render prompts every field in order and serializes the answers.
func (r *Renderer) Render(ctx context.Context, form model.FormModel, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}

	req := widgets.RequestFromOptions(opts, r.widgets)
	if summary := strings.TrimSpace(form.Summary); summary != "" {
		if err := r.driver.Info(ctx, r.theme.InfoPrefix+summary); err != nil {
			return nil, err
		}
	}
	answers := make([]answer, 0, len(form.Fields))
	for _, field := range form.Fields {
		field = render.LocalizeField(field, opts)
		for _, message := range req.FieldErrors(field.Name) {
			if err := r.driver.Info(ctx, r.theme.ErrorPrefix+message); err != nil {
				return nil, err
			}
		}

		ans, err := r.promptField(ctx, field, req)
		if err != nil {
			return nil, err
		}
		answers = append(answers, ans)
	}
	return r.serialize(answers)
}

func (r *Renderer) promptField(ctx context.Context, field model.Field, req *widgets.Request) (answer, error) {
	if !r.widgets.Handles(field) {
		return r.promptInput(ctx, field, req)
	}
	widget, err := r.widgets.Lookup(field, req)
	if err != nil {
		return answer{}, fmt.Errorf("tui: field %q: %w", field.Name, err)
	}
	if err := widget.Update(ctx); err != nil {
		return answer{}, fmt.Errorf("tui: update %q: %w", field.Name, err)
	}

	based, ok := widget.(interface{ SelectBase() *widgets.SelectWidget })
	if !ok {
		return answer{}, fmt.Errorf("tui: widget %q for field %q is not select based", widget.Name(), field.Name)
	}
	base := based.SelectBase()

	choices := selectChoices(widget, base)
	labels := make([]string, len(choices))
	var defaults []int
	defaultIndex := 0
	for idx, choice := range choices {
		labels[idx] = choice.label
		if choice.item.Selected {
			defaults = append(defaults, idx)
			if len(defaults) == 1 {
				defaultIndex = idx
			}
		}
	}

	cfg := SelectConfig{
		Message:      field.DisplayLabel(),
		Options:      labels,
		DefaultIndex: defaultIndex,
		Defaults:     defaults,
		Help:         field.Description,
	}
	if base.Multiple && base.Size > 1 {
		cfg.PageSize = base.Size
	}

	var picked []int
	if base.Multiple {
		picked, err = r.driver.MultiSelect(ctx, cfg)
	} else {
		var idx int
		idx, err = r.driver.Select(ctx, cfg)
		picked = []int{idx}
	}
	if err != nil {
		return answer{}, err
	}

	tokens := make([]string, 0, len(picked))
	parts := make([]string, 0, len(picked))
	for _, idx := range picked {
		if idx < 0 || idx >= len(choices) {
			return answer{}, fmt.Errorf("%w: %d for field %q", ErrNoSelection, idx, field.Name)
		}
		tokens = append(tokens, choices[idx].item.Value)
		if choices[idx].item.Value != widgets.NoValueToken {
			parts = append(parts, choices[idx].label)
		}
	}
	base.Value = tokens

	values, err := base.FieldValue()
	if err != nil {
		return answer{}, fmt.Errorf("tui: field %q: %w", field.Name, err)
	}

	ans := answer{
		field:   field,
		label:   field.DisplayLabel(),
		tokens:  tokens,
		display: strings.Join(parts, ", "),
	}
	if base.Multiple {
		ans.value = values
	} else if len(values) > 0 {
		ans.value = values[0]
	}
	ans.input = base.InputName()
	return ans, nil
}

type choice struct {
	label string
	item  widgets.Item
}

// selectChoices flattens the widget options. Optgroup members are labelled
// `Group › Content`.
func selectChoices(widget widgets.Widget, base *widgets.SelectWidget) []choice {
	grouped, ok := widget.(*optgroup.Widget)
	if !ok {
		items := base.Items()
		out := make([]choice, 0, len(items))
		for _, item := range items {
			out = append(out, choice{label: itemLabel(base, item), item: item})
		}
		return out
	}

	rendered := grouped.Items()
	out := make([]choice, 0, rendered.Len())
	if rendered.Placeholder != nil {
		out = append(out, choice{label: rendered.Placeholder.Content, item: *rendered.Placeholder})
	}
	for _, group := range rendered.Groups {
		for _, item := range group.Members {
			label := itemLabel(base, item)
			if group.Title != "" {
				label = group.Title + GroupSeparator + label
			}
			out = append(out, choice{label: label, item: item})
		}
	}
	return out
}

func itemLabel(base *widgets.SelectWidget, item widgets.Item) string {
	if item.Content != "" {
		return item.Content
	}
	if term, err := base.Terms.TermByToken(item.Value); err == nil {
		return widgets.ContentOrValue(term, "")
	}
	return item.Value
}

func (r *Renderer) promptInput(ctx context.Context, field model.Field, req *widgets.Request) (answer, error) {
	def := ""
	if value, ok := req.Values[field.Name]; ok && value != nil {
		def = fmt.Sprint(value)
	} else if field.Default != nil {
		def = fmt.Sprint(field.Default)
	}

	cfg := InputConfig{
		Message: field.DisplayLabel(),
		Default: def,
		Help:    field.Description,
	}
	if maxLength, ok := field.MaxLength(); ok {
		cfg.Validator = func(value string) error {
			if len([]rune(value)) > maxLength {
				return fmt.Errorf("at most %d characters", maxLength)
			}
			return nil
		}
	}
	if field.Required {
		next := cfg.Validator
		cfg.Validator = func(value string) error {
			if strings.TrimSpace(value) == "" {
				return errors.New("value is required")
			}
			if next != nil {
				return next(value)
			}
			return nil
		}
	}

	response, err := r.driver.Input(ctx, cfg)
	if err != nil {
		return answer{}, err
	}
	return answer{
		field:   field,
		label:   field.DisplayLabel(),
		input:   widgets.InputName(field.Name),
		tokens:  []string{response},
		value:   response,
		display: response,
	}, nil
}

func (r *Renderer) serialize(answers []answer) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		form := url.Values{}
		for _, ans := range answers {
			if len(ans.tokens) == 0 {
				form.Set(ans.input+"-empty-marker", "1")
				continue
			}
			for _, token := range ans.tokens {
				form.Add(ans.input, token)
			}
		}
		return []byte(form.Encode()), nil
	case OutputFormatPrettyText:
		var b strings.Builder
		for _, ans := range answers {
			fmt.Fprintf(&b, "%s: %s\n", ans.label, ans.display)
		}
		return []byte(b.String()), nil
	default:
		values := make(map[string]any, len(answers))
		for _, ans := range answers {
			values[ans.field.Name] = ans.value
		}
		if r.submitTransformer != nil {
			var err error
			values, err = r.submitTransformer(values)
			if err != nil {
				return nil, fmt.Errorf("tui: submit transformer: %w", err)
			}
		}
		return json.Marshal(values)
	}
}
