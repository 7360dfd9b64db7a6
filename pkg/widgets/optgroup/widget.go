package optgroup

import (
	"context"
	"fmt"

	"github.com/goliatone/go-formgen-optgroup/pkg/widgets"
)

const (
	// WidgetName is the registry name of the optgroup widget.
	WidgetName = "optgroup"
	// Klass is the CSS class every optgroup widget carries.
	Klass = "optgroup-widget"

	maxSize = 10
)

// Item is one rendered option.
type Item = widgets.Item

// Group is an optgroup label with its options in vocabulary order.
type Group struct {
	Title   string `json:"title"`
	Members []Item `json:"members"`
}

// Rendered is the render model returned by Items.
type Rendered struct {
	// Placeholder is the "no value" option; nil for multiple selects.
	Placeholder *Item   `json:"placeholder,omitempty"`
	Groups      []Group `json:"groups"`
}

// Len returns the number of rendered rows: the placeholder and all options.
func (r Rendered) Len() int {
	n := 0
	if r.Placeholder != nil {
		n++
	}
	for _, group := range r.Groups {
		n += len(group.Members)
	}
	return n
}

// Widget is the grouped select widget.
type Widget struct {
	*widgets.SelectWidget
}

var _ widgets.Widget = (*Widget)(nil)

// New creates an unbound optgroup widget.
func New() *Widget {
	base := widgets.NewSelectWidget(WidgetName)
	base.Klass = Klass
	return &Widget{SelectWidget: base}
}

// Update resolves terms and value through the base select widget, then
// applies the field CSS classes.
func (w *Widget) Update(ctx context.Context) error {
	if err := w.SelectWidget.Update(ctx); err != nil {
		return err
	}
	w.AddFieldClass()
	return nil
}

// Items returns the grouped render model and recomputes Size. Before Update it
// returns an empty model. The placeholder is selected when Value is empty or
// holds only the no-value token.
func (w *Widget) Items() Rendered {
	if !w.Updated() || w.Terms == nil {
		return Rendered{}
	}

	var rendered Rendered
	if !w.Multiple {
		placeholder := w.PlaceholderItem()
		rendered.Placeholder = &placeholder
	}

	var order []string
	members := make(map[string][]Item)
	for idx, term := range w.Terms.Terms() {
		if _, seen := members[term.Optgroup]; !seen {
			order = append(order, term.Optgroup)
		}
		members[term.Optgroup] = append(members[term.Optgroup], Item{
			ID:       fmt.Sprintf("%s-%d", w.ID(), idx),
			Value:    term.Token,
			Content:  w.TermContent(term),
			Selected: w.IsSelected(term),
		})
	}

	rendered.Groups = make([]Group, 0, len(order))
	for _, title := range order {
		rendered.Groups = append(rendered.Groups, Group{Title: title, Members: members[title]})
	}

	w.GetSize(rendered.Groups)
	return rendered
}

// GetSize sets and returns the height hint: the field max length when
// declared, 1 for single selects, otherwise options plus group labels capped
// at ten rows.
func (w *Widget) GetSize(groups []Group) int {
	switch maxLength, ok := w.Field().MaxLength(); {
	case ok:
		w.Size = maxLength
	case !w.Multiple:
		w.Size = 1
	default:
		amount := len(groups)
		for _, group := range groups {
			amount += len(group.Members)
		}
		w.Size = min(amount, maxSize)
	}
	return w.Size
}

// DisplayValue maps each group label to the contents of the selected terms in
// that group. The placeholder token is skipped. Untitled terms contribute the
// string form of their value. A token outside the vocabulary is an error.
func (w *Widget) DisplayValue() (map[string][]string, error) {
	groups, err := w.DisplayGroups()
	if err != nil {
		return nil, err
	}
	out := make(map[string][]string, len(groups))
	for _, group := range groups {
		out[group.Title] = group.Contents
	}
	return out, nil
}

// DisplayGroup is one group of selected contents.
type DisplayGroup struct {
	Title    string   `json:"title"`
	Contents []string `json:"contents"`
}

// DisplayGroups returns the DisplayValue data ordered by first selection.
func (w *Widget) DisplayGroups() ([]DisplayGroup, error) {
	var groups []DisplayGroup
	index := make(map[string]int)
	for _, token := range w.Value {
		if token == widgets.NoValueToken {
			continue
		}
		term, err := w.Terms.TermByToken(token)
		if err != nil {
			return nil, fmt.Errorf("optgroup: display %s: %w", w.Field().Name, err)
		}
		content := fmt.Sprint(term.Value)
		if term.Titled() {
			content = w.TermContent(term)
		}
		pos, ok := index[term.Optgroup]
		if !ok {
			pos = len(groups)
			index[term.Optgroup] = pos
			groups = append(groups, DisplayGroup{Title: term.Optgroup})
		}
		groups[pos].Contents = append(groups[pos].Contents, content)
	}
	return groups, nil
}

// Template returns the template for the current mode.
func (w *Widget) Template() string {
	if w.Mode == widgets.DisplayMode {
		return "optgroup_display"
	}
	return "optgroup"
}

// TemplateData returns the data the optgroup templates read. Items runs first
// so the size reflects the rendered rows.
func (w *Widget) TemplateData() map[string]any {
	rendered := w.Items()
	data := w.BaseTemplateData()

	if rendered.Placeholder != nil {
		data["placeholder"] = widgets.ItemData(*rendered.Placeholder)
	}
	groups := make([]map[string]any, 0, len(rendered.Groups))
	for _, group := range rendered.Groups {
		members := make([]map[string]any, 0, len(group.Members))
		for _, item := range group.Members {
			members = append(members, widgets.ItemData(item))
		}
		groups = append(groups, map[string]any{
			"title":   group.Title,
			"members": members,
		})
	}
	data["groups"] = groups

	display := make([]map[string]any, 0)
	if selected, err := w.DisplayGroups(); err == nil {
		for _, group := range selected {
			display = append(display, map[string]any{
				"title":    group.Title,
				"contents": group.Contents,
			})
		}
	}
	data["display_groups"] = display
	return data
}
