package optgroup

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formgen-optgroup/pkg/model"
	"github.com/goliatone/go-formgen-optgroup/pkg/widgets"
)

// DefaultPriority ranks the optgroup matcher above the stock select widgets.
const DefaultPriority = 85

// FieldWidget builds a bound optgroup widget for field. Multiple is copied from
// the widget the registry builds for the field by default, so collection
// fields become multiple selects through their element type.
func FieldWidget(field model.Field, req *widgets.Request) (widgets.Widget, error) {
	widget := New()
	widgets.FieldWidget(field, req, widget)

	stock, err := req.Registry().Default(field, req, WidgetName)
	if err != nil {
		return nil, fmt.Errorf("optgroup: default widget for %q: %w", field.Name, err)
	}
	widget.SetMultiple(stock.IsMultiple())
	return widget, nil
}

// Register adds the optgroup widget to reg. Fields (or collection items)
// flagged with the `optgroup` hint are matched; any field can opt in
// explicitly with `widget: optgroup`.
func Register(reg *widgets.Registry, priority int) {
	reg.Register(WidgetName, priority, Matches, FieldWidget)
}

// Matches reports whether field asks for grouped rendering and has terms to
// group. The hint may sit on the field or on its items.
func Matches(field model.Field) bool {
	items := field.Items
	if !flagged(field) && (items == nil || !flagged(*items)) {
		return false
	}
	return widgets.HasTerms(field) || (items != nil && widgets.HasTerms(*items))
}

func flagged(field model.Field) bool {
	switch strings.ToLower(field.Hint(model.MetadataOptgroup)) {
	case "true", "1", "yes":
		return true
	}
	return false
}
