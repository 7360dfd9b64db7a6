package widgets

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-formgen-optgroup/pkg/model"
)

const (
	inputPrefix = "form.widgets."
	idPrefix    = "form-widgets-"

	// RequiredMessage is recorded against required fields left empty.
	RequiredMessage = "Required input is missing."
)

// InputName returns the form input name used for the field called name.
func InputName(name string) string { return inputPrefix + name }

// WidgetID returns the DOM id used for the field called name.
func WidgetID(name string) string { return idPrefix + name }

type selectBased interface {
	SelectBase() *SelectWidget
}

// Collect converts the submitted form carried by req into field values keyed
// by field name. Select based widgets contribute their converted term values
// (a single value, or a slice for multiple selects); other fields contribute
// the raw submitted string. Required fields left empty are reported in the
// returned error map. Unknown tokens and lookup failures abort the collection.
func Collect(ctx context.Context, form model.FormModel, req *Request) (map[string]any, map[string][]string, error) {
	if req == nil {
		req = &Request{}
	}
	values := make(map[string]any, len(form.Fields))
	var fieldErrors map[string][]string
	fail := func(name string) {
		if fieldErrors == nil {
			fieldErrors = make(map[string][]string)
		}
		fieldErrors[name] = append(fieldErrors[name], req.Translate(RequiredMessage))
	}

	for _, field := range form.Fields {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		if !req.Registry().Handles(field) {
			raw := strings.TrimSpace(req.Form.Get(InputName(field.Name)))
			if raw == "" && field.Required {
				fail(field.Name)
			}
			if raw != "" {
				values[field.Name] = raw
			}
			continue
		}
		widget, err := req.Registry().Lookup(field, req)
		if err != nil {
			return nil, nil, fmt.Errorf("widgets: collect %q: %w", field.Name, err)
		}
		if err := widget.Update(ctx); err != nil {
			return nil, nil, fmt.Errorf("widgets: collect %q: %w", field.Name, err)
		}

		based, ok := widget.(selectBased)
		if !ok {
			continue
		}
		base := based.SelectBase()
		converted, err := base.FieldValue()
		if err != nil {
			return nil, nil, fmt.Errorf("widgets: collect %q: %w", field.Name, err)
		}
		if len(converted) == 0 {
			if base.Required {
				fail(field.Name)
			}
			continue
		}
		if base.Multiple {
			values[field.Name] = converted
		} else {
			values[field.Name] = converted[0]
		}
	}
	return values, fieldErrors, nil
}
