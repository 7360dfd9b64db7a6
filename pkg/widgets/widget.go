package widgets

import (
	"context"
	"errors"

	"github.com/goliatone/go-formgen-optgroup/pkg/model"
)

// Mode selects between editable and read-only rendering.
type Mode string

const (
	InputMode   Mode = "input"
	DisplayMode Mode = "display"
)

var (
	// ErrNoWidget is returned when no widget can be resolved for a field.
	ErrNoWidget = errors.New("widgets: no widget for field")
	// ErrNoVocabulary is returned when a select field declares neither a
	// vocabulary name nor enum values.
	ErrNoVocabulary = errors.New("widgets: field has no vocabulary")
)

// Widget is the contract renderers consume.
type Widget interface {
	// Name returns the registry name the widget was built under.
	Name() string
	// ID returns the DOM id.
	ID() string
	// InputName returns the form input name submitted values arrive under.
	InputName() string
	Field() model.Field
	Request() *Request
	// Bind attaches the widget to a field and request. FieldWidget calls it.
	Bind(field model.Field, req *Request)
	Update(ctx context.Context) error
	// Extract returns the raw submitted values and whether any were sent.
	Extract() ([]string, bool)
	IsMultiple() bool
	SetMultiple(multiple bool)
	// Template returns the template name for the current mode.
	Template() string
	// TemplateData returns JSON friendly data for Template.
	TemplateData() map[string]any
}

// FieldWidget binds widget to field and req, the generic field-widget adapter
// every factory goes through.
func FieldWidget(field model.Field, req *Request, widget Widget) Widget {
	if widget == nil {
		return nil
	}
	if req == nil {
		req = &Request{}
	}
	widget.Bind(field, req)
	return widget
}
