package widgets

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-formgen-optgroup/pkg/model"
)

// Built-in widget identifiers exposed by the registry.
const (
	WidgetSelect      = "select"
	WidgetMultiSelect = "multi-select"
)

// Matcher decides whether a widget should handle the supplied field.
type Matcher func(field model.Field) bool

// Factory builds a bound widget for field and req.
type Factory func(field model.Field, req *Request) (Widget, error)

type rule struct {
	name     string
	priority int
	match    Matcher
	order    int
}

// Registry selects widgets for fields based on explicit hints or registered
// matchers, and builds them through the factory registered under the chosen
// name. Higher priority wins; ties fall back to registration order.
type Registry struct {
	mu        sync.RWMutex
	rules     []rule
	factories map[string]Factory
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// DefaultRegistry returns the process wide registry with the built-in select
// widgets registered.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry constructs a registry with the built-in select widgets
// registered.
func NewRegistry() *Registry {
	reg := &Registry{factories: make(map[string]Factory)}
	reg.registerBuiltins()
	return reg
}

// Register adds a widget under name. A nil matcher registers a factory that is
// only reachable through explicit hints; a nil factory registers a matcher
// used purely for decoration. The latest factory for a name wins.
func (r *Registry) Register(name string, priority int, matcher Matcher, factory Factory) {
	if r == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if matcher != nil {
		r.rules = append(r.rules, rule{
			name:     trimmed,
			priority: priority,
			match:    matcher,
			order:    len(r.rules),
		})
	}
	if factory != nil {
		if r.factories == nil {
			r.factories = make(map[string]Factory)
		}
		r.factories[trimmed] = factory
	}
}

// Names returns the names that have a factory, sorted.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Factory returns the factory registered under name.
func (r *Registry) Factory(name string) (Factory, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	factory, ok := r.factories[strings.TrimSpace(name)]
	return factory, ok
}

// Resolve returns the widget name for a field. Explicit hints (admin/widget
// metadata or UI hints) are honoured before matcher evaluation.
func (r *Registry) Resolve(field model.Field) (string, bool) {
	if explicit := ExplicitWidget(field); explicit != "" {
		return explicit, true
	}
	return r.ResolveDefault(field)
}

// ResolveDefault evaluates matchers only, skipping the excluded names.
func (r *Registry) ResolveDefault(field model.Field, exclude ...string) (string, bool) {
	if r == nil {
		return "", false
	}
	r.mu.RLock()
	if len(r.rules) == 0 {
		r.mu.RUnlock()
		return "", false
	}
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if slices.Contains(exclude, entry.name) {
			continue
		}
		if entry.match(field) {
			return entry.name, true
		}
	}
	return "", false
}

// Handles reports whether Resolve names a widget for field. Fields the
// registry does not handle render as plain inputs; for handled fields every
// Lookup failure is an error.
func (r *Registry) Handles(field model.Field) bool {
	_, ok := r.Resolve(field)
	return ok
}

// Lookup builds the widget Resolve picks for field. The widget is bound but
// not updated.
func (r *Registry) Lookup(field model.Field, req *Request) (Widget, error) {
	name, ok := r.Resolve(field)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoWidget, field.Name)
	}
	return r.build(name, field, req)
}

// Default builds the widget the matchers alone would pick for field, ignoring
// explicit hints and the excluded names. Specialised widgets call it to learn
// how the stock widget would be configured.
func (r *Registry) Default(field model.Field, req *Request, exclude ...string) (Widget, error) {
	name, ok := r.ResolveDefault(field, exclude...)
	if !ok {
		return nil, fmt.Errorf("%w: no default for %q", ErrNoWidget, field.Name)
	}
	return r.build(name, field, req)
}

func (r *Registry) build(name string, field model.Field, req *Request) (Widget, error) {
	factory, ok := r.Factory(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q has no factory for field %q", ErrNoWidget, name, field.Name)
	}
	widget, err := factory(field, req)
	if err != nil {
		return nil, fmt.Errorf("widgets: build %q: %w", name, err)
	}
	if widget == nil {
		return nil, fmt.Errorf("%w: factory %q returned nil", ErrNoWidget, name)
	}
	return widget, nil
}

// Decorate implements model.Decorator, applying registry resolution to every
// field in the form. When a widget is resolved, both Metadata["widget"] and
// UIHints["widget"] are set to the chosen name, preserving existing values
// when present.
func (r *Registry) Decorate(form *model.FormModel) error {
	if r == nil || form == nil {
		return nil
	}
	form.Fields = r.decorateFields(form.Fields)
	return nil
}

func (r *Registry) decorateFields(fields []model.Field) []model.Field {
	if len(fields) == 0 {
		return fields
	}
	decorated := make([]model.Field, len(fields))
	for idx, field := range fields {
		decorated[idx] = r.decorateField(field)
	}
	return decorated
}

func (r *Registry) decorateField(field model.Field) model.Field {
	if widget, ok := r.Resolve(field); ok && widget != "" {
		if field.Metadata == nil {
			field.Metadata = make(map[string]string)
		}
		if field.Metadata[model.MetadataWidget] == "" {
			field.Metadata[model.MetadataWidget] = widget
		}
		if field.UIHints == nil {
			field.UIHints = make(map[string]string)
		}
		if field.UIHints[model.MetadataWidget] == "" {
			field.UIHints[model.MetadataWidget] = widget
		}
	}
	return field
}

// ExplicitWidget returns the widget name a field asks for through its
// admin.widget/widget metadata or widget UI hint.
func ExplicitWidget(field model.Field) string {
	if field.Metadata != nil {
		if widget := strings.TrimSpace(field.Metadata["admin.widget"]); widget != "" {
			return widget
		}
		if widget := strings.TrimSpace(field.Metadata[model.MetadataWidget]); widget != "" {
			return widget
		}
	}
	if field.UIHints != nil {
		if widget := strings.TrimSpace(field.UIHints[model.MetadataWidget]); widget != "" {
			return widget
		}
	}
	return ""
}

func (r *Registry) registerBuiltins() {
	r.Register(WidgetMultiSelect, 80, func(field model.Field) bool {
		if field.Type != model.FieldTypeArray {
			return false
		}
		return HasTerms(field) || (field.Items != nil && HasTerms(*field.Items))
	}, func(field model.Field, req *Request) (Widget, error) {
		widget := NewSelectWidget(WidgetMultiSelect)
		widget.Multiple = true
		return FieldWidget(field, req, widget), nil
	})

	r.Register(WidgetSelect, 70, func(field model.Field) bool {
		if field.Type == model.FieldTypeArray || field.Type == model.FieldTypeObject {
			return false
		}
		return HasTerms(field)
	}, func(field model.Field, req *Request) (Widget, error) {
		return FieldWidget(field, req, NewSelectWidget(WidgetSelect)), nil
	})
}
