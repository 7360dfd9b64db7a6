// Package widgets is the field-widget layer the optgroup widget plugs into.
//
// A Widget renders one model.Field: the registry resolves a widget name for
// the field (explicit `widget` hints first, then priority ordered matchers),
// the name's Factory builds the widget for the current Request, Update
// resolves terms and the current value, and renderers read TemplateData.
//
// SelectWidget is the shared base for vocabulary backed widgets. It resolves
// the field vocabulary through the request's Provider, extracts submitted
// tokens, answers the selection predicate and applies the field CSS class
// convention. SequenceConverter maps between submitted tokens and field
// values.
//
// Registry.Default answers which widget the registry would build for a field
// when no explicit hint is present; specialised widgets use it to agree with
// the stock select widgets on single versus multiple selection.
package widgets
