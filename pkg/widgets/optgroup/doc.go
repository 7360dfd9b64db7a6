// Package optgroup provides a select widget that renders its options grouped
// by the optgroup label of each vocabulary term.
//
// The widget embeds widgets.SelectWidget and keeps its term resolution,
// extraction and selection rules. It changes the render model: Items returns
// the optional "no value" placeholder followed by groups in the order their
// labels first appear in the vocabulary, and the widget height follows the
// number of rendered rows. DisplayValue maps selected contents back onto
// their groups.
//
// FieldWidget is the factory to register; it copies the single/multiple
// choice from the widget the registry would build for the field without the
// optgroup hint.
package optgroup
