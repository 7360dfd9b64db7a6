// Package i18n loads message catalogs and serves them through the
// render.Translator contract. Messages are keyed by their source text, so a
// term title doubles as its message id and untranslated titles fall back to
// themselves. Formatting goes through golang.org/x/text/message printers and
// locale negotiation through golang.org/x/text/language matchers.
package i18n
