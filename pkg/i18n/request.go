package i18n

import (
	"net/http"
	"strings"

	"golang.org/x/text/language"
)

const (
	// LangParam is the query parameter used to select a language.
	LangParam = "lang"
	// LangCookieName stores the user's language preference.
	LangCookieName = "optgroup_lang"
)

// RequestLocale determines the best supported locale for the request. The
// `lang` query parameter wins over the language cookie, which wins over the
// Accept-Language header.
func (c *Catalog) RequestLocale(r *http.Request) string {
	if r == nil {
		return c.fallbackTag().String()
	}

	if value := strings.TrimSpace(r.URL.Query().Get(LangParam)); value != "" {
		if _, err := language.Parse(value); err == nil {
			return c.Match(value).String()
		}
	}

	if cookie, err := r.Cookie(LangCookieName); err == nil {
		if _, err := language.Parse(cookie.Value); err == nil {
			return c.Match(cookie.Value).String()
		}
	}

	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil {
			return c.MatchTags(tags).String()
		}
	}

	return c.fallbackTag().String()
}
