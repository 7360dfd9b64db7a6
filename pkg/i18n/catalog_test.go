package i18n_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formgen-optgroup/pkg/i18n"
)

func loadCatalog(t *testing.T) *i18n.Catalog {
	t.Helper()
	c, err := i18n.LoadFS(os.DirFS("testdata"))
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return c
}

func TestCatalog_Translate(t *testing.T) {
	c := loadCatalog(t)

	if diff := cmp.Diff([]string{"de-DE", "en-US"}, c.Locales()); diff != "" {
		t.Fatalf("locales mismatch (-want +got):\n%s", diff)
	}

	got, err := c.Translate("de-DE", "Apple")
	if err != nil || got != "Apfel" {
		t.Fatalf("translate: got %q, err %v", got, err)
	}

	got, err = c.Translate("de", "Leek")
	if err != nil || got != "Lauch" {
		t.Fatalf("translate base language: got %q, err %v", got, err)
	}

	got, err = c.Translate("de-DE", "%d items", 3)
	if err != nil || got != "3 Einträge" {
		t.Fatalf("translate with args: got %q, err %v", got, err)
	}

	if _, err := c.Translate("de-DE", "Pear"); !errors.Is(err, i18n.ErrMissingMessage) {
		t.Fatalf("expected ErrMissingMessage, got %v", err)
	}
}

func TestCatalog_MatchFallsBack(t *testing.T) {
	c := loadCatalog(t)
	if got := c.Match("ja-JP").String(); got != "en-US" {
		t.Fatalf("expected fallback en-US, got %q", got)
	}
	if got := c.Match("").String(); got != "en-US" {
		t.Fatalf("expected fallback for empty locale, got %q", got)
	}
	if got := c.Match("not a tag!").String(); got != "en-US" {
		t.Fatalf("expected fallback for invalid locale, got %q", got)
	}
}

func TestCatalog_RequestLocale(t *testing.T) {
	c := loadCatalog(t)

	cases := []struct {
		name  string
		build func() *http.Request
		want  string
	}{
		{
			name: "query param",
			build: func() *http.Request {
				req := httptest.NewRequest(http.MethodGet, "/?lang=de", nil)
				req.Header.Set("Accept-Language", "en-US")
				return req
			},
			want: "de-DE",
		},
		{
			name: "cookie",
			build: func() *http.Request {
				req := httptest.NewRequest(http.MethodGet, "/", nil)
				req.AddCookie(&http.Cookie{Name: i18n.LangCookieName, Value: "de-DE"})
				return req
			},
			want: "de-DE",
		},
		{
			name: "accept language",
			build: func() *http.Request {
				req := httptest.NewRequest(http.MethodGet, "/", nil)
				req.Header.Set("Accept-Language", "fr-FR, de;q=0.8")
				return req
			},
			want: "de-DE",
		},
		{
			name: "default",
			build: func() *http.Request {
				return httptest.NewRequest(http.MethodGet, "/", nil)
			},
			want: "en-US",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := c.RequestLocale(tc.build()); got != tc.want {
				t.Fatalf("request locale: want %q, got %q", tc.want, got)
			}
		})
	}
}
