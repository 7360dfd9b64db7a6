package i18n

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"
)

// DefaultLocale is used when no locale can be negotiated.
const DefaultLocale = "en-US"

// ErrMissingMessage is returned when a key has no message for the negotiated
// locale.
var ErrMissingMessage = errors.New("i18n: missing message")

type catalogFile struct {
	Locale   string            `yaml:"locale"`
	Messages map[string]string `yaml:"messages"`
}

// Catalog stores messages per locale and translates keys for the best
// matching supported locale.
type Catalog struct {
	fallback language.Tag
	tags     []language.Tag
	matcher  language.Matcher
	builder  *catalog.Builder
	messages map[language.Tag]map[string]string
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithFallback overrides the locale used when negotiation fails.
func WithFallback(locale string) Option {
	return func(c *Catalog) {
		if tag, err := language.Parse(strings.TrimSpace(locale)); err == nil {
			c.fallback = tag
		}
	}
}

// New builds an empty catalog.
func New(opts ...Option) *Catalog {
	c := &Catalog{
		fallback: language.MustParse(DefaultLocale),
		messages: make(map[language.Tag]map[string]string),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(c)
	}
	c.builder = catalog.NewBuilder(catalog.Fallback(c.fallback))
	c.rebuildMatcher()
	return c
}

// LoadFS loads every `*.yaml`/`*.yml` file found in fsys. Each file declares a
// locale and a flat message map:
//
//	locale: de-DE
//	messages:
//	  Apple: Apfel
func LoadFS(fsys fs.FS, opts ...Option) (*Catalog, error) {
	c := New(opts...)
	if fsys == nil {
		return c, nil
	}

	paths, err := fs.Glob(fsys, "*/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("i18n: glob catalogs: %w", err)
	}
	more, err := fs.Glob(fsys, "*.yaml")
	if err != nil {
		return nil, fmt.Errorf("i18n: glob catalogs: %w", err)
	}
	paths = append(paths, more...)
	sort.Strings(paths)

	for _, path := range paths {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("i18n: read catalog %s: %w", path, err)
		}
		var file catalogFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("i18n: parse catalog %s: %w", path, err)
		}
		if strings.TrimSpace(file.Locale) == "" {
			return nil, fmt.Errorf("i18n: catalog %s: locale is required", filepath.ToSlash(path))
		}
		if err := c.Add(file.Locale, file.Messages); err != nil {
			return nil, fmt.Errorf("i18n: catalog %s: %w", path, err)
		}
	}
	return c, nil
}

// Add registers messages for locale. Later additions override earlier ones.
func (c *Catalog) Add(locale string, messages map[string]string) error {
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		return fmt.Errorf("parse locale tag %q: %w", locale, err)
	}

	keys := make([]string, 0, len(messages))
	for key := range messages {
		if strings.TrimSpace(key) == "" {
			return fmt.Errorf("message key cannot be blank for locale %q", locale)
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	bucket, ok := c.messages[tag]
	if !ok {
		bucket = make(map[string]string, len(messages))
		c.messages[tag] = bucket
	}
	for _, key := range keys {
		if err := c.builder.SetString(tag, key, messages[key]); err != nil {
			return fmt.Errorf("set message %q: %w", key, err)
		}
		bucket[key] = messages[key]
	}
	c.rebuildMatcher()
	return nil
}

// Translate implements render.Translator.
func (c *Catalog) Translate(locale, key string, args ...any) (string, error) {
	if c == nil {
		return "", ErrMissingMessage
	}
	tag := c.Match(locale)
	if _, ok := c.messages[tag][key]; !ok {
		return "", fmt.Errorf("%w: %q (%s)", ErrMissingMessage, key, tag)
	}
	printer := message.NewPrinter(tag, message.Catalog(c.builder))
	return printer.Sprintf(key, args...), nil
}

// Match negotiates the best supported tag for locale, falling back to the
// catalog fallback locale.
func (c *Catalog) Match(locale string) language.Tag {
	if c == nil || len(c.tags) == 0 {
		return language.MustParse(DefaultLocale)
	}
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return c.fallback
	}
	desired, err := language.Parse(locale)
	if err != nil {
		return c.fallback
	}
	_, idx, confidence := c.matcher.Match(desired)
	if confidence == language.No || idx < 0 || idx >= len(c.tags) {
		return c.fallback
	}
	return c.tags[idx]
}

// MatchTags negotiates among an ordered preference list such as the one
// parsed from an Accept-Language header.
func (c *Catalog) MatchTags(tags []language.Tag) language.Tag {
	if c == nil || len(c.tags) == 0 || len(tags) == 0 {
		return c.fallbackTag()
	}
	_, idx, confidence := c.matcher.Match(tags...)
	if confidence == language.No || idx < 0 || idx >= len(c.tags) {
		return c.fallback
	}
	return c.tags[idx]
}

// Locales returns the supported locales sorted.
func (c *Catalog) Locales() []string {
	if c == nil {
		return nil
	}
	out := make([]string, 0, len(c.tags))
	for _, tag := range c.tags {
		out = append(out, tag.String())
	}
	sort.Strings(out)
	return out
}

func (c *Catalog) fallbackTag() language.Tag {
	if c == nil {
		return language.MustParse(DefaultLocale)
	}
	return c.fallback
}

func (c *Catalog) rebuildMatcher() {
	tags := []language.Tag{c.fallback}
	for tag := range c.messages {
		if tag == c.fallback {
			continue
		}
		tags = append(tags, tag)
	}
	sort.SliceStable(tags[1:], func(i, j int) bool {
		return tags[1+i].String() < tags[1+j].String()
	})
	c.tags = tags
	c.matcher = language.NewMatcher(tags)
}
