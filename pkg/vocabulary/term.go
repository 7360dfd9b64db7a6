package vocabulary

import (
	"fmt"
	"strings"
)

// Term is a tokenized option entry carrying an optional group label.
type Term struct {
	Value    any
	Token    string
	Title    string
	Optgroup string

	titled bool
}

// TermOption configures a term built by NewTerm.
type TermOption func(*termConfig)

type termConfig struct {
	token    string
	hasToken bool
	title    string
	optgroup string
}

// WithToken sets an explicit token. Without it the token is the string form of
// the value.
func WithToken(token string) TermOption {
	return func(cfg *termConfig) {
		cfg.token = token
		cfg.hasToken = true
	}
}

// WithTitle sets the human readable title. A non-empty title marks the term as
// titled, which makes widgets translate it before display.
func WithTitle(title string) TermOption {
	return func(cfg *termConfig) {
		cfg.title = title
	}
}

// WithOptgroup sets the group label the term is rendered under.
func WithOptgroup(group string) TermOption {
	return func(cfg *termConfig) {
		cfg.optgroup = group
	}
}

// NewTerm creates a term for value.
func NewTerm(value any, opts ...TermOption) Term {
	cfg := termConfig{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	token := cfg.token
	if !cfg.hasToken {
		token = fmt.Sprint(value)
	}

	return Term{
		Value:    value,
		Token:    token,
		Title:    cfg.title,
		Optgroup: cfg.optgroup,
		titled:   cfg.title != "",
	}
}

// Titled reports whether the term carries a title.
func (t Term) Titled() bool {
	return t.titled
}

// String renders the term for debugging output.
func (t Term) String() string {
	var b strings.Builder
	b.WriteString(t.Token)
	if t.Optgroup != "" {
		b.WriteString(" [")
		b.WriteString(t.Optgroup)
		b.WriteString("]")
	}
	if t.titled {
		b.WriteString(" ")
		b.WriteString(fmt.Sprintf("%q", t.Title))
	}
	return b.String()
}
