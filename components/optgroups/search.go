package optgroups

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formgen-optgroup/pkg/render"
	"github.com/goliatone/go-formgen-optgroup/pkg/vocabulary"
)

// Option is one selectable term.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Group is an optgroup label with its matching options.
type Group struct {
	Label   string   `json:"label"`
	Options []Option `json:"options"`
}

// Labeler returns the display label of a term.
type Labeler func(term vocabulary.Term) string

// TranslatedLabels labels titled terms with their translated title and falls
// back to the value for untitled terms.
func TranslatedLabels(locale string, t render.Translator) Labeler {
	return func(term vocabulary.Term) string {
		if term.Titled() {
			return render.Translate(locale, term.Title, term.Title, t, nil)
		}
		if term.Title != "" {
			return term.Title
		}
		return fmt.Sprint(term.Value)
	}
}

// Search returns the groups whose options match query, keeping vocabulary
// order for both groups and options. At most limit options are returned.
func Search(terms *vocabulary.Vocabulary, query string, limit int, label Labeler, opts Options) []Group {
	limit = clampLimit(limit, opts)
	if limit == 0 || terms == nil {
		return nil
	}

	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" && opts.EmptySearchMode != EmptySearchTop {
		return nil
	}

	var groups []Group
	index := make(map[string]int)
	count := 0
	for _, term := range terms.Terms() {
		if count >= limit {
			break
		}
		text := label(term)
		if query != "" && !matches(query, text, term) {
			continue
		}
		pos, ok := index[term.Optgroup]
		if !ok {
			pos = len(groups)
			index[term.Optgroup] = pos
			groups = append(groups, Group{Label: term.Optgroup})
		}
		groups[pos].Options = append(groups[pos].Options, Option{Value: term.Token, Label: text})
		count++
	}
	return groups
}

func matches(query, label string, term vocabulary.Term) bool {
	return strings.Contains(strings.ToLower(label), query) ||
		strings.Contains(strings.ToLower(term.Token), query) ||
		strings.Contains(strings.ToLower(term.Optgroup), query)
}
