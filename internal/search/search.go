// Package search implements case-insensitive matching over blog posts and
// site search items, plus HTML highlighting of matches.
package search

import (
	"encoding/json"
	"errors"
	"html"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/portfolio/backend/internal/model"
)

// ItemType is the kind of page a SearchItem points to.
type ItemType string

const (
	TypePage    ItemType = "page"
	TypeProject ItemType = "project"
	TypeBlog    ItemType = "blog"
)

// Keywords is either a single string or a list of strings.
type Keywords struct {
	Text string
	List []string
}

// IsList reports whether the keywords were given as a list.
func (k Keywords) IsList() bool { return k.List != nil }

func (k Keywords) MarshalJSON() ([]byte, error) {
	if k.IsList() {
		return json.Marshal(k.List)
	}
	return json.Marshal(k.Text)
}

func (k *Keywords) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*k = Keywords{Text: s}
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return errors.New("keywords: want string or array of strings")
	}
	if list == nil {
		list = []string{}
	}
	*k = Keywords{List: list}
	return nil
}

// SearchItem is one entry in the site search index.
type SearchItem struct {
	Title    string   `json:"title"`
	URL      string   `json:"url"`
	Type     ItemType `json:"type"`
	Keywords Keywords `json:"keywords"`
}

// fold lower-cases s for comparison. Full case folding would let "strasse"
// match "Straße", which HighlightMatch's (?i) matching cannot mark.
// Casers carry state, so one is made per call.
func fold(s string) string {
	return cases.Lower(language.Und).String(s)
}

// MatchesBlogPost reports whether post's title or excerpt contains query,
// ignoring case. A blank query matches everything.
func MatchesBlogPost(post model.BlogPost, query string) bool {
	q := strings.TrimSpace(query)
	if q == "" {
		return true
	}
	q = fold(q)
	return strings.Contains(fold(post.Title), q) || strings.Contains(fold(post.Excerpt), q)
}

// FilterBlogPosts returns posts matching query in their original order.
// A blank query returns posts unchanged.
func FilterBlogPosts(posts []model.BlogPost, query string) []model.BlogPost {
	if strings.TrimSpace(query) == "" {
		return posts
	}
	out := make([]model.BlogPost, 0, len(posts))
	for _, p := range posts {
		if MatchesBlogPost(p, query) {
			out = append(out, p)
		}
	}
	return out
}

// SearchItems returns items whose title or keywords contain query.
// Unlike FilterBlogPosts, a blank query returns no results.
func SearchItems(items []SearchItem, query string) []SearchItem {
	q := strings.TrimSpace(query)
	out := []SearchItem{}
	if q == "" {
		return out
	}
	q = fold(q)
	for _, it := range items {
		if matchesItem(it, q) {
			out = append(out, it)
		}
	}
	return out
}

func matchesItem(it SearchItem, folded string) bool {
	if strings.Contains(fold(it.Title), folded) {
		return true
	}
	if !it.Keywords.IsList() {
		return strings.Contains(fold(it.Keywords.Text), folded)
	}
	for _, kw := range it.Keywords.List {
		if strings.Contains(fold(kw), folded) {
			return true
		}
	}
	return false
}

// MarkOpen and MarkClose wrap each highlighted match.
const (
	MarkOpen  = `<mark class="bg-yellow-200 dark:bg-yellow-800">`
	MarkClose = `</mark>`
)

// HighlightMatch wraps every case-insensitive occurrence of query in text
// with a <mark> element. The query is matched literally. Text outside and
// inside the marks is HTML-escaped, so the result is safe to embed.
// A blank query returns text unchanged.
func HighlightMatch(text, query string) string {
	if strings.TrimSpace(query) == "" {
		return text
	}
	re, err := regexp.Compile("(?i)" + regexp.QuoteMeta(query))
	if err != nil {
		return html.EscapeString(text)
	}

	var b strings.Builder
	last := 0
	for _, loc := range re.FindAllStringIndex(text, -1) {
		b.WriteString(html.EscapeString(text[last:loc[0]]))
		b.WriteString(MarkOpen)
		b.WriteString(html.EscapeString(text[loc[0]:loc[1]]))
		b.WriteString(MarkClose)
		last = loc[1]
	}
	b.WriteString(html.EscapeString(text[last:]))
	return b.String()
}
