// Package sanitize filters user-supplied text before it is persisted.
// Article bodies keep a rich allow-list of structural tags; comment bodies
// and author names are stripped to plain text. Sanitization always runs
// server side on every write path.
package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

const (
	// MaxPlainTextLen caps comment bodies.
	MaxPlainTextLen = 2000
	// MaxAuthorNameLen caps author names.
	MaxAuthorNameLen = 100
)

var (
	richPolicy  = newRichPolicy()
	plainPolicy = bluemonday.StrictPolicy()
)

func newRichPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()

	p.AllowElements(
		"p", "br", "strong", "em", "u",
		"h1", "h2", "h3", "h4", "h5", "h6",
		"ul", "ol", "li", "blockquote",
		"a", "img", "figure", "figcaption",
		"table", "thead", "tbody", "tr", "th", "td",
		"pre", "code", "span", "div", "hr", "sub", "sup",
	)

	p.AllowAttrs("href", "target", "rel", "title").OnElements("a")
	p.AllowAttrs("src", "alt", "title", "width", "height").OnElements("img")
	p.AllowAttrs("class", "title").Globally()
	p.AllowStyles(
		"color", "background-color", "text-align", "font-weight",
		"font-style", "text-decoration", "width", "height",
	).Globally()

	p.AllowStandardURLs()

	return p
}

// RichText restricts html to the structural/formatting allow-list and strips
// everything else (scripts, event handlers, unknown attributes). No length cap.
func RichText(html string) string {
	return richPolicy.Sanitize(html)
}

// PlainText strips all markup and truncates to MaxPlainTextLen runes.
// Idempotent: applying it to its own output is a no-op.
func PlainText(text string) string {
	return truncate(strings.TrimSpace(plainPolicy.Sanitize(text)), MaxPlainTextLen)
}

// AuthorName strips all markup and truncates to MaxAuthorNameLen runes.
func AuthorName(text string) string {
	return truncate(strings.TrimSpace(plainPolicy.Sanitize(text)), MaxAuthorNameLen)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
