package template

import "strings"

// htmlEscaper rewrites the five HTML-significant characters in a single
// pass, so produced entities are never re-escaped.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// EscapeHTML encodes user-supplied text for embedding in an HTML document.
// Every payload-sourced value must pass through here before rendering.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}
