package template

import (
	"strings"
	"time"
	"unicode/utf8"
)

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"01/02/2006",
}

// FormatDate renders a submitted date in long form ("January 2, 2006").
// Unparseable input is returned verbatim; rendering never fails on bad
// dates.
func FormatDate(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("January 2, 2006")
		}
	}
	return raw
}

// permitTypeLabel renders a permit-type code with its first rune upper-cased.
// Legitimate values come from a fixed enumeration, but the wire does not
// enforce that, so the result is escaped like any other payload text.
func permitTypeLabel(s string) string {
	if s == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(s)
	return EscapeHTML(strings.ToUpper(string(r)) + s[size:])
}

// routeTypeLabel maps the avoidHighways flag to its display label. Unknown
// values are rendered escaped so a tampered flag cannot inject markup.
func routeTypeLabel(flag string) string {
	switch flag {
	case "":
		return ""
	case "0":
		return "Interstate"
	case "1":
		return "Non-Interstate"
	default:
		return EscapeHTML(flag)
	}
}
