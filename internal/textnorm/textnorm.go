// Package textnorm holds the cell-level text normalization every pipeline
// stage routes through: raw PDF cells, CSV cells and column headers all
// pass here before anything downstream looks at them.
package textnorm

import (
	"regexp"
	"strings"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	numericRe    = regexp.MustCompile(`^-?\d+(\.\d+)?$`)
)

// Clean canonicalizes a single raw cell value: newlines and carriage
// returns become spaces, en/em dashes become ASCII hyphens, whitespace
// runs collapse to one space, and the result is trimmed. It is total —
// any input (including the empty string) yields a valid string.
func Clean(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "–", "-")
	s = strings.ReplaceAll(s, "—", "-")
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// NumericString reports the cleaned value and true when the cell looks
// like a plain signed decimal (e.g. "0.45", "-57.1", "91"). It never
// coerces: anything else returns ("", false). Used to disambiguate
// columns where a value may have spilled into an adjacent position.
func NumericString(s string) (string, bool) {
	s = Clean(s)
	if s == "" {
		return "", false
	}
	if !numericRe.MatchString(s) {
		return "", false
	}
	return s, true
}

// JoinNonEmpty cleans each part and joins the non-empty ones with a
// single space.
func JoinNonEmpty(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if c := Clean(p); c != "" {
			out = append(out, c)
		}
	}
	return strings.Join(out, " ")
}

var colReplacer = strings.NewReplacer(
	" ", "_",
	"/", "_",
	"-", "_",
	"(", "",
	")", "",
	"%", "pct",
)

// ColumnName normalizes a header cell to the snake_case form the
// datastore keys columns by.
func ColumnName(c string) string {
	return colReplacer.Replace(strings.ToLower(strings.TrimSpace(c)))
}

var delimRe = regexp.MustCompile(`\s*[,;/]\s*`)
var pipeRe = regexp.MustCompile(`\s*\|\s*`)

// NormalizeDelims rewrites the assorted separators found in enzyme and
// transporter cells (",", ";", "/") to the canonical " | " form so that
// later token matching is less brittle.
func NormalizeDelims(s string) string {
	s = Clean(s)
	if s == "" {
		return ""
	}
	s = delimRe.ReplaceAllString(s, " | ")
	return pipeRe.ReplaceAllString(s, " | ")
}
