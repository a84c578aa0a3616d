package parser

import "strings"

var newlineReplacer = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// normalize produces the canonical view of a message that every rule table
// matches against: upper-cased, newlines flattened to spaces, trimmed.
// Dashes are kept as-is, trigger ranges like "50-60" depend on them.
func normalize(text string) string {
	return strings.TrimSpace(strings.ToUpper(newlineReplacer.Replace(text)))
}
