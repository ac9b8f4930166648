// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package transduce

import "regexp"

// Substitutions run in this order, once each, over the whole line.
// Italic runs after bold so stray single asterisks left by bold are eligible.
var cleanups = []*regexp.Regexp{
	regexp.MustCompile(`\*\*(.+?)\*\*`),
	regexp.MustCompile(`\*(.+?)\*`),
	regexp.MustCompile("`(.+?)`"),
	regexp.MustCompile(`\[(.+?)\]\(.+?\)`),
}

var (
	bulletMarker = regexp.MustCompile(`^[-*]\s+`)
	numberMarker = regexp.MustCompile(`^\d+\.\s+`)
)

// Clean strips bold, italic, inline code, and link markup from text, keeping
// the wrapped content. Link targets are discarded.
func Clean(text string) string {
	for _, re := range cleanups {
		text = re.ReplaceAllString(text, "${1}")
	}
	return text
}

// listText reports whether cleaned text is a list item and, if so, returns
// it with the list marker removed. Both marker forms are stripped in turn,
// so "- 1. x" yields "x".
func listText(cleaned string) (string, bool) {
	if !bulletMarker.MatchString(cleaned) && !numberMarker.MatchString(cleaned) {
		return cleaned, false
	}
	text := bulletMarker.ReplaceAllString(cleaned, "")
	text = numberMarker.ReplaceAllString(text, "")
	return text, true
}
