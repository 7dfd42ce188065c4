package pttcrawl

import (
	"regexp"
	"strings"
)

// spaceClass is Unicode whitespace. Go's \s is ASCII-only, so the
// separators (U+3000, NBSP and the rest of \p{Z}), \v, U+0085 and the
// U+001C-U+001F separators are listed explicitly.
const spaceClass = `\s\v\x{1c}-\x{1f}\x{85}\p{Z}`

// disallowedRe matches every rune outside the allow-list: common CJK
// ideographs, a subset of CJK punctuation, whitespace, ASCII word
// characters, and a handful of URL-ish symbols.
var disallowedRe = regexp.MustCompile(`[^\x{4e00}-\x{9fa5}\x{3002}\x{ff1b}\x{ff0c}\x{ff1a}\x{201c}\x{201d}\x{ff08}\x{ff09}\x{3001}\x{ff1f}\x{300a}\x{300b}` + spaceClass + `\w:/_.?~%()-]`)

var whitespaceRe = regexp.MustCompile(`[` + spaceClass + `]+`)

// Normalize strips runes outside the allow-list and collapses whitespace.
// The result is trimmed; input without any allowed rune yields "".
func Normalize(fragment string) string {
	s := disallowedRe.ReplaceAllString(fragment, "")
	return CollapseWhitespace(s)
}

// CollapseWhitespace replaces runs of whitespace with a single space and
// trims both ends.
func CollapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}
