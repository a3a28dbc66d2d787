package classify

import (
	"regexp"
	"strings"
)

// trailingQuestion matches a final clause ending in '?', optionally preceded
// by a sentence terminator. The model is instructed to end every answer with
// exactly one follow-up question, so the last match is the anchor.
var trailingQuestion = regexp.MustCompile(`(?:[.!?]\s+|^)([^.!?]+\?)\s*$`)

// anyQuestion matches any substring ending in '?'.
var anyQuestion = regexp.MustCompile(`[^.!?]+\?`)

// ExtractFollowUp recovers the most likely trailing question from a block of
// generated prose. It prefers a clean final question clause, falls back to
// the last '?'-terminated substring in document order, and reports false when
// the text contains no question at all.
func ExtractFollowUp(text string) (string, bool) {
	if !strings.Contains(text, "?") {
		return "", false
	}
	if m := trailingQuestion.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1]), true
	}
	matches := anyQuestion.FindAllString(text, -1)
	if len(matches) == 0 {
		return "", false
	}
	return strings.TrimSpace(matches[len(matches)-1]), true
}
