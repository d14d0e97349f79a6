package ai

import (
	"regexp"
	"strings"
)

var wordRe = regexp.MustCompile(`[A-Za-z0-9]+`)

// FirstWord returns the first ASCII alphanumeric run in text, or "".
func FirstWord(text string) string {
	return wordRe.FindString(strings.TrimSpace(text))
}
