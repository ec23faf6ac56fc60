package classifier

import (
	"regexp"
	"strings"
)

var (
	urlPattern        = regexp.MustCompile(`https?://\S+|www\.\S+`)
	emailPattern      = regexp.MustCompile(`\S+@\S+`)
	digitRunPattern   = regexp.MustCompile(`\b\d{3,}\b`)
	nonLetterPattern  = regexp.MustCompile(`[^a-z\s']`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// Normalize maps raw text to the canonical lowercase token form the
// vectorizer was trained on. URLs, email addresses and long digit runs
// are stripped before the character filter so they disappear whole
// instead of leaving fragments behind. Total and idempotent.
func Normalize(text string) string {
	text = strings.ToLower(text)
	text = urlPattern.ReplaceAllString(text, " ")
	text = emailPattern.ReplaceAllString(text, " ")
	text = digitRunPattern.ReplaceAllString(text, " ")
	text = nonLetterPattern.ReplaceAllString(text, " ")
	text = whitespacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
