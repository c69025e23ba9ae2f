package utils

import (
	"regexp"
	"strings"
)

var (
	controlCharsRe = regexp.MustCompile(`[\x00-\x1F\x7F-\x9F]`)
	htmlEntityRe   = regexp.MustCompile(`&nbsp;|&quot;|&amp;|&lt;|&gt;`)
	feedbackRe     = regexp.MustCompile(`(?s)위 도움말이 도움이 되었나요\?.*?(별점[0-9]점)+.*?소중한 의견을 남겨주시면 보완하도록 노력하겠습니다\.`)
	whitespaceRe   = regexp.MustCompile(`\s+`)
)

// CleanText normalizes raw FAQ text before ingestion. It strips control
// characters, common HTML entities and the help-page feedback footer, then
// collapses whitespace runs into single spaces.
// NOT applied on the answer path; queries go to the model as typed.
func CleanText(text string) string {
	text = controlCharsRe.ReplaceAllString(text, "")
	text = htmlEntityRe.ReplaceAllString(text, " ")
	text = feedbackRe.ReplaceAllString(text, "")
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
