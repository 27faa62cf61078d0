package services

import (
	"regexp"
	"unicode/utf8"
)

// DefaultSummaryLength is the number of characters kept when a summary is
// derived from post content.
const DefaultSummaryLength = 150

var htmlTag = regexp.MustCompile(`<.*?>`)

// DeriveSummary strips markup tags from content and truncates the remaining
// text to maxLength characters, appending "..." when anything was cut.
// A non-positive maxLength selects DefaultSummaryLength.
func DeriveSummary(content string, maxLength int) string {
	if content == "" {
		return ""
	}
	if maxLength <= 0 {
		maxLength = DefaultSummaryLength
	}

	plain := htmlTag.ReplaceAllString(content, "")
	if utf8.RuneCountInString(plain) <= maxLength {
		return plain
	}

	return string([]rune(plain)[:maxLength]) + "..."
}
