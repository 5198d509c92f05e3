package domain

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// CleanText trims surrounding whitespace and converts text to Unicode NFC.
// Case is preserved: headwords compare case-sensitively.
func CleanText(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	return norm.NFC.String(text)
}

// NormalizeText prepares a headword for dictionary lookups:
// NFC, lowercase, runs of whitespace collapsed to one space.
func NormalizeText(text string) string {
	text = CleanText(text)
	if text == "" {
		return ""
	}
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}
