package util

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	reSpaces  = regexp.MustCompile(`\s+`)
	reQuotes  = regexp.MustCompile(`["'` + "`" + `«»“”„]`)
	spaceFold = strings.NewReplacer("\u00a0", " ", "\u202f", " ", "\u2009", " ")
)

// NormalizeText puts a description into NFC form with plain spaces so that
// composed and decomposed Cyrillic letters match the same patterns.
func NormalizeText(input string) string {
	s := norm.NFC.String(input)
	s = spaceFold.Replace(s)
	return NormalizeSpaces(s)
}

func NormalizeSpaces(input string) string {
	return strings.TrimSpace(reSpaces.ReplaceAllString(input, " "))
}

// StripQuotes removes quoting characters around brand names.
func StripQuotes(input string) string {
	return NormalizeSpaces(reQuotes.ReplaceAllString(input, " "))
}

func HasDigit(input string) bool {
	for _, r := range input {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}

func LooksLikeDescription(input string) bool {
	if len(strings.TrimSpace(input)) < 3 {
		return false
	}
	hasLetter := false
	for _, r := range input {
		if unicode.IsLetter(r) {
			hasLetter = true
			break
		}
	}
	return hasLetter && HasDigit(input)
}
