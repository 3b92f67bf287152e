package ats

import (
	"regexp"
	"strings"
	"unicode"
)

// matches and findAll are the only way checks touch a pattern. regexp.Regexp
// carries no scan position between calls, so the shared tables stay reentrant.
func matches(re *regexp.Regexp, text string) bool {
	return re.MatchString(text)
}

func findAll(re *regexp.Regexp, text string) []string {
	return re.FindAllString(text, -1)
}

// findPhones returns the phoneRe matches that are phone numbers. Groups of
// exactly four digits separated only by spaces, such as a list of years, are
// not.
func findPhones(text string) []string {
	var out []string
	for _, m := range findAll(phoneRe, text) {
		if isPhoneNumber(m) {
			out = append(out, m)
		}
	}
	return out
}

func maskPhones(text string) string {
	return phoneRe.ReplaceAllStringFunc(text, func(m string) string {
		if !isPhoneNumber(m) {
			return m
		}
		return strings.Repeat(" ", len(m))
	})
}

func isPhoneNumber(m string) bool {
	if strings.ContainsAny(m, "+(-.") {
		return true
	}
	groups := strings.FieldsFunc(m, func(r rune) bool { return !unicode.IsDigit(r) })
	if len(groups) < 2 {
		return true
	}
	for _, g := range groups {
		if len(g) != 4 {
			return true
		}
	}
	return false
}

// maskAll replaces every match of re with spaces of the same byte length so
// offsets in the remaining text are preserved.
func maskAll(re *regexp.Regexp, text string) string {
	return re.ReplaceAllStringFunc(text, func(m string) string {
		return strings.Repeat(" ", len(m))
	})
}

func splitLines(text string) []string {
	return strings.Split(text, "\n")
}

func words(text string) []string {
	return strings.Fields(text)
}

// trimWord strips leading and trailing characters that are not letters or digits.
func trimWord(word string) string {
	return strings.TrimFunc(word, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func firstN(items []string, n int) []string {
	if n < 0 {
		n = 0
	}
	if len(items) <= n {
		return items
	}
	return items[:n]
}
