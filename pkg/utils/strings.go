package utils

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonAlnum = regexp.MustCompile(`[^A-Za-z0-9]+`)

// RemoveAccents removes accents from a string, converting accented characters to their base forms
func RemoveAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)
	return result
}

// SplitCamelCase splits a camelCase or PascalCase string into words.
// Runs of capitals stay together: "XMLHttp" splits into "XML", "Http".
func SplitCamelCase(s string) []string {
	if s == "" {
		return nil
	}

	var parts []string
	var current strings.Builder

	rs := []rune(s)
	for i, r := range rs {
		boundary := false
		if i > 0 && isUppercase(r) {
			if !isUppercase(rs[i-1]) {
				boundary = true
			} else if i < len(rs)-1 && !isUppercase(rs[i+1]) {
				boundary = true
			}
		}
		if boundary && current.Len() > 0 {
			parts = append(parts, current.String())
			current.Reset()
		}
		current.WriteRune(r)
	}

	if current.Len() > 0 {
		parts = append(parts, current.String())
	}
	return parts
}

func isUppercase(r rune) bool {
	return r >= 'A' && r <= 'Z'
}

// ToPascalCaseAdvanced converts free text such as an HTTP status text to a
// PascalCase identifier: "Non-Authoritative Information" becomes
// "NonAuthoritativeInformation". Accents are dropped and every word is
// capitalized with the rest lowercased.
func ToPascalCaseAdvanced(s string) string {
	s = RemoveAccents(strings.TrimSpace(s))
	if s == "" {
		return ""
	}

	var result strings.Builder
	for _, part := range nonAlnum.Split(s, -1) {
		for _, word := range SplitCamelCase(part) {
			result.WriteString(strings.ToUpper(word[:1]))
			result.WriteString(strings.ToLower(word[1:]))
		}
	}
	return result.String()
}
