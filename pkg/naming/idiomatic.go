package naming

import (
	"strings"
	"unicode"
)

type idiomatic struct{}

// Idiomatic returns the camel-casing strategy: "user-id" becomes "userId"
// as a member and "UserId" as a type. Input it cannot classify is handed to
// the defensive strategy unchanged.
func Idiomatic() SafeNameGenerator {
	return idiomatic{}
}

func (idiomatic) TypeName(raw string) string {
	return idiomaticName(raw, true)
}

func (idiomatic) MemberName(raw string) string {
	return idiomaticName(raw, false)
}

func (i idiomatic) ContentTypeName(ct ContentType) string {
	if name, ok := commonContentTypeName(ct); ok {
		return name
	}
	var b strings.Builder
	b.WriteString(i.MemberName(ct.Type))
	b.WriteString(i.TypeName(ct.Subtype))
	for _, p := range ct.Parameters {
		b.WriteString(i.TypeName(p.Key))
		b.WriteString(i.TypeName(p.Value))
	}
	return b.String()
}

type idiomaticState int

const (
	statePreFirstWord idiomaticState = iota
	stateFirstWord
	stateWord
	stateWaitingForWordStart
)

func isWordSeparator(r rune) bool {
	switch r {
	case '_', '-', ' ', '/', '+':
		return true
	}
	return false
}

func isBrace(r rune) bool {
	return r == '{' || r == '}'
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r)
}

// isAllUppercase reports whether every letter in s is uppercase, as in
// constant-style names like "HELLO_WORLD".
func isAllUppercase(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) && !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}

func idiomaticName(raw string, capitalize bool) string {
	if raw == "" {
		return defensiveName(raw)
	}
	runes := []rune(raw)
	allUpper := isAllUppercase(raw)
	buf := make([]rune, 0, len(runes))
	state := statePreFirstWord
	// Set while lowercasing a leading run of capitals in member names, so
	// that "HTTPProxy" becomes "httpProxy" and not "hTTPProxy".
	lowercasingInitialCaps := false

	for i, r := range runes {
		switch state {
		case statePreFirstWord:
			switch {
			case r == '_':
				buf = append(buf, r)
			case unicode.IsNumber(r):
				buf = append(buf, r)
				state = stateFirstWord
			case unicode.IsLetter(r):
				if capitalize {
					buf = append(buf, unicode.ToUpper(r))
				} else {
					buf = append(buf, unicode.ToLower(r))
				}
				lowercasingInitialCaps = !capitalize && unicode.IsUpper(r)
				state = stateFirstWord
			default:
				return defensiveName(raw)
			}
		case stateFirstWord:
			switch {
			case isWordRune(r):
				switch {
				case allUpper:
					buf = append(buf, unicode.ToLower(r))
				case lowercasingInitialCaps:
					buf = append(buf, initialCapsRune(runes, i, &lowercasingInitialCaps))
				default:
					buf = append(buf, r)
				}
			case isWordSeparator(r):
				state = stateWaitingForWordStart
			case r == '.':
				buf = append(buf, '_')
				lowercasingInitialCaps = false
			case isBrace(r):
				lowercasingInitialCaps = false
			default:
				return defensiveName(raw)
			}
		case stateWord:
			switch {
			case isWordRune(r):
				if allUpper {
					buf = append(buf, unicode.ToLower(r))
				} else {
					buf = append(buf, r)
				}
			case isWordSeparator(r):
				state = stateWaitingForWordStart
			case r == '.':
				buf = append(buf, '_')
			case isBrace(r):
			default:
				return defensiveName(raw)
			}
		case stateWaitingForWordStart:
			switch {
			case isWordSeparator(r), isBrace(r):
			case isWordRune(r):
				buf = append(buf, unicode.ToUpper(r))
				state = stateWord
			default:
				return defensiveName(raw)
			}
		}
	}
	// The defensive pass takes care of leading digits, keywords and any
	// non-ASCII letters that survived.
	return defensiveName(string(buf))
}

// initialCapsRune decides the case of runes[i] while a leading run of capitals
// is being lowercased, clearing *active once the run ends.
func initialCapsRune(runes []rune, i int, active *bool) rune {
	r := runes[i]
	if unicode.IsLower(r) {
		*active = false
		return r
	}
	rest := runes[i+1:]
	if len(rest) < 2 {
		*active = false
		return unicode.ToLower(r)
	}
	next, afterNext := rest[0], rest[1]
	switch {
	case unicode.IsUpper(next) && unicode.IsLower(afterNext):
		// "P" in "HTTPProxy": last capital of the acronym.
		*active = false
		return unicode.ToLower(r)
	case isWordSeparator(next):
		*active = false
		return unicode.ToLower(r)
	case unicode.IsUpper(next):
		return unicode.ToLower(r)
	default:
		*active = false
		return r
	}
}
