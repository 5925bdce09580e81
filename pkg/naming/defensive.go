package naming

import (
	"strconv"
	"strings"
)

// emptyIdentifier is returned for empty input.
const emptyIdentifier = "_empty"

// underscoreIdentifier replaces an identifier that would be a lone "_",
// which Go reserves as the blank identifier.
const underscoreIdentifier = "_underscore_"

// keywords are the Go reserved keywords. Identifiers matching one of these
// exactly get an underscore prefix.
var keywords = map[string]struct{}{
	"break": {}, "case": {}, "chan": {}, "const": {}, "continue": {},
	"default": {}, "defer": {}, "else": {}, "fallthrough": {}, "for": {},
	"func": {}, "go": {}, "goto": {}, "if": {}, "import": {},
	"interface": {}, "map": {}, "package": {}, "range": {}, "return": {},
	"select": {}, "struct": {}, "switch": {}, "type": {}, "var": {},
}

// IsKeyword reports whether s is a Go reserved keyword.
func IsKeyword(s string) bool {
	_, ok := keywords[s]
	return ok
}

// specialChars maps ASCII punctuation onto short mnemonics used inside
// escape tokens ("a b" becomes "a_space_b").
var specialChars = map[rune]string{
	' ':  "space",
	'!':  "excl",
	'"':  "quot",
	'#':  "num",
	'$':  "dollar",
	'%':  "percnt",
	'&':  "amp",
	'\'': "apos",
	'(':  "lpar",
	')':  "rpar",
	'*':  "ast",
	'+':  "plus",
	',':  "comma",
	'-':  "hyphen",
	'.':  "period",
	'/':  "sol",
	':':  "colon",
	';':  "semi",
	'<':  "lt",
	'=':  "equals",
	'>':  "gt",
	'?':  "quest",
	'@':  "commat",
	'[':  "lbrack",
	'\\': "bsol",
	']':  "rbrack",
	'^':  "hat",
	'`':  "grave",
	'{':  "lcub",
	'|':  "verbar",
	'}':  "rcub",
	'~':  "tilde",
}

type defensive struct{}

// Defensive returns the escaping strategy. Names stay recognisable but are
// not reformatted: "user-id" becomes "user_hyphen_id".
func Defensive() SafeNameGenerator {
	return defensive{}
}

func (defensive) TypeName(raw string) string {
	return defensiveName(raw)
}

func (defensive) MemberName(raw string) string {
	return defensiveName(raw)
}

func (d defensive) ContentTypeName(ct ContentType) string {
	if name, ok := commonContentTypeName(ct); ok {
		return name
	}
	parts := []string{d.MemberName(ct.Type), d.MemberName(ct.Subtype)}
	for _, p := range ct.Parameters {
		parts = append(parts, d.MemberName(p.Key), d.MemberName(p.Value))
	}
	return strings.Join(parts, "_")
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isASCIIDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// defensiveName escapes raw into an identifier. The first character must be
// a letter or underscore, a leading digit gets an underscore prefix, and
// every other disallowed character becomes "_<mnemonic>_" or "_x<HEX>_".
func defensiveName(raw string) string {
	if raw == "" {
		return emptyIdentifier
	}
	var b strings.Builder
	b.Grow(len(raw))
	index := 0
	for _, r := range raw {
		first := index == 0
		index++
		switch {
		case isASCIILetter(r) || r == '_':
			b.WriteRune(r)
		case isASCIIDigit(r):
			if first {
				b.WriteByte('_')
			}
			b.WriteRune(r)
		default:
			b.WriteByte('_')
			if mnemonic, ok := specialChars[r]; ok {
				b.WriteString(mnemonic)
			} else {
				b.WriteByte('x')
				b.WriteString(strings.ToUpper(strconv.FormatInt(int64(r), 16)))
			}
			b.WriteByte('_')
		}
	}
	name := b.String()
	if name == "_" {
		return underscoreIdentifier
	}
	if IsKeyword(name) {
		return "_" + name
	}
	return name
}
