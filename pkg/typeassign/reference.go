package typeassign

import (
	"strings"

	"github.com/go-openapi/jsonpointer"
)

// ParseReference extracts the component key from a reference of the form
// #/components/<section>/<key>, where section must match loc. Pointer
// escapes in the key are decoded.
func ParseReference(ref string, loc Location) (string, error) {
	if !strings.HasPrefix(ref, "#") {
		return "", &ReferenceError{Ref: ref, Reason: ReasonExternal, Expected: loc}
	}
	ptr, err := jsonpointer.New(strings.TrimPrefix(ref, "#"))
	if err != nil {
		return "", &ReferenceError{Ref: ref, Reason: ReasonMalformed, Expected: loc, Cause: err}
	}
	tokens := ptr.DecodedTokens()
	if len(tokens) == 0 || tokens[0] != "components" {
		return "", &ReferenceError{Ref: ref, Reason: ReasonNotComponents, Expected: loc}
	}
	if len(tokens) != 3 || tokens[2] == "" {
		return "", &ReferenceError{Ref: ref, Reason: ReasonMalformed, Expected: loc}
	}
	if tokens[1] != loc.Section() {
		return "", &ReferenceError{Ref: ref, Reason: ReasonWrongSection, Expected: loc}
	}
	return tokens[2], nil
}

// ComponentReference builds the reference string for key at loc.
func ComponentReference(key string, loc Location) string {
	return "#/components/" + loc.Section() + "/" + jsonpointer.Escape(key)
}
