package typeassign

import (
	"errors"
	"fmt"
)

// ErrReference indicates a $ref that cannot name a component.
var ErrReference = errors.New("reference error")

// ReferenceErrorReason classifies a ReferenceError.
type ReferenceErrorReason string

const (
	// ReasonExternal is a reference into another document.
	ReasonExternal ReferenceErrorReason = "external reference"
	// ReasonNotComponents is an internal reference outside #/components.
	ReasonNotComponents ReferenceErrorReason = "not a components reference"
	// ReasonWrongSection points into a different components section.
	ReasonWrongSection ReferenceErrorReason = "wrong components section"
	ReasonMalformed    ReferenceErrorReason = "malformed reference"
)

// ReferenceError reports a reference that could not be parsed as a
// component reference for the expected Location.
type ReferenceError struct {
	Ref      string
	Reason   ReferenceErrorReason
	Expected Location
	Cause    error
}

func (e *ReferenceError) Error() string {
	msg := fmt.Sprintf("reference error: %s: %q", e.Reason, e.Ref)
	if e.Reason == ReasonWrongSection {
		msg += fmt.Sprintf(" (expected #/components/%s)", e.Expected.Section())
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *ReferenceError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is ErrReference.
func (e *ReferenceError) Is(target error) bool {
	return target == ErrReference
}
