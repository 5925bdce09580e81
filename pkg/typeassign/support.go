package typeassign

import (
	"fmt"

	"github.com/blimu-dev/typegen/pkg/ir"
)

// UnsupportedReason says why a schema cannot be generated.
type UnsupportedReason string

const (
	// ReasonNoSubschemas is an allOf, anyOf or oneOf without children.
	ReasonNoSubschemas UnsupportedReason = "noSubschemas"
	// ReasonNotObjectish is an allOf/anyOf child, or a discriminated oneOf
	// target, that cannot carry properties.
	ReasonNotObjectish UnsupportedReason = "notObjectish"
	// ReasonNotRef is an inline child of a discriminated oneOf.
	ReasonNotRef UnsupportedReason = "notRef"
	// ReasonSchemaType is a schema kind with no representation, like not or null.
	ReasonSchemaType UnsupportedReason = "schemaType"
)

// SupportResult is the verdict of IsSchemaSupported. Schema is the
// offending schema when Supported is false.
type SupportResult struct {
	Supported bool
	Reason    UnsupportedReason
	Schema    *ir.IRSchema
}

var supported = SupportResult{Supported: true}

func unsupported(reason UnsupportedReason, s *ir.IRSchema) SupportResult {
	return SupportResult{Reason: reason, Schema: s}
}

func (r SupportResult) String() string {
	if r.Supported {
		return "supported"
	}
	return fmt.Sprintf("unsupported: %s", r.Reason)
}

// ReferenceStack tracks the references being visited by one traversal.
type ReferenceStack struct {
	stack []string
	set   map[string]struct{}
}

// NewReferenceStack returns an empty stack.
func NewReferenceStack() *ReferenceStack {
	return &ReferenceStack{set: map[string]struct{}{}}
}

// Push adds ref on top of the stack.
func (s *ReferenceStack) Push(ref string) {
	s.stack = append(s.stack, ref)
	s.set[ref] = struct{}{}
}

// Pop removes the top of the stack. It panics on an empty stack.
func (s *ReferenceStack) Pop() {
	top := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	delete(s.set, top)
}

// Contains reports whether ref is on the stack.
func (s *ReferenceStack) Contains(ref string) bool {
	_, ok := s.set[ref]
	return ok
}

// Len returns the depth of the stack.
func (s *ReferenceStack) Len() int { return len(s.stack) }

// SupportChecker classifies schemas as supported or not.
type SupportChecker struct {
	resolver SchemaResolver
}

// NewSupportChecker returns a checker resolving references through resolver.
func NewSupportChecker(resolver SchemaResolver) *SupportChecker {
	return &SupportChecker{resolver: resolver}
}

// IsSchemaSupported reports whether s can be generated. A reference already
// on refs is treated as supported; cycles are handled by boxing later.
// Errors are lookup failures, not unsupported schemas.
func (c *SupportChecker) IsSchemaSupported(s *ir.IRSchema, refs *ReferenceStack) (SupportResult, error) {
	switch s.Kind {
	case ir.IRKindString, ir.IRKindInteger, ir.IRKindNumber, ir.IRKindBoolean,
		ir.IRKindObject, ir.IRKindFragment:
		return supported, nil
	case ir.IRKindArray:
		if s.Items == nil {
			return supported, nil
		}
		return c.IsSchemaSupported(s.Items, refs)
	case ir.IRKindRef:
		if refs.Contains(s.Ref) {
			return supported, nil
		}
		refs.Push(s.Ref)
		defer refs.Pop()
		target, err := c.resolver.LookupSchema(s.Ref)
		if err != nil {
			return SupportResult{}, err
		}
		return c.IsSchemaSupported(target, refs)
	case ir.IRKindAllOf, ir.IRKindAnyOf:
		children := s.Children()
		if len(children) == 0 {
			return unsupported(ReasonNoSubschemas, s), nil
		}
		return c.all(children, refs, c.isObjectishAndSupported)
	case ir.IRKindOneOf:
		if len(s.OneOf) == 0 {
			return unsupported(ReasonNoSubschemas, s), nil
		}
		if s.Discriminator != nil {
			return c.all(s.OneOf, refs, c.isRefToObjectishAndSupported)
		}
		return c.all(s.OneOf, refs, c.IsSchemaSupported)
	}
	return unsupported(ReasonSchemaType, s), nil
}

func (c *SupportChecker) all(children []*ir.IRSchema, refs *ReferenceStack, check func(*ir.IRSchema, *ReferenceStack) (SupportResult, error)) (SupportResult, error) {
	for _, child := range children {
		res, err := check(child, refs)
		if err != nil || !res.Supported {
			return res, err
		}
	}
	return supported, nil
}

// isObjectishAndSupported accepts objects, references to object-ish
// schemas, and allOfs made of object-ish schemas.
func (c *SupportChecker) isObjectishAndSupported(s *ir.IRSchema, refs *ReferenceStack) (SupportResult, error) {
	switch s.Kind {
	case ir.IRKindObject:
		return c.IsSchemaSupported(s, refs)
	case ir.IRKindRef:
		if refs.Contains(s.Ref) {
			return supported, nil
		}
		refs.Push(s.Ref)
		defer refs.Pop()
		target, err := c.resolver.LookupSchema(s.Ref)
		if err != nil {
			return SupportResult{}, err
		}
		return c.isObjectishAndSupported(target, refs)
	case ir.IRKindAllOf:
		if len(s.AllOf) == 0 {
			return unsupported(ReasonNoSubschemas, s), nil
		}
		return c.all(s.AllOf, refs, c.isObjectishAndSupported)
	}
	return unsupported(ReasonNotObjectish, s), nil
}

func (c *SupportChecker) isRefToObjectishAndSupported(s *ir.IRSchema, refs *ReferenceStack) (SupportResult, error) {
	if s.Kind != ir.IRKindRef {
		return unsupported(ReasonNotRef, s), nil
	}
	return c.isObjectishAndSupported(s, refs)
}
