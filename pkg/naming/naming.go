// Package naming maps arbitrary OpenAPI document strings (schema keys,
// property names, content types) onto valid Go identifiers.
//
// Two strategies are available. The defensive strategy escapes every
// disallowed character and keeps the result close to the original text;
// the idiomatic strategy produces camelCase/PascalCase names and falls back
// to the defensive strategy for anything it cannot classify.
package naming

import (
	"fmt"
	"strings"
)

// SafeNameGenerator converts raw document strings into identifiers.
// Every method is total: any input produces a valid identifier.
type SafeNameGenerator interface {
	// TypeName returns an identifier suitable for a type declaration.
	TypeName(raw string) string
	// MemberName returns an identifier suitable for a field, case or variable.
	MemberName(raw string) string
	// ContentTypeName returns an identifier describing a content type.
	ContentTypeName(ct ContentType) string
}

// Strategy selects a SafeNameGenerator implementation.
type Strategy string

const (
	StrategyDefensive Strategy = "defensive"
	StrategyIdiomatic Strategy = "idiomatic"
)

// ParseStrategy parses a strategy name. An empty string selects the defensive strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case "", StrategyDefensive:
		return StrategyDefensive, nil
	case StrategyIdiomatic:
		return StrategyIdiomatic, nil
	default:
		return "", fmt.Errorf("unknown naming strategy %q (expected %q or %q)", s, StrategyDefensive, StrategyIdiomatic)
	}
}

// New returns the generator for strategy, consulting overrides first when non-empty.
func New(strategy Strategy, overrides map[string]string) SafeNameGenerator {
	var gen SafeNameGenerator
	switch strategy {
	case StrategyIdiomatic:
		gen = Idiomatic()
	default:
		gen = Defensive()
	}
	if len(overrides) > 0 {
		gen = WithOverrides(gen, overrides)
	}
	return gen
}

// WithOverrides wraps gen so that raw strings present in overrides map
// directly onto the configured identifier.
func WithOverrides(gen SafeNameGenerator, overrides map[string]string) SafeNameGenerator {
	copied := make(map[string]string, len(overrides))
	for k, v := range overrides {
		copied[k] = v
	}
	return overridingGenerator{base: gen, overrides: copied}
}

type overridingGenerator struct {
	base      SafeNameGenerator
	overrides map[string]string
}

func (g overridingGenerator) TypeName(raw string) string {
	if name, ok := g.overrides[raw]; ok {
		return name
	}
	return g.base.TypeName(raw)
}

func (g overridingGenerator) MemberName(raw string) string {
	if name, ok := g.overrides[raw]; ok {
		return name
	}
	return g.base.MemberName(raw)
}

func (g overridingGenerator) ContentTypeName(ct ContentType) string {
	if name, ok := g.overrides[ct.Raw]; ok {
		return name
	}
	return g.base.ContentTypeName(ct)
}
