package generator

import (
	"fmt"
	"strconv"

	"github.com/blimu-dev/typegen/pkg/diag"
	"github.com/blimu-dev/typegen/pkg/ir"
	"github.com/blimu-dev/typegen/pkg/naming"
	"github.com/blimu-dev/typegen/pkg/typeassign"
	"github.com/blimu-dev/typegen/pkg/typename"
)

// translator turns converted schemas into named declarations. One
// translator serves one generation run.
type translator struct {
	components *Components
	assigner   *typeassign.TypeAssigner
	checker    *typeassign.SupportChecker
	diags      *diag.Collector
	logger     diag.Logger
}

func newTranslator(components *Components, names naming.SafeNameGenerator, diags *diag.Collector) *translator {
	return &translator{
		components: components,
		assigner:   typeassign.NewTypeAssigner(names, components),
		checker:    typeassign.NewSupportChecker(components),
		diags:      diags,
		logger:     diags.Logger(),
	}
}

func jsonPath(name typename.TypeName) string {
	p, _ := name.FullyQualifiedJSONPath()
	return p
}

// isSupported checks s and records a warning at context when it is not.
func (t *translator) isSupported(s *ir.IRSchema, context string) (bool, error) {
	res, err := t.checker.IsSchemaSupported(s, typeassign.NewReferenceStack())
	if err != nil {
		return false, fmt.Errorf("checking schema at %s: %w", context, err)
	}
	if !res.Supported {
		t.diags.Warning(fmt.Sprintf("schema unsupported: %s", res.Reason), context)
	}
	return res.Supported, nil
}

// translateSchemas declares every supported component schema in document order.
func (t *translator) translateSchemas() ([]ir.IRDecl, error) {
	var decls []ir.IRDecl
	for _, key := range t.components.Keys(typeassign.LocationSchemas) {
		s, err := t.components.Schema(key)
		if err != nil {
			return nil, err
		}
		name := t.assigner.TypeName(key, typeassign.LocationSchemas)
		ok, err := t.isSupported(s, jsonPath(name))
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		decl, err := t.translateSchema(name, s)
		if err != nil {
			return nil, fmt.Errorf("translating %s: %w", name, err)
		}
		t.logger.Debug("declared schema", "name", name.FullyQualifiedName(), "kind", string(decl.Kind))
		decls = append(decls, decl)
	}
	return decls, nil
}

// translateSchema builds the declaration named name for s.
func (t *translator) translateSchema(name typename.TypeName, s *ir.IRSchema) (ir.IRDecl, error) {
	matcher := t.assigner.Matcher()
	switch {
	case s.IsEnum():
		return t.translateEnum(name, s), nil
	case s.Kind == ir.IRKindAllOf || s.Kind == ir.IRKindAnyOf || s.Kind == ir.IRKindOneOf:
		return t.translateComposite(name, s)
	case s.Kind == ir.IRKindArray && s.Items != nil && matcher.IsInlinable(s.Items):
		elem, err := t.assigner.TypeUsageForArrayElement(s.Items, name)
		if err != nil {
			return ir.IRDecl{}, err
		}
		nested, err := t.translateInline(elem, s.Items)
		if err != nil {
			return ir.IRDecl{}, err
		}
		target := elem.AsArray().WithOptional(s.Nullable)
		return ir.IRDecl{Kind: ir.DeclAlias, Name: name, Target: target, Nested: nested, Annotations: s.Annotations}, nil
	case s.Kind == ir.IRKindObject && !matcher.IsReferenceable(s):
		return t.translateObject(name, s)
	}
	target, ok, err := matcher.TryMatchReferenceable(s)
	if err != nil {
		return ir.IRDecl{}, err
	}
	if !ok {
		return ir.IRDecl{}, fmt.Errorf("no declaration for schema kind %s", s.Kind)
	}
	// Top-level optionality only comes from nullability.
	return ir.IRDecl{Kind: ir.DeclAlias, Name: name, Target: target.WithOptional(s.Nullable), Annotations: s.Annotations}, nil
}

// translateInline declares the synthesized type behind usage, if any.
// Arrays are unwrapped down to the element the name was assigned to.
func (t *translator) translateInline(usage typename.Usage, s *ir.IRSchema) ([]ir.IRDecl, error) {
	if !t.assigner.Matcher().IsInlinable(s) {
		return nil, nil
	}
	for s.Kind == ir.IRKindArray && s.Items != nil {
		s = s.Items
	}
	decl, err := t.translateSchema(usage.BaseName(), s)
	if err != nil {
		return nil, err
	}
	return []ir.IRDecl{decl}, nil
}

func (t *translator) translateObject(name typename.TypeName, s *ir.IRSchema) (ir.IRDecl, error) {
	decl := ir.IRDecl{Kind: ir.DeclStruct, Name: name, Annotations: s.Annotations}
	members := newMemberNames(t.diags, jsonPath(name))
	for i, p := range s.Properties {
		context := jsonPath(name) + "/" + p.Name
		ok, err := t.isSupported(p.Type, context)
		if err != nil {
			return ir.IRDecl{}, err
		}
		if !ok {
			t.diags.Warning(fmt.Sprintf("dropping property %q", p.Name), context)
			continue
		}
		usage, err := t.assigner.TypeUsageForObjectProperty(p.Name, p.Type, name)
		if err != nil {
			return ir.IRDecl{}, fmt.Errorf("property %q: %w", p.Name, err)
		}
		nested, err := t.translateInline(usage, p.Type)
		if err != nil {
			return ir.IRDecl{}, err
		}
		decl.Nested = append(decl.Nested, nested...)
		decl.Fields = append(decl.Fields, ir.IRDeclField{
			Name:        members.assign(t.assigner.Names().MemberName(p.Name), p.Name, i),
			JSONName:    p.Name,
			Type:        usage,
			Required:    p.Required,
			Annotations: p.Annotations,
		})
	}

	switch s.AdditionalPolicy() {
	case ir.AdditionalPropertiesTyped:
		usage, err := t.assigner.TypeUsageForObjectProperty("additionalProperties", s.AdditionalProperties, name)
		if err != nil {
			return ir.IRDecl{}, fmt.Errorf("additional properties: %w", err)
		}
		nested, err := t.translateInline(usage, s.AdditionalProperties)
		if err != nil {
			return ir.IRDecl{}, err
		}
		decl.Nested = append(decl.Nested, nested...)
		decl.AdditionalProperties = &usage
	case ir.AdditionalPropertiesAllowAny:
		usage := typename.Any.AsUsage()
		decl.AdditionalProperties = &usage
	}
	return decl, nil
}

func (t *translator) translateComposite(name typename.TypeName, s *ir.IRSchema) (ir.IRDecl, error) {
	kind := map[ir.IRSchemaKind]ir.IRDeclKind{
		ir.IRKindAllOf: ir.DeclAllOf,
		ir.IRKindAnyOf: ir.DeclAnyOf,
		ir.IRKindOneOf: ir.DeclOneOf,
	}[s.Kind]
	decl := ir.IRDecl{Kind: kind, Name: name, Discriminator: s.Discriminator, Annotations: s.Annotations}
	for i, child := range s.Children() {
		usage, err := t.assigner.TypeUsageForCompositeChild(i, child, name)
		if err != nil {
			return ir.IRDecl{}, fmt.Errorf("%s child %d: %w", s.Kind, i+1, err)
		}
		nested, err := t.translateInline(usage, child)
		if err != nil {
			return ir.IRDecl{}, err
		}
		decl.Nested = append(decl.Nested, nested...)
		// Only allOf guarantees every child is present.
		required := kind == ir.DeclAllOf
		decl.Fields = append(decl.Fields, ir.IRDeclField{
			Name:     t.assigner.Names().MemberName(typeassign.CompositeChildJSON(i)),
			JSONName: typeassign.CompositeChildJSON(i),
			Type:     usage.WithOptional(!required),
			Required: required,
		})
	}
	return decl, nil
}

func (t *translator) translateEnum(name typename.TypeName, s *ir.IRSchema) ir.IRDecl {
	base := *s
	base.EnumValues, base.EnumRaw = nil, nil
	baseUsage, ok := t.assigner.Matcher().TryMatchBuiltin(&base)
	if !ok {
		baseUsage = typename.String.AsUsage()
	}
	decl := ir.IRDecl{Kind: ir.DeclEnum, Name: name, EnumBase: baseUsage.BaseName(), Annotations: s.Annotations}
	members := newMemberNames(t.diags, jsonPath(name))
	for i, v := range s.EnumValues {
		var raw any = v
		if i < len(s.EnumRaw) {
			raw = s.EnumRaw[i]
		}
		decl.EnumCases = append(decl.EnumCases, ir.IREnumCase{
			Name:  members.assign(t.assigner.Names().MemberName(v), v, i),
			Value: v,
			Raw:   raw,
		})
	}
	return decl
}

// memberNames keeps member identifiers of one declaration unique.
type memberNames struct {
	diags   *diag.Collector
	context string
	used    map[string]string
}

func newMemberNames(diags *diag.Collector, context string) *memberNames {
	return &memberNames{diags: diags, context: context, used: map[string]string{}}
}

// assign returns name, or name suffixed with the member's ordinal when an
// earlier member already took it.
func (m *memberNames) assign(name, raw string, index int) string {
	if prev, taken := m.used[name]; taken {
		m.diags.Warning(fmt.Sprintf("member name collision: %q and %q both map to %q", prev, raw, name), m.context)
		candidate := name + strconv.Itoa(index+1)
		for n := 2; ; n++ {
			if _, taken := m.used[candidate]; !taken {
				break
			}
			candidate = name + strconv.Itoa(index+1) + "_" + strconv.Itoa(n)
		}
		name = candidate
	}
	m.used[name] = raw
	return name
}
