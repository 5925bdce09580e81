package generator

import (
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-openapi/jsonpointer"

	"github.com/blimu-dev/typegen/pkg/ir"
	"github.com/blimu-dev/typegen/pkg/naming"
	"github.com/blimu-dev/typegen/pkg/typeassign"
	"github.com/blimu-dev/typegen/pkg/typename"
	"github.com/blimu-dev/typegen/pkg/utils"
)

// OperationsRoot is the parent of every operation namespace.
var OperationsRoot = typename.FromComponents(
	typename.JSONComponent("#"),
	typename.BothComponent("Operations", "paths"),
)

var httpMethods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodOptions,
	http.MethodHead,
	http.MethodTrace,
}

// parameter groups in declaration order, keyed by their "in" value
var parameterGroups = []struct {
	in   string
	name string
}{
	{openapi3.ParameterInPath, "Path"},
	{openapi3.ParameterInQuery, "Query"},
	{openapi3.ParameterInHeader, "Headers"},
	{openapi3.ParameterInCookie, "Cookies"},
}

// OperationName returns the namespace of the operation opID served at
// method and path.
func OperationName(names naming.SafeNameGenerator, opID, method, path string) typename.TypeName {
	return OperationsRoot.
		AppendingJSON(jsonpointer.Escape(path)).
		Appending(names.TypeName(opID), strings.ToLower(method))
}

// StatusName returns the member name for a response status key.
func StatusName(code string) string {
	if strings.EqualFold(code, "default") {
		return "Default"
	}
	if n, err := strconv.Atoi(code); err == nil {
		if text := http.StatusText(n); text != "" {
			return utils.ToPascalCaseAdvanced(text)
		}
	}
	return "Code" + code
}

// translateParameters declares every component parameter as an alias.
func (t *translator) translateParameters() ([]ir.IRDecl, error) {
	var decls []ir.IRDecl
	for _, key := range t.components.Keys(typeassign.LocationParameters) {
		p, err := t.components.Parameter(key)
		if err != nil {
			return nil, err
		}
		decl, ok, err := t.parameterAlias(key, typeassign.LocationParameters, p)
		if err != nil {
			return nil, err
		}
		if ok {
			decls = append(decls, decl)
		}
	}
	return decls, nil
}

// translateHeaders declares every component header as an alias.
func (t *translator) translateHeaders() ([]ir.IRDecl, error) {
	var decls []ir.IRDecl
	for _, key := range t.components.Keys(typeassign.LocationHeaders) {
		h, err := t.components.Header(key)
		if err != nil {
			return nil, err
		}
		decl, ok, err := t.parameterAlias(key, typeassign.LocationHeaders, &h.Parameter)
		if err != nil {
			return nil, err
		}
		if ok {
			decls = append(decls, decl)
		}
	}
	return decls, nil
}

func (t *translator) parameterAlias(key string, loc typeassign.Location, p *openapi3.Parameter) (ir.IRDecl, bool, error) {
	name := t.assigner.TypeName(key, loc)
	schema, ok, err := t.parameterSchema(p, jsonPath(name))
	if err != nil || !ok {
		return ir.IRDecl{}, false, err
	}
	usage, err := t.assigner.TypeUsageForParameter(key, schema, name)
	if err != nil {
		return ir.IRDecl{}, false, fmt.Errorf("%s %q: %w", loc, key, err)
	}
	nested, err := t.translateInline(usage, schema)
	if err != nil {
		return ir.IRDecl{}, false, err
	}
	return ir.IRDecl{
		Kind:        ir.DeclAlias,
		Name:        name,
		Target:      usage.WithOptional(schema.Nullable),
		Nested:      nested,
		Annotations: parameterAnnotations(p),
	}, true, nil
}

// parameterSchema converts the schema of p. A parameter described by
// content uses its first media type in key order.
func (t *translator) parameterSchema(p *openapi3.Parameter, context string) (*ir.IRSchema, bool, error) {
	sr := p.Schema
	if sr == nil && len(p.Content) > 0 {
		keys := sortedKeys(p.Content)
		if media := p.Content[keys[0]]; media != nil {
			sr = media.Schema
		}
	}
	if sr == nil {
		t.diags.Warning(fmt.Sprintf("parameter %q has no schema", p.Name), context)
		return nil, false, nil
	}
	s := schemaRefToIR(sr, p.Required)
	ok, err := t.isSupported(s, context)
	if err != nil || !ok {
		return nil, false, err
	}
	return s, true, nil
}

func parameterAnnotations(p *openapi3.Parameter) ir.IRAnnotations {
	return ir.IRAnnotations{Description: p.Description, Deprecated: p.Deprecated}
}

// translateRequestBodies declares every component request body.
func (t *translator) translateRequestBodies() ([]ir.IRDecl, error) {
	var decls []ir.IRDecl
	for _, key := range t.components.Keys(typeassign.LocationRequestBodies) {
		rb, err := t.components.RequestBody(key)
		if err != nil {
			return nil, err
		}
		decl, err := t.contentStruct(t.assigner.TypeName(key, typeassign.LocationRequestBodies), rb.Content)
		if err != nil {
			return nil, err
		}
		decl.Annotations.Description = rb.Description
		decls = append(decls, decl)
	}
	return decls, nil
}

// translateResponses declares every component response.
func (t *translator) translateResponses() ([]ir.IRDecl, error) {
	var decls []ir.IRDecl
	for _, key := range t.components.Keys(typeassign.LocationResponses) {
		resp, err := t.components.Response(key)
		if err != nil {
			return nil, err
		}
		decl, err := t.responseStruct(t.assigner.TypeName(key, typeassign.LocationResponses), resp)
		if err != nil {
			return nil, err
		}
		decls = append(decls, decl)
	}
	return decls, nil
}

// contentStruct declares a struct holding one optional field per media
// type of content.
func (t *translator) contentStruct(name typename.TypeName, content openapi3.Content) (ir.IRDecl, error) {
	decl := ir.IRDecl{Kind: ir.DeclStruct, Name: name}
	members := newMemberNames(t.diags, jsonPath(name))
	for i, raw := range sortedKeys(content) {
		context := jsonPath(name) + "/" + jsonpointer.Escape(raw)
		ct, err := naming.ParseContentType(raw)
		if err != nil {
			t.diags.Warning(fmt.Sprintf("skipping content type %q: %v", raw, err), context)
			continue
		}
		schema := &ir.IRSchema{Kind: ir.IRKindFragment, Required: true}
		if media := content[raw]; media != nil && media.Schema != nil {
			schema = schemaRefToIR(media.Schema, true)
		}
		ok, err := t.isSupported(schema, context)
		if err != nil {
			return ir.IRDecl{}, err
		}
		if !ok {
			continue
		}
		usage, err := t.assigner.TypeUsageForContent(ct, schema, name)
		if err != nil {
			return ir.IRDecl{}, fmt.Errorf("content %q: %w", raw, err)
		}
		nested, err := t.translateInline(usage, schema)
		if err != nil {
			return ir.IRDecl{}, err
		}
		decl.Nested = append(decl.Nested, nested...)
		decl.Fields = append(decl.Fields, ir.IRDeclField{
			Name:     members.assign(t.assigner.Names().ContentTypeName(ct), raw, i),
			JSONName: raw,
			Type:     usage.AsOptional(),
		})
	}
	return decl, nil
}

// headersStruct declares a struct with one field per header.
func (t *translator) headersStruct(name typename.TypeName, headers openapi3.Headers) (ir.IRDecl, error) {
	decl := ir.IRDecl{Kind: ir.DeclStruct, Name: name}
	members := newMemberNames(t.diags, jsonPath(name))
	for i, key := range sortedKeys(headers) {
		hr := headers[key]
		if hr == nil {
			continue
		}
		field := ir.IRDeclField{
			Name:     members.assign(t.assigner.Names().MemberName(key), key, i),
			JSONName: key,
		}
		if hr.Ref != "" {
			usage, err := t.referencedUsage(hr.Ref, typeassign.LocationHeaders)
			if err != nil {
				return ir.IRDecl{}, err
			}
			field.Required = hr.Value != nil && hr.Value.Required
			field.Type = usage.WithOptional(!field.Required)
		} else {
			if hr.Value == nil {
				continue
			}
			p := &hr.Value.Parameter
			schema, ok, err := t.parameterSchema(p, jsonPath(name)+"/"+jsonpointer.Escape(key))
			if err != nil {
				return ir.IRDecl{}, err
			}
			if !ok {
				continue
			}
			usage, err := t.assigner.TypeUsageForParameter(key, schema, name)
			if err != nil {
				return ir.IRDecl{}, fmt.Errorf("header %q: %w", key, err)
			}
			nested, err := t.translateInline(usage, schema)
			if err != nil {
				return ir.IRDecl{}, err
			}
			decl.Nested = append(decl.Nested, nested...)
			field.Type = usage
			field.Required = p.Required
			field.Annotations = parameterAnnotations(p)
		}
		decl.Fields = append(decl.Fields, field)
	}
	return decl, nil
}

// responseStruct declares a response with nested Headers and Body structs.
func (t *translator) responseStruct(name typename.TypeName, resp *openapi3.Response) (ir.IRDecl, error) {
	decl := ir.IRDecl{Kind: ir.DeclStruct, Name: name}
	if resp.Description != nil {
		decl.Annotations.Description = *resp.Description
	}
	if len(resp.Headers) > 0 {
		hName := name.Appending("Headers", "headers")
		hDecl, err := t.headersStruct(hName, resp.Headers)
		if err != nil {
			return ir.IRDecl{}, err
		}
		decl.Nested = append(decl.Nested, hDecl)
		decl.Fields = append(decl.Fields, ir.IRDeclField{Name: "Headers", JSONName: "headers", Type: hName.AsUsage(), Required: true})
	}
	if len(resp.Content) > 0 {
		bName := name.Appending("Body", "content")
		bDecl, err := t.contentStruct(bName, resp.Content)
		if err != nil {
			return ir.IRDecl{}, err
		}
		decl.Nested = append(decl.Nested, bDecl)
		decl.Fields = append(decl.Fields, ir.IRDeclField{Name: "Body", JSONName: "content", Type: bName.AsUsage(), Required: true})
	}
	return decl, nil
}

// referencedUsage names the component ref points to, after checking it exists.
func (t *translator) referencedUsage(ref string, loc typeassign.Location) (typename.Usage, error) {
	tn, err := t.assigner.TypeNameForReference(ref, loc)
	if err != nil {
		return typename.Usage{}, err
	}
	if err := t.components.checkReference(ref, loc); err != nil {
		return typename.Usage{}, err
	}
	return tn.AsUsage(), nil
}

// translateOperations declares the input and output of every operation in
// document order. Operations without an operationId are skipped.
func (t *translator) translateOperations() ([]ir.IROperation, error) {
	doc := t.components.doc
	if doc.Paths == nil {
		return nil, nil
	}
	var ops []ir.IROperation
	for _, path := range doc.PathKeys() {
		item := doc.Paths.Value(path)
		if item == nil {
			continue
		}
		for _, method := range httpMethods {
			op := item.GetOperation(method)
			if op == nil {
				continue
			}
			if op.OperationID == "" {
				t.diags.Note("operation has no operationId, skipping", "#/paths/"+jsonpointer.Escape(path)+"/"+strings.ToLower(method))
				continue
			}
			iop, err := t.translateOperation(path, method, item, op)
			if err != nil {
				return nil, fmt.Errorf("operation %s: %w", op.OperationID, err)
			}
			t.logger.Debug("declared operation", "operationId", op.OperationID, "method", method, "path", path)
			ops = append(ops, iop)
		}
	}
	return ops, nil
}

func (t *translator) translateOperation(path, method string, item *openapi3.PathItem, op *openapi3.Operation) (ir.IROperation, error) {
	name := OperationName(t.assigner.Names(), op.OperationID, method, path)

	input, err := t.operationInput(name, item, op)
	if err != nil {
		return ir.IROperation{}, err
	}
	output, err := t.operationOutput(name, op)
	if err != nil {
		return ir.IROperation{}, err
	}

	return ir.IROperation{
		OperationID:  op.OperationID,
		Method:       method,
		Path:         path,
		Tag:          firstTag(op.Tags),
		OriginalTags: append([]string(nil), op.Tags...),
		Summary:      op.Summary,
		Description:  op.Description,
		Deprecated:   op.Deprecated,
		Input:        input,
		Output:       output,
	}, nil
}

func (t *translator) operationInput(name typename.TypeName, item *openapi3.PathItem, op *openapi3.Operation) (ir.IRDecl, error) {
	input := name.AppendingIdentifier("Input")
	decl := ir.IRDecl{Kind: ir.DeclStruct, Name: input}
	params := mergeParameters(item.Parameters, op.Parameters)

	for _, group := range parameterGroups {
		gName := input.AppendingIdentifier(group.name)
		gDecl := ir.IRDecl{Kind: ir.DeclStruct, Name: gName}
		members := newMemberNames(t.diags, jsonPath(gName))
		for i, pr := range params {
			p := pr.Value
			if p.In != group.in {
				continue
			}
			field := ir.IRDeclField{
				Name:        members.assign(t.assigner.Names().MemberName(p.Name), p.Name, i),
				JSONName:    p.Name,
				Required:    p.Required,
				Annotations: parameterAnnotations(p),
			}
			if pr.Ref != "" {
				usage, err := t.referencedUsage(pr.Ref, typeassign.LocationParameters)
				if err != nil {
					return ir.IRDecl{}, err
				}
				field.Type = usage.WithOptional(!p.Required)
			} else {
				schema, ok, err := t.parameterSchema(p, jsonPath(name)+"/parameters/"+jsonpointer.Escape(p.Name))
				if err != nil {
					return ir.IRDecl{}, err
				}
				if !ok {
					continue
				}
				usage, err := t.assigner.TypeUsageForParameter(p.Name, schema, gName)
				if err != nil {
					return ir.IRDecl{}, fmt.Errorf("parameter %q: %w", p.Name, err)
				}
				nested, err := t.translateInline(usage, schema)
				if err != nil {
					return ir.IRDecl{}, err
				}
				gDecl.Nested = append(gDecl.Nested, nested...)
				field.Type = usage
			}
			gDecl.Fields = append(gDecl.Fields, field)
		}
		if len(gDecl.Fields) == 0 {
			continue
		}
		decl.Nested = append(decl.Nested, gDecl)
		decl.Fields = append(decl.Fields, ir.IRDeclField{Name: group.name, Type: gName.AsUsage(), Required: true})
	}

	if rbr := op.RequestBody; rbr != nil && rbr.Value != nil {
		required := rbr.Value.Required
		var usage typename.Usage
		if rbr.Ref != "" {
			u, err := t.referencedUsage(rbr.Ref, typeassign.LocationRequestBodies)
			if err != nil {
				return ir.IRDecl{}, err
			}
			usage = u
		} else {
			bName := input.Appending("Body", "requestBody")
			bDecl, err := t.contentStruct(bName, rbr.Value.Content)
			if err != nil {
				return ir.IRDecl{}, err
			}
			bDecl.Annotations.Description = rbr.Value.Description
			decl.Nested = append(decl.Nested, bDecl)
			usage = bName.AsUsage()
		}
		decl.Fields = append(decl.Fields, ir.IRDeclField{
			Name:     "Body",
			JSONName: "requestBody",
			Type:     usage.WithOptional(!required),
			Required: required,
		})
	}
	return decl, nil
}

func (t *translator) operationOutput(name typename.TypeName, op *openapi3.Operation) (ir.IRDecl, error) {
	output := name.Appending("Output", "responses")
	decl := ir.IRDecl{Kind: ir.DeclStruct, Name: output}
	if op.Responses == nil {
		return decl, nil
	}
	responses := op.Responses.Map()
	members := newMemberNames(t.diags, jsonPath(output))
	for i, code := range statusCodes(responses) {
		rr := responses[code]
		if rr == nil {
			continue
		}
		statusName := StatusName(code)
		var usage typename.Usage
		if rr.Ref != "" {
			u, err := t.referencedUsage(rr.Ref, typeassign.LocationResponses)
			if err != nil {
				return ir.IRDecl{}, err
			}
			usage = u
		} else {
			if rr.Value == nil {
				continue
			}
			sName := output.Appending(statusName, code)
			sDecl, err := t.responseStruct(sName, rr.Value)
			if err != nil {
				return ir.IRDecl{}, err
			}
			decl.Nested = append(decl.Nested, sDecl)
			usage = sName.AsUsage()
		}
		decl.Fields = append(decl.Fields, ir.IRDeclField{
			Name:     members.assign(statusName, code, i),
			JSONName: code,
			Type:     usage.AsOptional(),
		})
	}
	return decl, nil
}

// mergeParameters returns the path-level parameters followed by the
// operation's, where an operation parameter replaces a path-level one with
// the same name and location.
func mergeParameters(pathLevel, opLevel openapi3.Parameters) []*openapi3.ParameterRef {
	type key struct{ in, name string }
	index := map[key]int{}
	var out []*openapi3.ParameterRef
	for _, list := range []openapi3.Parameters{pathLevel, opLevel} {
		for _, pr := range list {
			if pr == nil || pr.Value == nil {
				continue
			}
			k := key{pr.Value.In, pr.Value.Name}
			if i, ok := index[k]; ok {
				out[i] = pr
				continue
			}
			index[k] = len(out)
			out = append(out, pr)
		}
	}
	return out
}

// statusCodes orders response keys numerically with "default" last.
func statusCodes(responses map[string]*openapi3.ResponseRef) []string {
	codes := make([]string, 0, len(responses))
	for code := range responses {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool {
		di, dj := strings.EqualFold(codes[i], "default"), strings.EqualFold(codes[j], "default")
		if di != dj {
			return dj
		}
		return codes[i] < codes[j]
	})
	return codes
}

func firstTag(tags []string) string {
	if len(tags) == 0 {
		return "misc"
	}
	return tags[0]
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
