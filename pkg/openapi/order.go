package openapi

import (
	"sort"

	"gopkg.in/yaml.v3"
)

// Component sections whose key order is recorded.
const (
	SectionSchemas       = "schemas"
	SectionParameters    = "parameters"
	SectionHeaders       = "headers"
	SectionRequestBodies = "requestBodies"
	SectionResponses     = "responses"
)

// DocumentOrder holds mapping keys in the order they appear in the source.
type DocumentOrder struct {
	// Components maps a section under #/components to its keys.
	Components map[string][]string
	Paths      []string
}

// documentOrder reads key order from YAML or JSON source. kin-openapi
// stores components and paths in Go maps, which lose it.
func documentOrder(data []byte) (DocumentOrder, error) {
	order := DocumentOrder{Components: map[string][]string{}}
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return order, err
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return order, nil
	}
	top := root.Content[0]
	if components := mappingValue(top, "components"); components != nil {
		for _, section := range []string{SectionSchemas, SectionParameters, SectionHeaders, SectionRequestBodies, SectionResponses} {
			if keys := mappingKeys(mappingValue(components, section)); len(keys) > 0 {
				order.Components[section] = keys
			}
		}
	}
	order.Paths = mappingKeys(mappingValue(top, "paths"))
	return order, nil
}

func mappingValue(node *yaml.Node, key string) *yaml.Node {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

func mappingKeys(node *yaml.Node) []string {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	keys := make([]string, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keys = append(keys, node.Content[i].Value)
	}
	return keys
}

// OrderedKeys returns the keys of m: first those listed in order, as
// listed, then the rest sorted.
func OrderedKeys[V any](order []string, m map[string]V) []string {
	out := make([]string, 0, len(m))
	seen := make(map[string]struct{}, len(m))
	for _, k := range order {
		if _, ok := m[k]; !ok {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	var rest []string
	for k := range m {
		if _, ok := seen[k]; !ok {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

// ComponentKeys returns the keys of a components section in document order.
func (d *Document) ComponentKeys(section string) []string {
	c := d.Components
	if c == nil {
		return nil
	}
	order := d.Order.Components[section]
	switch section {
	case SectionSchemas:
		return OrderedKeys(order, c.Schemas)
	case SectionParameters:
		return OrderedKeys(order, c.Parameters)
	case SectionHeaders:
		return OrderedKeys(order, c.Headers)
	case SectionRequestBodies:
		return OrderedKeys(order, c.RequestBodies)
	case SectionResponses:
		return OrderedKeys(order, c.Responses)
	}
	return nil
}

// PathKeys returns the document's paths in document order.
func (d *Document) PathKeys() []string {
	if d.Paths == nil {
		return nil
	}
	return OrderedKeys(d.Order.Paths, d.Paths.Map())
}

// HasOrder reports whether section keys were recovered from the source.
func (o DocumentOrder) HasOrder(section string) bool {
	return len(o.Components[section]) > 0
}
