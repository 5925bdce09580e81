package typeassign

import "github.com/blimu-dev/typegen/pkg/typename"

// Location is a namespace of reusable components in the document.
type Location int

const (
	LocationSchemas Location = iota
	LocationParameters
	LocationHeaders
	LocationRequestBodies
	LocationResponses
)

// Locations lists every Location in declaration order.
var Locations = []Location{
	LocationSchemas,
	LocationParameters,
	LocationHeaders,
	LocationRequestBodies,
	LocationResponses,
}

var locationNames = [...]struct{ section, namespace string }{
	LocationSchemas:       {"schemas", "Schemas"},
	LocationParameters:    {"parameters", "Parameters"},
	LocationHeaders:       {"headers", "Headers"},
	LocationRequestBodies: {"requestBodies", "RequestBodies"},
	LocationResponses:     {"responses", "Responses"},
}

// Section returns the key of the location under #/components.
func (l Location) Section() string {
	return locationNames[l].section
}

// Namespace returns the identifier scope declarations at l live in.
func (l Location) Namespace() string {
	return locationNames[l].namespace
}

func (l Location) String() string {
	return l.Section()
}

// ComponentsRoot is the parent of every component namespace:
// Components (#/components).
var ComponentsRoot = typename.FromComponents(
	typename.JSONComponent("#"),
	typename.BothComponent("Components", "components"),
)

// Root returns the TypeName of the namespace for l, e.g.
// Components.Schemas (#/components/schemas).
func (l Location) Root() typename.TypeName {
	return ComponentsRoot.Appending(l.Namespace(), l.Section())
}
