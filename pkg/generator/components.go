package generator

import (
	"errors"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/blimu-dev/typegen/pkg/ir"
	"github.com/blimu-dev/typegen/pkg/openapi"
	"github.com/blimu-dev/typegen/pkg/typeassign"
)

// ErrComponentNotFound indicates a reference to a component key the
// document does not define.
var ErrComponentNotFound = errors.New("component not found")

// LookupError reports a missing component.
type LookupError struct {
	Location typeassign.Location
	Name     string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("component not found: #/components/%s/%s", e.Location.Section(), e.Name)
}

// Is reports whether target is ErrComponentNotFound.
func (e *LookupError) Is(target error) bool {
	return target == ErrComponentNotFound
}

// Components gives keyed, ordered access to a document's reusable
// components. Schemas are converted to IR once, up front.
type Components struct {
	doc     *openapi.Document
	schemas map[string]*ir.IRSchema
}

// NewComponents converts the component schemas of doc.
func NewComponents(doc *openapi.Document) *Components {
	c := &Components{doc: doc, schemas: map[string]*ir.IRSchema{}}
	if doc.Components != nil {
		for key, sr := range doc.Components.Schemas {
			c.schemas[key] = schemaRefToIR(sr, true)
		}
	}
	return c
}

// Keys returns the keys of loc in document order.
func (c *Components) Keys(loc typeassign.Location) []string {
	return c.doc.ComponentKeys(loc.Section())
}

// Schema returns the converted component schema key.
func (c *Components) Schema(key string) (*ir.IRSchema, error) {
	s, ok := c.schemas[key]
	if !ok {
		return nil, &LookupError{Location: typeassign.LocationSchemas, Name: key}
	}
	return s, nil
}

// LookupSchema resolves a schema reference one level deep.
func (c *Components) LookupSchema(ref string) (*ir.IRSchema, error) {
	key, err := typeassign.ParseReference(ref, typeassign.LocationSchemas)
	if err != nil {
		return nil, err
	}
	return c.Schema(key)
}

var _ typeassign.SchemaResolver = (*Components)(nil)

// Parameter returns the component parameter key.
func (c *Components) Parameter(key string) (*openapi3.Parameter, error) {
	if c.doc.Components != nil {
		if pr, ok := c.doc.Components.Parameters[key]; ok && pr != nil && pr.Value != nil {
			return pr.Value, nil
		}
	}
	return nil, &LookupError{Location: typeassign.LocationParameters, Name: key}
}

// Header returns the component header key.
func (c *Components) Header(key string) (*openapi3.Header, error) {
	if c.doc.Components != nil {
		if hr, ok := c.doc.Components.Headers[key]; ok && hr != nil && hr.Value != nil {
			return hr.Value, nil
		}
	}
	return nil, &LookupError{Location: typeassign.LocationHeaders, Name: key}
}

// RequestBody returns the component request body key.
func (c *Components) RequestBody(key string) (*openapi3.RequestBody, error) {
	if c.doc.Components != nil {
		if rr, ok := c.doc.Components.RequestBodies[key]; ok && rr != nil && rr.Value != nil {
			return rr.Value, nil
		}
	}
	return nil, &LookupError{Location: typeassign.LocationRequestBodies, Name: key}
}

// Response returns the component response key.
func (c *Components) Response(key string) (*openapi3.Response, error) {
	if c.doc.Components != nil {
		if rr, ok := c.doc.Components.Responses[key]; ok && rr != nil && rr.Value != nil {
			return rr.Value, nil
		}
	}
	return nil, &LookupError{Location: typeassign.LocationResponses, Name: key}
}

// checkReference verifies that ref names an existing component at loc.
func (c *Components) checkReference(ref string, loc typeassign.Location) error {
	key, err := typeassign.ParseReference(ref, loc)
	if err != nil {
		return err
	}
	switch loc {
	case typeassign.LocationSchemas:
		_, err = c.Schema(key)
	case typeassign.LocationParameters:
		_, err = c.Parameter(key)
	case typeassign.LocationHeaders:
		_, err = c.Header(key)
	case typeassign.LocationRequestBodies:
		_, err = c.RequestBody(key)
	case typeassign.LocationResponses:
		_, err = c.Response(key)
	}
	return err
}
