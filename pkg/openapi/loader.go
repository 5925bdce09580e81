// Package openapi loads OpenAPI documents and remembers the order in which
// their components and paths were written.
package openapi

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/getkin/kin-openapi/openapi3"
)

// Document is a parsed OpenAPI document together with its key order.
type Document struct {
	*openapi3.T
	// Location is the path or URL the document was loaded from.
	Location string
	Order    DocumentOrder

	loader *openapi3.Loader
}

// LoadDocument loads an OpenAPI document from a local file path or an HTTP(S) URL
func LoadDocument(input string) (*Document, error) {
	loader := &openapi3.Loader{IsExternalRefsAllowed: true}
	return LoadDocumentWithLoader(loader, input)
}

// LoadDocumentWithLoader loads an OpenAPI document using a custom loader
func LoadDocumentWithLoader(loader *openapi3.Loader, input string) (*Document, error) {
	var (
		data     []byte
		location *url.URL
		err      error
	)
	// Try to parse as URL; if it looks like http(s), fetch via URL
	if u, perr := url.Parse(input); perr == nil && (u.Scheme == "http" || u.Scheme == "https") {
		location = u
		data, err = openapi3.DefaultReadFromURI(loader, u)
	} else {
		location = &url.URL{Path: filepath.ToSlash(input)}
		data, err = os.ReadFile(input)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", input, err)
	}
	return loadFromData(loader, data, location, input)
}

// LoadDocumentFromData parses an OpenAPI document held in memory. location
// is used to resolve relative references and may be empty.
func LoadDocumentFromData(data []byte, location string) (*Document, error) {
	loader := &openapi3.Loader{IsExternalRefsAllowed: true}
	return loadFromData(loader, data, &url.URL{Path: filepath.ToSlash(location)}, location)
}

func loadFromData(loader *openapi3.Loader, data []byte, location *url.URL, input string) (*Document, error) {
	doc, err := loader.LoadFromDataWithPath(data, location)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", input, err)
	}
	order, err := documentOrder(data)
	if err != nil {
		return nil, fmt.Errorf("reading key order of %s: %w", input, err)
	}
	return &Document{T: doc, Location: input, Order: order, loader: loader}, nil
}

// Validate checks the document against the OpenAPI specification.
func (d *Document) Validate(ctx context.Context) error {
	if ctx == nil {
		ctx = d.loader.Context
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return d.T.Validate(ctx)
}

// ValidateDocument validates an OpenAPI document
func ValidateDocument(input string) error {
	doc, err := LoadDocument(input)
	if err != nil {
		return err
	}
	return doc.Validate(context.Background())
}
