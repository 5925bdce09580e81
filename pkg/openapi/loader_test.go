package openapi

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const orderedSpec = `openapi: 3.0.3
info:
  title: Ordered
  version: "1.0"
paths:
  /zebras:
    get:
      operationId: listZebras
      responses:
        "200":
          description: ok
  /apples:
    get:
      operationId: listApples
      responses:
        "200":
          description: ok
components:
  schemas:
    Zebra:
      type: object
    Apple:
      type: string
    Mango:
      type: integer
  parameters:
    limit:
      name: limit
      in: query
      schema:
        type: integer
`

func TestLoadDocumentFromDataKeepsOrder(t *testing.T) {
	doc, err := LoadDocumentFromData([]byte(orderedSpec), "ordered.yaml")
	require.NoError(t, err)

	assert.Equal(t, []string{"Zebra", "Apple", "Mango"}, doc.ComponentKeys(SectionSchemas))
	assert.Equal(t, []string{"limit"}, doc.ComponentKeys(SectionParameters))
	assert.Empty(t, doc.ComponentKeys(SectionHeaders))
	assert.Equal(t, []string{"/zebras", "/apples"}, doc.PathKeys())
	assert.True(t, doc.Order.HasOrder(SectionSchemas))
	assert.False(t, doc.Order.HasOrder(SectionResponses))
}

func TestLoadDocumentFromJSON(t *testing.T) {
	data := `{"openapi":"3.0.3","info":{"title":"J","version":"1"},"paths":{},
"components":{"schemas":{"b":{"type":"string"},"a":{"type":"string"}}}}`
	doc, err := LoadDocumentFromData([]byte(data), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, doc.ComponentKeys(SectionSchemas))
}

func TestOrderedKeys(t *testing.T) {
	m := map[string]int{"c": 1, "a": 2, "b": 3, "d": 4}
	assert.Equal(t, []string{"c", "a", "b", "d"}, OrderedKeys([]string{"c", "a"}, m))
	assert.Equal(t, []string{"a", "b", "c", "d"}, OrderedKeys(nil, m))
	assert.Equal(t, []string{"b", "a", "c", "d"}, OrderedKeys([]string{"b", "missing", "b", "a"}, m))
}

func TestLoadAndValidateFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spec.yaml")
	require.NoError(t, os.WriteFile(path, []byte(orderedSpec), 0o644))

	doc, err := LoadDocument(path)
	require.NoError(t, err)
	assert.Equal(t, path, doc.Location)
	assert.NoError(t, ValidateDocument(path))

	_, err = LoadDocument(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
