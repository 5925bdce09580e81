package naming

import (
	"fmt"
	"strings"
)

// ContentType is a parsed media type that keeps the document's original
// casing of the type and subtype.
type ContentType struct {
	// Raw is the string as written in the document.
	Raw     string
	Type    string
	Subtype string
	// Parameters are lowercased key/value pairs in document order.
	Parameters []ContentTypeParameter
}

// ContentTypeParameter is one "key=value" media type parameter.
type ContentTypeParameter struct {
	Key   string
	Value string
}

// ParseContentType parses a media type such as "application/json; charset=utf-8".
func ParseContentType(raw string) (ContentType, error) {
	segments := strings.Split(raw, ";")
	typeAndSubtype := strings.TrimSpace(segments[0])
	typ, subtype, ok := strings.Cut(typeAndSubtype, "/")
	if !ok || typ == "" || subtype == "" || strings.Contains(subtype, "/") {
		return ContentType{}, fmt.Errorf("invalid content type %q", raw)
	}
	ct := ContentType{Raw: raw, Type: typ, Subtype: subtype}
	for _, seg := range segments[1:] {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		key, value, ok := strings.Cut(seg, "=")
		if !ok {
			return ContentType{}, fmt.Errorf("invalid parameter %q in content type %q", seg, raw)
		}
		ct.Parameters = append(ct.Parameters, ContentTypeParameter{
			Key:   strings.ToLower(strings.TrimSpace(key)),
			Value: strings.ToLower(strings.Trim(strings.TrimSpace(value), `"`)),
		})
	}
	return ct, nil
}

// LowercasedTypeAndSubtype returns "type/subtype" in lowercase, without parameters.
func (ct ContentType) LowercasedTypeAndSubtype() string {
	return strings.ToLower(ct.Type + "/" + ct.Subtype)
}

// IsMultipart reports whether ct is a multipart media type.
func (ct ContentType) IsMultipart() bool {
	return strings.EqualFold(ct.Type, "multipart")
}

// IsJSON reports whether ct is application/json or a +json structured syntax type.
func (ct ContentType) IsJSON() bool {
	lower := ct.LowercasedTypeAndSubtype()
	return lower == "application/json" || strings.HasSuffix(lower, "+json")
}

// commonContentTypes gives short names to frequently used media types.
var commonContentTypes = map[string]string{
	"application/json":                  "json",
	"application/x-www-form-urlencoded": "urlEncodedForm",
	"multipart/form-data":               "multipartForm",
	"text/plain":                        "plainText",
	"*/*":                               "any",
	"application/xml":                   "xml",
	"application/octet-stream":          "binary",
	"text/html":                         "html",
	"application/yaml":                  "yaml",
	"text/csv":                          "csv",
	"image/png":                         "png",
	"application/pdf":                   "pdf",
	"image/jpeg":                        "jpeg",
}

func commonContentTypeName(ct ContentType) (string, bool) {
	if len(ct.Parameters) > 0 {
		return "", false
	}
	name, ok := commonContentTypes[ct.LowercasedTypeAndSubtype()]
	return name, ok
}
