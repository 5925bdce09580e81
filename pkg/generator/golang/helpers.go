package golang

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/tools/imports"

	"github.com/blimu-dev/typegen/pkg/ir"
	"github.com/blimu-dev/typegen/pkg/typename"
	"github.com/blimu-dev/typegen/pkg/utils"
)

var invalidPackageChars = regexp.MustCompile(`[^a-z0-9_]`)

// declaredRoots are the first identifier components of names that get a
// declaration of their own. Everything else is a builtin.
var declaredRoots = map[string]bool{"Components": true, "Operations": true}

// flattenedPrefixes are dropped from the front of declared names.
var flattenedPrefixes = []string{"Components", "Schemas"}

// goIdent flattens a declared name into one exported Go identifier:
// Components.Schemas.Pet.KindPayload becomes Pet_KindPayload.
func goIdent(name typename.TypeName) string {
	path := name.IdentifierPath()
	for _, prefix := range flattenedPrefixes {
		if len(path) > 1 && path[0] == prefix {
			path = path[1:]
		}
	}
	return exported(strings.Join(path, "_"))
}

// isDeclared reports whether name refers to a generated declaration.
func isDeclared(name typename.TypeName) bool {
	path := name.IdentifierPath()
	return len(path) > 0 && declaredRoots[path[0]]
}

// typeRef renders a reference to name.
func typeRef(name typename.TypeName) string {
	if isDeclared(name) {
		return goIdent(name)
	}
	return name.FullyQualifiedName()
}

// goType renders a usage. Optional slices, maps and any stay nil-able
// without an extra pointer.
func goType(u typename.Usage) string {
	inner, ok := u.Wrapped()
	switch {
	case u.IsOptional() && ok:
		if nilable(inner) {
			return goType(inner)
		}
		return "*" + goType(inner)
	case u.IsArray() && ok:
		return "[]" + goType(inner)
	case u.IsDictionary() && ok:
		return "map[string]" + goType(inner)
	}
	return typeRef(u.BaseName())
}

func nilable(u typename.Usage) bool {
	return u.IsArray() || u.IsDictionary() || (u.IsBase() && u.BaseName().Equal(typename.Any))
}

// fieldType renders the type of a field of decl. Boxed declarations hold
// their required declared fields by pointer.
func fieldType(decl ir.IRDecl, f ir.IRDeclField) string {
	if decl.Boxed && f.Type.IsBase() && isDeclared(f.Type.BaseName()) {
		return "*" + goType(f.Type)
	}
	return goType(f.Type)
}

// structTag renders the json tag of f. Fields without a JSON name, and the
// children of compositions, are not serialized by field.
func structTag(decl ir.IRDecl, f ir.IRDeclField) string {
	if f.JSONName == "" || decl.Kind != ir.DeclStruct {
		return "`json:\"-\"`"
	}
	name := f.JSONName
	if !f.Required {
		name += ",omitempty"
	}
	return fmt.Sprintf("`json:%s`", strconv.Quote(name))
}

// exportedMember makes a member name exported. Leading underscores added
// by keyword or digit escaping are dropped: "_type" becomes "Type" and
// "_3rdParty" becomes "X3rdParty". Callers keep members unique.
func exportedMember(s string) string {
	rest := strings.TrimLeft(s, "_")
	if rest == "" {
		return exported(s)
	}
	return exported(rest)
}

// exported makes s an exported identifier.
func exported(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return "X"
	}
	if unicode.IsUpper(r) {
		return s
	}
	if unicode.IsLower(r) {
		if up := unicode.ToUpper(r); unicode.IsUpper(up) {
			return string(up) + s[size:]
		}
	}
	return "X" + s
}

// enumValue renders a Go literal for an enum case.
func enumValue(base typename.TypeName, c ir.IREnumCase) string {
	if base.Equal(typename.String) {
		return strconv.Quote(c.Value)
	}
	switch v := c.Raw.(type) {
	case string:
		return strconv.Quote(v)
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	}
	return c.Value
}

// formatGoComment formats a string as a proper Go comment, handling multiline descriptions
func formatGoComment(s string) string {
	if s == "" {
		return ""
	}

	// Split into lines and prefix each with //
	lines := strings.Split(strings.TrimSpace(s), "\n")
	var result []string

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			result = append(result, "//")
		} else {
			result = append(result, "// "+line)
		}
	}

	return strings.Join(result, "\n")
}

// formatAndFixImports adds missing imports (time) and gofmts src.
func formatAndFixImports(filename string, src []byte) ([]byte, error) {
	return imports.Process(filename, src, nil)
}

// sanitizePackageName ensures the package name is valid for Go
func sanitizePackageName(name string) string {
	// Extract the last part of the package name if it looks like a module path
	parts := strings.Split(name, "/")
	if len(parts) > 0 {
		name = parts[len(parts)-1]
	}

	// Convert to lowercase and replace invalid characters
	name = strings.ToLower(utils.RemoveAccents(name))
	name = invalidPackageChars.ReplaceAllString(name, "")

	// Ensure it doesn't start with a number
	if len(name) > 0 && name[0] >= '0' && name[0] <= '9' {
		name = "pkg" + name
	}

	// Ensure it's not empty
	if name == "" {
		name = "types"
	}

	return name
}
