package generator

import (
	"errors"
	"fmt"

	"github.com/blimu-dev/typegen/pkg/diag"
	"github.com/blimu-dev/typegen/pkg/ir"
)

// ErrNameCollision indicates two declarations that escaped to the same
// identifier path.
var ErrNameCollision = errors.New("name collision")

// NameCollisionError reports two document locations sharing one identifier.
type NameCollisionError struct {
	Identifier string
	First      string
	Second     string
}

func (e *NameCollisionError) Error() string {
	return fmt.Sprintf("name collision: %s is assigned to both %s and %s", e.Identifier, e.First, e.Second)
}

// Is reports whether target is ErrNameCollision.
func (e *NameCollisionError) Is(target error) bool {
	return target == ErrNameCollision
}

// checkNameCollisions verifies that no two declarations, nested ones
// included, share a fully-qualified identifier while coming from different
// JSON paths. With fail unset collisions are only reported as warnings.
func checkNameCollisions(decls []ir.IRDecl, fail bool, diags *diag.Collector) error {
	seen := map[string]string{}
	var firstErr error
	for _, top := range decls {
		top.Walk(func(d ir.IRDecl) {
			if firstErr != nil && fail {
				return
			}
			id := d.Name.FullyQualifiedName()
			path := jsonPath(d.Name)
			prev, ok := seen[id]
			if !ok {
				seen[id] = path
				return
			}
			if prev == path {
				return
			}
			err := &NameCollisionError{Identifier: id, First: prev, Second: path}
			if fail {
				firstErr = err
				return
			}
			diags.Warning(err.Error(), path)
		})
	}
	return firstErr
}
