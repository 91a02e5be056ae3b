package depends

import (
	"github.com/reusee/cellbook/sandboxes"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// IsIdentifier reports whether s can be assigned to as a plain name.
// Builtin names like None and len are not assignable.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	if _, ok := starlark.Universe[s]; ok {
		return false
	}
	expr, err := sandboxes.FileOptions.ParseExpr("name", s, 0)
	if err != nil {
		return false
	}
	id, ok := expr.(*syntax.Ident)
	return ok && id.Name == s
}
