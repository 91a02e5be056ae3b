package sandboxes

import (
	"go.starlark.net/syntax"
)

// FileOptions is the dialect every cell is parsed with.
var FileOptions = syntax.FileOptions{
	Set:             true,
	While:           true,
	TopLevelControl: true,
	GlobalReassign:  true,
	Recursion:       true,
}
