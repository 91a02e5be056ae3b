package sandboxes

import (
	"fmt"
	"strings"

	"go.starlark.net/lib/json"
	"go.starlark.net/lib/math"
	"go.starlark.net/lib/time"
	"go.starlark.net/starlark"
)

// Engine runs a code fragment against a set of bindings.
type Engine interface {
	Exec(filename string, source string, bindings map[string]any) (*ExecResult, error)
}

type ExecResult struct {
	// Bindings holds every top-level name after execution.
	Bindings map[string]any
	// Stdout is what print() wrote, one line per call.
	Stdout string
}

type Starlark struct{}

var _ Engine = Starlark{}

func (Starlark) Exec(filename string, source string, bindings map[string]any) (ret *ExecResult, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()

	globals := make(starlark.StringDict, len(bindings))
	for name, value := range bindings {
		v, err := ToStarlark(value)
		if err != nil {
			// not representable, invisible to the code
			continue
		}
		globals[name] = v
	}

	file, err := FileOptions.Parse(filename, source, 0)
	if err != nil {
		return nil, err
	}

	stdout := new(strings.Builder)
	thread := &starlark.Thread{
		Name: filename,
		Print: func(_ *starlark.Thread, msg string) {
			stdout.WriteString(msg)
			stdout.WriteString("\n")
		},
		Load: LoadModule,
	}

	ret = &ExecResult{}
	err = starlark.ExecREPLChunk(file, thread, globals)
	ret.Stdout = stdout.String()
	if err != nil {
		return ret, err
	}

	ret.Bindings = make(map[string]any, len(globals))
	for name, value := range globals {
		ret.Bindings[name] = FromStarlark(value)
	}
	return ret, nil
}

var modules = map[string]starlark.StringDict{
	"json": {"json": json.Module},
	"math": {"math": math.Module},
	"time": {"time": time.Module},
}

// LoadModule resolves load() statements. Only the bundled json, math
// and time modules are importable.
func LoadModule(_ *starlark.Thread, module string) (starlark.StringDict, error) {
	name := strings.TrimSuffix(module, ".star")
	if dict, ok := modules[name]; ok {
		return dict, nil
	}
	return nil, fmt.Errorf("module not available: %s", module)
}
