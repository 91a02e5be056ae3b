package cells

import (
	"errors"
	"strings"

	"github.com/reusee/cellbook/depends"
	"github.com/reusee/cellbook/sandboxes"
	"github.com/reusee/cellbook/states"
)

var errNoEngine = errors.New("no execution engine")

func EvaluateComputation(engine sandboxes.Engine, content string, state states.State) Result {
	reads, staticWrites := depends.Code(content, state.NameSet())

	if engine == nil {
		ret := failed(state, errNoEngine)
		ret.Reads = reads
		return ret
	}

	// values as the code sees them, to compare against after execution
	baseline := make(map[string]any, state.Len())
	for name, value := range state.All() {
		v, err := sandboxes.ToStarlark(value)
		if err != nil {
			continue
		}
		baseline[name] = sandboxes.FromStarlark(v)
	}

	res, err := engine.Exec("cell", content, state.Map())
	if err != nil {
		ret := failed(state, err)
		ret.Reads = reads
		return ret
	}

	var outputs []Output
	if res.Stdout != "" {
		outputs = append(outputs, Output{
			Type:    OutputStdout,
			Content: res.Stdout,
		})
	}

	updates := make(map[string]any)
	writes := make(map[string]bool)
	for name, value := range res.Bindings {
		if strings.HasPrefix(name, "_") {
			continue
		}
		if prev, ok := baseline[name]; ok && sandboxes.Equal(prev, value) {
			continue
		}
		updates[name] = value
		writes[name] = true
	}
	for _, name := range staticWrites {
		if _, ok := res.Bindings[name]; ok {
			writes[name] = true
		}
	}

	return Result{
		State:   state.Merge(updates),
		Outputs: outputs,
		Reads:   reads,
		Writes:  sortedSet(writes),
	}
}
