package cells

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/reusee/cellbook/depends"
	"github.com/reusee/cellbook/sandboxes"
	"github.com/reusee/cellbook/states"
)

const bulkUpdatePrefix = "memory.update("

var comparisonOperators = []string{"==", "!=", "<=", ">="}

func EvaluateMemory(content string, state states.State) Result {
	known := state.NameSet()
	newState := state
	produced := make(map[string]bool)
	reads := make(map[string]bool)
	var outputs []Output

	for line := range strings.Lines(content) {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		switch {

		case strings.HasPrefix(line, bulkUpdatePrefix):
			updates, err := parseBulkUpdate(line)
			if err != nil {
				ret := failed(state, fmt.Errorf("Error parsing memory.update(): %w", err))
				ret.Reads = sortedSet(reads)
				return ret
			}
			for _, value := range updates {
				if s, ok := value.(string); ok && known[s] {
					reads[s] = true
				}
			}
			newState = newState.Merge(updates)
			for name := range updates {
				produced[name] = true
			}

		case isAssignment(line):
			name, expr, _ := strings.Cut(line, "=")
			name = strings.TrimSpace(name)
			expr = strings.TrimSpace(expr)
			if !depends.IsIdentifier(name) {
				ret := failed(state, fmt.Errorf("invalid assignment target %q", name))
				ret.Reads = sortedSet(reads)
				return ret
			}
			value, warning := evalMemoryValue(expr, newState, known, reads)
			if warning != nil {
				outputs = append(outputs, *warning)
			}
			newState = newState.With(name, value)
			produced[name] = true

		default:
			outputs = append(outputs, Output{
				Type:    OutputWarning,
				Content: fmt.Sprintf("Unrecognized memory statement, ignored: %s", line),
			})

		}
	}

	added := sortedSet(produced)
	updated := make(map[string]string, len(added))
	for _, name := range added {
		value, _ := newState.Get(name)
		updated[name] = sandboxes.Format(value)
	}
	outputs = append(outputs, Output{
		Type:         OutputMemoryUpdate,
		Added:        added,
		UpdatedState: updated,
	})

	return Result{
		State:   newState,
		Outputs: outputs,
		Reads:   sortedSet(reads),
		Writes:  added,
	}
}

func isAssignment(line string) bool {
	if !strings.Contains(line, "=") {
		return false
	}
	for _, op := range comparisonOperators {
		if strings.Contains(line, op) {
			return false
		}
	}
	return true
}

func parseBulkUpdate(line string) (map[string]any, error) {
	if !strings.HasSuffix(line, ")") {
		return nil, fmt.Errorf("missing closing parenthesis")
	}
	arg := line[len(bulkUpdatePrefix) : len(line)-1]
	value, err := sandboxes.ParseLiteral(arg)
	if err != nil {
		return nil, err
	}
	switch value := value.(type) {
	case map[string]any:
		return value, nil
	case map[any]any:
		keys := slices.Collect(maps.Keys(value))
		return nil, fmt.Errorf("keys must be strings, got %v", sandboxes.Format(keys))
	}
	return nil, fmt.Errorf("memory.update() requires a dictionary")
}

// evalMemoryValue tries a literal, then a restricted evaluation, then
// keeps the raw text.
func evalMemoryValue(expr string, state states.State, known map[string]bool, reads map[string]bool) (any, *Output) {
	if value, err := sandboxes.ParseLiteral(expr); err == nil {
		return value, nil
	}

	for _, name := range depends.Expression(expr, known) {
		reads[name] = true
	}
	value, err := sandboxes.Eval(expr, state.Map())
	if err == nil {
		return value, nil
	}

	return expr, &Output{
		Type:    OutputWarning,
		Content: fmt.Sprintf("Could not evaluate '%s', storing as string: %v", expr, err),
	}
}
