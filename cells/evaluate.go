package cells

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/reusee/cellbook/generators"
	"github.com/reusee/cellbook/sandboxes"
	"github.com/reusee/cellbook/states"
)

// Result is what an evaluator returns. On failure State is the input
// state and Outputs holds a single error.
type Result struct {
	State   states.State
	Outputs []Output
	Reads   []string
	Writes  []string
	Failed  bool
}

// Env carries what evaluators need besides content and state.
type Env struct {
	Engine    sandboxes.Engine
	Generator generators.Generator
	// position of the cell in its notebook, -1 if unknown
	Index     int
	MaxTokens *int
}

func failed(state states.State, err error) Result {
	return Result{
		State:   state,
		Outputs: []Output{errorOutput(err)},
		Failed:  true,
	}
}

// Evaluate runs a cell against state. It never panics and never returns
// a partially updated state.
func Evaluate(ctx context.Context, cell *Cell, state states.State, env Env) (ret Result) {
	defer func() {
		if p := recover(); p != nil {
			ret = failed(state, fmt.Errorf("panic: %v", p))
		}
	}()

	switch cell.Kind {
	case Markdown:
		return EvaluateMarkdown(cell.Content, state)
	case Computation:
		return EvaluateComputation(env.Engine, cell.Content, state)
	case Prompt:
		name := ResponseName(cell.Prompt, env.Index, cell.ID)
		return EvaluatePrompt(ctx, env.Generator, cell.Content, state, cell.Prompt, name, env.MaxTokens)
	case Memory:
		return EvaluateMemory(cell.Content, state)
	}
	return failed(state, fmt.Errorf("%w: %v", ErrUnknownKind, cell.Kind))
}

func sortedSet(set map[string]bool) []string {
	if len(set) == 0 {
		return nil
	}
	return slices.Sorted(maps.Keys(set))
}
