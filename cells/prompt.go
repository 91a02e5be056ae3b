package cells

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/reusee/cellbook/depends"
	"github.com/reusee/cellbook/generators"
	"github.com/reusee/cellbook/sandboxes"
	"github.com/reusee/cellbook/states"
)

var errNoGenerator = errors.New("no generator")

// MissingVariableError reports a placeholder with no value in state.
type MissingVariableError struct {
	Name string
}

func (m MissingVariableError) Error() string {
	return fmt.Sprintf("Missing variable in state: '%s'", m.Name)
}

// Render substitutes placeholders with state values.
func Render(template string, state states.State) (string, error) {
	var b strings.Builder
	for _, seg := range depends.Segments(template) {
		p := seg.Placeholder
		if p == nil {
			b.WriteString(seg.Text)
			continue
		}
		value, ok := state.Get(p.Name)
		if !ok {
			return "", MissingVariableError{Name: p.Name}
		}
		if p.Method != "" {
			var err error
			value, err = sandboxes.Eval("v."+p.Method+"()", map[string]any{
				"v": value,
			})
			if err != nil {
				return "", fmt.Errorf("format {%s.%s()}: %w", p.Name, p.Method, err)
			}
		}
		b.WriteString(sandboxes.Format(value))
	}
	return b.String(), nil
}

func EvaluatePrompt(
	ctx context.Context,
	generator generators.Generator,
	template string,
	state states.State,
	config PromptConfig,
	responseName string,
	maxTokens *int,
) Result {
	reads := depends.Template(template, state.NameSet())
	fail := func(err error) Result {
		ret := failed(state, err)
		ret.Reads = reads
		return ret
	}

	prompt, err := Render(template, state)
	if err != nil {
		return fail(err)
	}
	if generator == nil {
		return fail(errNoGenerator)
	}

	response, err := generator.Generate(ctx, prompt, generators.GenerateArgs{
		Model:       config.Model,
		Temperature: config.Temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return fail(err)
	}

	writes := sortedSet(map[string]bool{
		responseName:      true,
		states.LastResult: true,
	})
	return Result{
		State: state.Merge(map[string]any{
			responseName:      response,
			states.LastResult: response,
		}),
		Outputs: []Output{
			{
				Type:    OutputLLMResponse,
				Prompt:  prompt,
				Content: response,
			},
		},
		Reads:  reads,
		Writes: writes,
	}
}
