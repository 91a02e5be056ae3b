package cells

import "github.com/reusee/cellbook/states"

func EvaluateMarkdown(content string, state states.State) Result {
	return Result{
		State: state,
		Outputs: []Output{
			{
				Type:    OutputMarkdown,
				Content: content,
			},
		},
	}
}
