package cells

type OutputType string

const (
	OutputMarkdown     OutputType = "markdown"
	OutputStdout       OutputType = "stdout"
	OutputError        OutputType = "error"
	OutputWarning      OutputType = "warning"
	OutputLLMResponse  OutputType = "llm_response"
	OutputMemoryUpdate OutputType = "memory_update"
)

// Output is one entry recorded by a cell execution.
type Output struct {
	Type    OutputType `json:"type" yaml:"type"`
	Content string     `json:"content,omitempty" yaml:"content,omitempty"`
	// llm_response
	Prompt string `json:"prompt,omitempty" yaml:"prompt,omitempty"`
	// memory_update
	Added        []string          `json:"added,omitempty" yaml:"added,omitempty"`
	UpdatedState map[string]string `json:"updated_state,omitempty" yaml:"updated_state,omitempty"`
}

func errorOutput(err error) Output {
	return Output{
		Type:    OutputError,
		Content: err.Error(),
	}
}
