package cells

import (
	"slices"

	"github.com/google/uuid"
)

// Cell is one unit of a notebook. Outputs, Reads and Writes describe the
// last execution and are replaced on every run.
type Cell struct {
	ID      string
	Kind    Kind
	Content string
	// only for Prompt cells
	Prompt PromptConfig

	Outputs []Output
	Reads   []string
	Writes  []string
}

func NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}

func New(kind Kind, content string) *Cell {
	return &Cell{
		ID:      NewID(),
		Kind:    kind,
		Content: content,
	}
}

func NewPrompt(content string, config PromptConfig) (*Cell, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	cell := New(Prompt, content)
	cell.Prompt = config
	return cell, nil
}

// Apply records an execution result.
func (c *Cell) Apply(result Result) {
	c.Outputs = result.Outputs
	c.Reads = result.Reads
	c.Writes = result.Writes
}

// Reset forgets the last execution.
func (c *Cell) Reset() {
	c.Outputs = nil
	c.Reads = nil
	c.Writes = nil
}

func (c *Cell) Clone() *Cell {
	ret := *c
	ret.Outputs = slices.Clone(c.Outputs)
	ret.Reads = slices.Clone(c.Reads)
	ret.Writes = slices.Clone(c.Writes)
	return &ret
}
