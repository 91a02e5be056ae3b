package notebooks

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/reusee/cellbook/cells"
	"github.com/reusee/cellbook/logs"
	"github.com/reusee/cellbook/states"
	"github.com/reusee/dscope"
)

const DefaultName = "Untitled Notebook"

// Notebook owns an ordered sequence of cells and the current state.
// It is not safe for concurrent use.
type Notebook struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
	Metadata  map[string]any

	cells []*cells.Cell
	state states.State

	MakeEnv     dscope.Inject[cells.MakeEnv]
	Logger      dscope.Inject[logs.Logger]
	NewSpan     dscope.Inject[logs.NewSpan]
	PromptCells dscope.Inject[cells.NewPromptCell]
}

func DefaultMetadata() map[string]any {
	return map[string]any{
		"kernel": "starlark",
		"language_info": map[string]any{
			"name":    "starlark",
			"version": "go.starlark.net",
		},
	}
}

type NewNotebook func(name string) *Notebook

func (Module) NewNotebook(
	inject dscope.InjectStruct,
) NewNotebook {
	return func(name string) *Notebook {
		if name == "" {
			name = DefaultName
		}
		now := time.Now()
		ret := &Notebook{
			ID:        uuid.Must(uuid.NewV7()).String(),
			Name:      name,
			CreatedAt: now,
			UpdatedAt: now,
			Metadata:  DefaultMetadata(),
			state:     states.New(nil),
		}
		inject(&ret)
		return ret
	}
}

func (n *Notebook) touch() {
	n.UpdatedAt = time.Now()
}

func (n *Notebook) checkIndex(index int) error {
	if index < 0 || index >= len(n.cells) {
		return fmt.Errorf("%w: %d, notebook has %d cells", ErrIndexOutOfRange, index, len(n.cells))
	}
	return nil
}

// Len returns the number of cells.
func (n *Notebook) Len() int {
	return len(n.cells)
}

// Cells returns the cell sequence. The slice is a copy, the cells are not.
func (n *Notebook) Cells() []*cells.Cell {
	return slices.Clone(n.cells)
}

func (n *Notebook) Cell(index int) (*cells.Cell, error) {
	if err := n.checkIndex(index); err != nil {
		return nil, err
	}
	return n.cells[index], nil
}

// IndexOf returns the position of the cell with id, or -1.
func (n *Notebook) IndexOf(id string) int {
	return slices.IndexFunc(n.cells, func(c *cells.Cell) bool {
		return c.ID == id
	})
}

// State returns the current snapshot.
func (n *Notebook) State() states.State {
	return n.state
}

// ClearState resets the state to empty.
func (n *Notebook) ClearState() {
	n.state = states.New(nil)
	n.touch()
}

// ClearOutputs forgets the last execution of every cell.
func (n *Notebook) ClearOutputs() {
	for _, cell := range n.cells {
		cell.Reset()
	}
	n.touch()
}

func (n *Notebook) metadata() map[string]any {
	if n.Metadata == nil {
		return map[string]any{}
	}
	return maps.Clone(n.Metadata)
}
