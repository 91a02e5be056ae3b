package notebooks

import (
	"context"
	"fmt"

	"github.com/reusee/cellbook/cells"
)

// Execute runs the cell at index against the current state and replaces
// the state with the result. A failing cell leaves the state as it was
// and records an error output.
func (n *Notebook) Execute(ctx context.Context, index int) ([]cells.Output, error) {
	if err := n.checkIndex(index); err != nil {
		return nil, err
	}
	cell := n.cells[index]

	ctx, _ = n.NewSpan()(ctx, fmt.Sprintf("cell%d", index))
	logger := n.Logger()
	logger.DebugContext(ctx, "execute cell",
		"index", index,
		"kind", cell.Kind.String(),
		"id", cell.ID,
	)

	result := cells.Evaluate(ctx, cell, n.state, n.MakeEnv()(index))
	n.state = result.State
	cell.Apply(result)
	n.touch()

	logger.InfoContext(ctx, "cell executed",
		"index", index,
		"kind", cell.Kind.String(),
		"id", cell.ID,
		"outputs", len(result.Outputs),
		"failed", result.Failed,
		"writes", result.Writes,
	)

	return cell.Outputs, nil
}

// CellDone is called after each cell ExecuteAll runs.
type CellDone func(index int, cell *cells.Cell, outputs []cells.Output)

// ExecuteAll runs every cell in order. A failing cell does not stop
// the run.
func (n *Notebook) ExecuteAll(ctx context.Context, done ...CellDone) error {
	for i := range n.cells {
		if err := ctx.Err(); err != nil {
			return err
		}
		outputs, err := n.Execute(ctx, i)
		if err != nil {
			return err
		}
		for _, fn := range done {
			fn(i, n.cells[i], outputs)
		}
	}
	return nil
}
