package notebooks

import (
	"fmt"
	"slices"

	"github.com/reusee/cellbook/cells"
)

// AddCell appends a cell.
func (n *Notebook) AddCell(cell *cells.Cell) {
	n.cells = append(n.cells, cell)
	n.touch()
}

// InsertCell puts a cell at index, shifting later cells. index may equal Len.
func (n *Notebook) InsertCell(index int, cell *cells.Cell) error {
	if index < 0 || index > len(n.cells) {
		return fmt.Errorf("%w: %d, notebook has %d cells", ErrIndexOutOfRange, index, len(n.cells))
	}
	n.cells = slices.Insert(n.cells, index, cell)
	n.touch()
	return nil
}

func (n *Notebook) DeleteCell(index int) (*cells.Cell, error) {
	if err := n.checkIndex(index); err != nil {
		return nil, err
	}
	cell := n.cells[index]
	n.cells = slices.Delete(n.cells, index, index+1)
	n.touch()
	return cell, nil
}

// MoveCell moves the cell at from so that it ends up at to.
func (n *Notebook) MoveCell(from, to int) error {
	if err := n.checkIndex(from); err != nil {
		return err
	}
	if err := n.checkIndex(to); err != nil {
		return err
	}
	cell := n.cells[from]
	n.cells = slices.Delete(n.cells, from, from+1)
	n.cells = slices.Insert(n.cells, to, cell)
	n.touch()
	return nil
}

// EditCell replaces the content. The last execution no longer describes
// the cell, so outputs, reads and writes are cleared.
func (n *Notebook) EditCell(index int, content string) error {
	if err := n.checkIndex(index); err != nil {
		return err
	}
	cell := n.cells[index]
	cell.Content = content
	cell.Reset()
	n.touch()
	return nil
}

// SetPromptConfig validates and replaces the config of a prompt cell.
func (n *Notebook) SetPromptConfig(index int, config cells.PromptConfig) error {
	if err := n.checkIndex(index); err != nil {
		return err
	}
	cell := n.cells[index]
	if cell.Kind != cells.Prompt {
		return fmt.Errorf("cell %d is a %v cell, not a prompt cell", index, cell.Kind)
	}
	if err := config.Validate(); err != nil {
		return err
	}
	cell.Prompt = config
	n.touch()
	return nil
}

func (n *Notebook) NewMarkdownCell(content string) *cells.Cell {
	cell := cells.New(cells.Markdown, content)
	n.AddCell(cell)
	return cell
}

func (n *Notebook) NewComputationCell(content string) *cells.Cell {
	cell := cells.New(cells.Computation, content)
	n.AddCell(cell)
	return cell
}

func (n *Notebook) NewMemoryCell(content string) *cells.Cell {
	cell := cells.New(cells.Memory, content)
	n.AddCell(cell)
	return cell
}

// NewPromptCell appends a prompt cell. Empty model and nil temperature
// take the configured defaults. Invalid settings add nothing.
func (n *Notebook) NewPromptCell(content string, model string, temperature *float64, responseName string) (*cells.Cell, error) {
	cell, err := n.PromptCells()(content, model, temperature, responseName)
	if err != nil {
		return nil, err
	}
	n.AddCell(cell)
	return cell, nil
}
