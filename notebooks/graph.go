package notebooks

import (
	"slices"

	"github.com/reusee/cellbook/cells"
)

// Dependencies returns the indexes of earlier cells whose last writes
// intersect the last reads of the cell at index.
func (n *Notebook) Dependencies(index int) ([]int, error) {
	if err := n.checkIndex(index); err != nil {
		return nil, err
	}
	target := n.cells[index]
	var ret []int
	for i := range index {
		if feeds(n.cells[i], target) {
			ret = append(ret, i)
		}
	}
	return ret, nil
}

// Dependents returns the indexes of later cells that read what the cell
// at index last wrote.
func (n *Notebook) Dependents(index int) ([]int, error) {
	if err := n.checkIndex(index); err != nil {
		return nil, err
	}
	source := n.cells[index]
	var ret []int
	for i := index + 1; i < len(n.cells); i++ {
		if feeds(source, n.cells[i]) {
			ret = append(ret, i)
		}
	}
	return ret, nil
}

// ExecutionGraph maps every cell index to its dependencies.
func (n *Notebook) ExecutionGraph() map[int][]int {
	ret := make(map[int][]int, len(n.cells))
	for i := range n.cells {
		deps, _ := n.Dependencies(i)
		ret[i] = deps
	}
	return ret
}

func feeds(from, to *cells.Cell) bool {
	for _, name := range from.Writes {
		if slices.Contains(to.Reads, name) {
			return true
		}
	}
	return false
}
