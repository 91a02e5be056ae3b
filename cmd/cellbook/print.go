package main

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/reusee/cellbook/cells"
	"github.com/reusee/cellbook/notebooks"
	"github.com/reusee/cellbook/sandboxes"
	"github.com/reusee/cellbook/states"
)

func printCell(w io.Writer, index int, cell *cells.Cell, outputs []cells.Output) {
	fmt.Fprintf(w, "[%d] %s\n", index, cell.Kind)
	for _, output := range outputs {
		switch output.Type {

		case cells.OutputMemoryUpdate:
			for _, name := range output.Added {
				fmt.Fprintf(w, "  %s = %s\n", name, output.UpdatedState[name])
			}

		case cells.OutputLLMResponse:
			fmt.Fprintf(w, "  > %s\n", indent(output.Prompt))
			fmt.Fprintf(w, "  %s\n", indent(output.Content))

		case cells.OutputError, cells.OutputWarning:
			fmt.Fprintf(w, "  %s: %s\n", output.Type, indent(output.Content))

		default:
			fmt.Fprintf(w, "  %s\n", indent(strings.TrimSuffix(output.Content, "\n")))

		}
	}
}

func indent(s string) string {
	return strings.ReplaceAll(s, "\n", "\n  ")
}

func printGraph(w io.Writer, notebook *notebooks.Notebook) {
	graph := notebook.ExecutionGraph()
	for _, index := range slices.Sorted(maps.Keys(graph)) {
		cell, _ := notebook.Cell(index)
		fmt.Fprintf(w, "[%d] %s reads %v writes %v <- %v\n",
			index, cell.Kind, cell.Reads, cell.Writes, graph[index])
	}
}

func printState(w io.Writer, state states.State) {
	for name, value := range state.All() {
		fmt.Fprintf(w, "%s = %s\n", name, sandboxes.Format(value))
	}
}
