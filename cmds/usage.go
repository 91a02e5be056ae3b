package cmds

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
)

func (p *Executor) PrintUsage() {
	p.WriteUsage(os.Stderr)
}

func (p *Executor) WriteUsage(w io.Writer) {
	var names []string
	for name, command := range p.commands {
		if slices.Contains(command.Aliases, name) {
			continue
		}
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		writeCommand(w, name, p.commands[name], 0)
	}
}

func writeCommand(w io.Writer, name string, command *Command, depth int) {
	indent := strings.Repeat("  ", depth)
	line := indent + name
	if params := command.Params(); params != "" {
		line += " " + params
	}
	if len(command.Aliases) > 0 {
		line += " (" + strings.Join(command.Aliases, ", ") + ")"
	}
	if command.Description != "" {
		line += "\t" + command.Description
	}
	fmt.Fprintln(w, line)
	subNames := make([]string, 0, len(command.Subs))
	for subName := range command.Subs {
		subNames = append(subNames, subName)
	}
	slices.Sort(subNames)
	for _, subName := range subNames {
		if sub := command.Subs[subName]; sub != nil {
			writeCommand(w, subName, sub, depth+1)
		}
	}
}
