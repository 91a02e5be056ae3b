package cmds

import (
	"fmt"
	"os"
)

var GlobalExecutor = NewExecutor()

func Define(name string, command *Command) {
	GlobalExecutor.Define(name, command)
}

// Execute runs args against the global executor. A malformed command
// line is reported with the usage and exits the process.
func Execute(args []string) {
	if err := GlobalExecutor.Execute(args); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n\n", err)
		GlobalExecutor.PrintUsage()
		os.Exit(2)
	}
}

// Var defines a flag taking one value. name. resets it.
func Var[T any](name string, desc string) *T {
	var value T
	Define(name, Func(func(v T) {
		value = v
	}).Desc(desc))
	Define(name+".", Func(func() {
		var zero T
		value = zero
	}).Desc("reset "+name))
	return &value
}

// Switch defines a boolean flag. !name turns it off.
func Switch(name string, desc string) *bool {
	var value bool
	Define(name, Func(func() {
		value = true
	}).Desc(desc))
	Define("!"+name, Func(func() {
		value = false
	}).Desc("unset "+name))
	return &value
}

// Collect defines a flag that may be given multiple times.
func Collect[T any](name string, desc string) *[]T {
	var value []T
	Define(name, Func(func(v T) {
		value = append(value, v)
	}).Desc(desc+", repeatable"))
	return &value
}
