package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/reusee/cellbook/cmds"
	"github.com/reusee/cellbook/modes"
	"github.com/reusee/dscope"
)

func main() {
	cmds.Execute(os.Args[1:])
	if len(actions) == 0 {
		cmds.GlobalExecutor.PrintUsage()
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	scope := dscope.New(
		new(Module),
		modes.ForProduction(),
	)

	var s Session
	scope.Call(func(
		inject dscope.InjectStruct,
	) {
		inject(&s)
	})
	s.Out = os.Stdout

	for _, action := range actions {
		ce(action(ctx, &s))
	}
}
