package debugs

import (
	"context"
	"maps"
	"slices"

	"github.com/reusee/cellbook/logs"
	"github.com/reusee/cellbook/sandboxes"
	"go.starlark.net/repl"
	"go.starlark.net/starlark"
)

// Tap opens an interactive starlark prompt on stdin with the given globals.
// It returns when stdin is closed.
type Tap func(ctx context.Context, what string, globals map[string]any)

func (Module) Tap(
	logger logs.Logger,
) Tap {
	return func(ctx context.Context, what string, globals map[string]any) {
		names := slices.Sorted(maps.Keys(globals))
		logger.InfoContext(ctx, "tap: "+what,
			"globals", names,
		)
		defer func() {
			logger.InfoContext(ctx, "tap end: "+what)
		}()

		thread := &starlark.Thread{
			Name: "tap",
			Load: sandboxes.LoadModule,
		}
		repl.REPLOptions(&sandboxes.FileOptions, thread, Globals(ctx, logger, globals))
	}
}

// Globals converts values for the prompt, skipping the ones starlark cannot hold.
func Globals(ctx context.Context, logger logs.Logger, globals map[string]any) starlark.StringDict {
	ret := make(starlark.StringDict, len(globals))
	for name, value := range globals {
		v, err := sandboxes.ToStarlark(value)
		if err != nil {
			logger.WarnContext(ctx, "tap: skip global",
				"name", name,
				"error", err,
			)
			continue
		}
		ret[name] = v
	}
	return ret
}
