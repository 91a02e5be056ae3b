package sandboxes

import (
	"fmt"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// allowed lists the builtins visible to restricted evaluation.
var allowed = map[string]bool{
	"None":  true,
	"True":  true,
	"False": true,
	"abs":   true,
	"bool":  true,
	"dict":  true,
	"float": true,
	"int":   true,
	"len":   true,
	"list":  true,
	"max":   true,
	"min":   true,
	"range": true,
	"set":   true,
	"str":   true,
	"sum":   true,
	"tuple": true,
}

// Eval evaluates a single expression with bindings as the only
// variables and a short allow-list of pure builtins.
func Eval(expr string, bindings map[string]any) (ret any, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()

	env := make(starlark.StringDict, len(starlark.Universe)+len(bindings)+1)
	for name := range starlark.Universe {
		if !allowed[name] {
			env[name] = notAllowed(name)
		}
	}
	env["sum"] = starlark.NewBuiltin("sum", sum)
	for name, value := range bindings {
		v, err := ToStarlark(value)
		if err != nil {
			continue
		}
		env[name] = v
	}

	thread := &starlark.Thread{
		Name:  "eval",
		Print: func(*starlark.Thread, string) {},
	}
	v, err := starlark.EvalOptions(&FileOptions, thread, "expr", expr, env)
	if err != nil {
		return nil, err
	}
	return FromStarlark(v), nil
}

func notAllowed(name string) *starlark.Builtin {
	return starlark.NewBuiltin(name, func(*starlark.Thread, *starlark.Builtin, starlark.Tuple, []starlark.Tuple) (starlark.Value, error) {
		return nil, fmt.Errorf("%s is not allowed here", name)
	})
}

func sum(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var iterable starlark.Iterable
	var start starlark.Value = starlark.MakeInt(0)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "iterable", &iterable, "start?", &start); err != nil {
		return nil, err
	}
	iter := iterable.Iterate()
	defer iter.Done()
	acc := start
	var x starlark.Value
	for iter.Next(&x) {
		var err error
		acc, err = starlark.Binary(syntax.PLUS, acc, x)
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}
