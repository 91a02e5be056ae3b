package cmds

import (
	"fmt"
	"reflect"
	"strings"
)

// Command is a function run when its name appears in argv, consuming one
// argv item per parameter, and optionally a set of sub commands that
// become available after it.
type Command struct {
	Func        reflect.Value
	Subs        map[string]*Command
	Description string
	Aliases     []string
}

var errorType = reflect.TypeFor[error]()

func Func(fn any) *Command {
	fnValue := reflect.ValueOf(fn)
	if fnValue.Kind() != reflect.Func {
		panic(fmt.Errorf("must be function, got %T", fn))
	}
	fnType := fnValue.Type()
	switch fnType.NumOut() {
	case 0:
	case 1:
		if fnType.Out(0) != errorType {
			panic(fmt.Errorf("must return error, got %v", fnType.Out(0)))
		}
	default:
		panic(fmt.Errorf("must return 0 or 1 value, got %v", fnType))
	}
	return &Command{
		Func: fnValue,
	}
}

func Sub(subs map[string]*Command) *Command {
	return &Command{
		Subs: subs,
	}
}

func (c *Command) Desc(desc string) *Command {
	c.Description = desc
	return c
}

func (c *Command) Alias(names ...string) *Command {
	c.Aliases = append(c.Aliases, names...)
	return c
}

// Params describes the arguments, optional ones in brackets.
func (c *Command) Params() string {
	if !c.Func.IsValid() {
		return ""
	}
	fnType := c.Func.Type()
	var params []string
	for i := range fnType.NumIn() {
		t := fnType.In(i)
		if t.Kind() == reflect.Pointer {
			params = append(params, "[<"+t.Elem().Kind().String()+">]")
			continue
		}
		params = append(params, "<"+t.Kind().String()+">")
	}
	return strings.Join(params, " ")
}
