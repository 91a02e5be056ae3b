package cmds

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/reusee/cellbook/vars"
)

var (
	ErrUnknownCommand  = errors.New("unknown command")
	ErrMissingArgument = errors.New("missing argument")
)

// Executor runs argv items as commands from left to right.
type Executor struct {
	commands map[string]*Command
}

func NewExecutor() *Executor {
	ret := &Executor{
		commands: make(map[string]*Command),
	}
	ret.Define("-h", Func(func() {
		ret.PrintUsage()
		os.Exit(0)
	}).
		Desc("print this usage").
		Alias("help", "-help", "--help"))
	return ret
}

func (p *Executor) Define(name string, command *Command) {
	for _, name := range append([]string{name}, command.Aliases...) {
		if _, ok := p.commands[name]; ok {
			panic(fmt.Errorf("duplicated command %s", name))
		}
		p.commands[name] = command
	}
}

func (p *Executor) Execute(args []string) error {
	commands := p.commands
	for len(args) > 0 {
		name := strings.TrimSpace(args[0])
		args = args[1:]

		command, ok := commands[name]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownCommand, name)
		}

		if command.Func.IsValid() {
			fnType := command.Func.Type()
			callArgs := make([]reflect.Value, 0, fnType.NumIn())
			for i := range fnType.NumIn() {
				t := fnType.In(i)
				// an optional argument never takes a command name
				if t.Kind() == reflect.Pointer && len(args) > 0 && commands[args[0]] != nil {
					callArgs = append(callArgs, reflect.New(t.Elem()))
					continue
				}
				value, err := getArg(t, args)
				if err != nil {
					return fmt.Errorf("%s: %w", name, err)
				}
				if len(args) > 0 {
					args = args[1:]
				}
				callArgs = append(callArgs, value)
			}
			rets := command.Func.Call(callArgs)
			if len(rets) > 0 {
				if err, ok := rets[0].Interface().(error); ok && err != nil {
					return fmt.Errorf("%s: %w", name, err)
				}
			}
		}

		if len(command.Subs) > 0 {
			commands = maps.Clone(commands)
			for subname, sub := range command.Subs {
				if _, ok := commands[subname]; ok {
					return fmt.Errorf("duplicated sub command: %s %s", name, subname)
				}
				commands[subname] = sub
			}
		}
	}
	return nil
}

func (p *Executor) MustExecute(args []string) {
	if err := p.Execute(args); err != nil {
		panic(err)
	}
}

func getArg(t reflect.Type, args []string) (reflect.Value, error) {
	if t.Kind() == reflect.Pointer {
		if len(args) == 0 {
			return reflect.New(t.Elem()), nil
		}
		elem, err := getArg(t.Elem(), args)
		if err != nil {
			return reflect.Value{}, err
		}
		return elem.Addr(), nil
	}
	if len(args) == 0 {
		return reflect.Value{}, fmt.Errorf("%w <%v>", ErrMissingArgument, t.Kind())
	}

	str := args[0]
	ret := reflect.New(t).Elem()
	switch t.Kind() {

	case reflect.Bool:
		ret.SetBool(vars.StrToBool(str))

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v, err := strconv.ParseInt(str, 10, t.Bits())
		if err != nil {
			return ret, fmt.Errorf("convert %s to int: %w", str, err)
		}
		ret.SetInt(v)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v, err := strconv.ParseUint(str, 10, t.Bits())
		if err != nil {
			return ret, fmt.Errorf("convert %s to unsigned int: %w", str, err)
		}
		ret.SetUint(v)

	case reflect.Float32, reflect.Float64:
		v, err := strconv.ParseFloat(str, t.Bits())
		if err != nil {
			return ret, fmt.Errorf("convert %s to float: %w", str, err)
		}
		ret.SetFloat(v)

	case reflect.String:
		ret.SetString(str)

	default:
		return ret, fmt.Errorf("unsupported type: %v", t)
	}

	return ret, nil
}
