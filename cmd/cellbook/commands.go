package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/reusee/cellbook/cells"
	"github.com/reusee/cellbook/cmds"
	"github.com/reusee/cellbook/generators"
	"github.com/reusee/cellbook/notebooks"
	"golang.org/x/term"
)

func init() {

	cmds.Define("new", cmds.Func(func(name string) {
		queue(func(ctx context.Context, s *Session) error {
			s.notebook = s.NewNotebook()(name)
			s.path = ""
			return nil
		})
	}).Desc("start an empty notebook"))

	cmds.Define("load", cmds.Func(func(path string) {
		queue(func(ctx context.Context, s *Session) error {
			notebook, err := s.Load()(ctx, path)
			if err != nil {
				return err
			}
			s.notebook = notebook
			s.path = path
			return nil
		})
	}).Desc("load a notebook file").Alias("open"))

	cmds.Define("md", cmds.Func(func(text string) {
		queue(func(ctx context.Context, s *Session) error {
			s.Notebook().NewMarkdownCell(text)
			return nil
		})
	}).Desc("append a markdown cell"))

	cmds.Define("code", cmds.Func(func(source string) {
		queue(func(ctx context.Context, s *Session) error {
			source, err := argOrStdin(source)
			if err != nil {
				return err
			}
			s.Notebook().NewComputationCell(source)
			return nil
		})
	}).Desc("append a computation cell, - reads stdin"))

	cmds.Define("prompt", cmds.Func(func(template string) {
		queue(func(ctx context.Context, s *Session) error {
			template, err := argOrStdin(template)
			if err != nil {
				return err
			}
			_, err = s.Notebook().NewPromptCell(template, "", nil, "")
			return err
		})
	}).Desc("append a prompt cell, - reads stdin"))

	cmds.Define("prompt-to", cmds.Func(func(name string, template string) {
		queue(func(ctx context.Context, s *Session) error {
			_, err := s.Notebook().NewPromptCell(template, "", nil, name)
			return err
		})
	}).Desc("append a prompt cell storing its response under a name"))

	cmds.Define("memory", cmds.Func(func(ops string) {
		queue(func(ctx context.Context, s *Session) error {
			ops, err := argOrStdin(ops)
			if err != nil {
				return err
			}
			s.Notebook().NewMemoryCell(ops)
			return nil
		})
	}).Desc("append a memory cell, - reads stdin"))

	cmds.Define("import", cmds.Func(func(path string) {
		queue(func(ctx context.Context, s *Session) error {
			kind, content, err := importFile(path)
			if err != nil {
				return err
			}
			s.Notebook().AddCell(cells.New(kind, content))
			return nil
		})
	}).Desc("append a text file as a cell, kind by extension"))

	cmds.Define("edit", cmds.Func(func(index int, content string) {
		queue(func(ctx context.Context, s *Session) error {
			return s.Notebook().EditCell(index, content)
		})
	}).Desc("replace the content of a cell"))

	cmds.Define("delete", cmds.Func(func(index int) {
		queue(func(ctx context.Context, s *Session) error {
			_, err := s.Notebook().DeleteCell(index)
			return err
		})
	}).Desc("remove a cell").Alias("rm"))

	cmds.Define("move", cmds.Func(func(from int, to int) {
		queue(func(ctx context.Context, s *Session) error {
			return s.Notebook().MoveCell(from, to)
		})
	}).Desc("move a cell"))

	cmds.Define("run", cmds.Func(func() {
		queue(func(ctx context.Context, s *Session) error {
			return runAll(ctx, s.Out, s.Notebook())
		})
	}).Desc("execute every cell in order"))

	cmds.Define("exec", cmds.Func(func(index int) {
		queue(func(ctx context.Context, s *Session) error {
			outputs, err := s.Notebook().Execute(ctx, index)
			if err != nil {
				return err
			}
			cell, _ := s.Notebook().Cell(index)
			printCell(s.Out, index, cell, outputs)
			return nil
		})
	}).Desc("execute one cell"))

	cmds.Define("save", cmds.Func(func(path string) {
		queue(func(ctx context.Context, s *Session) error {
			if err := s.Save()(ctx, s.Notebook(), path); err != nil {
				return err
			}
			s.path = path
			return nil
		})
	}).Desc("write the notebook to a file, .yaml or .yml for YAML"))

	cmds.Define("write", cmds.Func(func() {
		queue(func(ctx context.Context, s *Session) error {
			if s.path == "" {
				return fmt.Errorf("notebook was not loaded from a file, use save")
			}
			return s.Save()(ctx, s.Notebook(), s.path)
		})
	}).Desc("write the notebook back to where it was loaded"))

	cmds.Define("graph", cmds.Func(func() {
		queue(func(ctx context.Context, s *Session) error {
			printGraph(s.Out, s.Notebook())
			return nil
		})
	}).Desc("print the dependencies of every cell"))

	cmds.Define("state", cmds.Func(func() {
		queue(func(ctx context.Context, s *Session) error {
			printState(s.Out, s.Notebook().State())
			return nil
		})
	}).Desc("print the current state"))

	cmds.Define("clear", cmds.Func(func() {
		queue(func(ctx context.Context, s *Session) error {
			s.Notebook().ClearOutputs()
			s.Notebook().ClearState()
			return nil
		})
	}).Desc("drop outputs and state"))

	cmds.Define("tap", cmds.Func(func() {
		queue(func(ctx context.Context, s *Session) error {
			s.Tap()(ctx, "notebook state", s.Notebook().State().Map())
			return nil
		})
	}).Desc("open a starlark repl over the current state"))

	cmds.Define("watch", cmds.Func(func(path string) {
		queue(func(ctx context.Context, s *Session) error {
			return s.Watch()(ctx, path, func(ctx context.Context, notebook *notebooks.Notebook) error {
				s.notebook = notebook
				s.path = path
				fmt.Fprintf(s.Out, "== %s\n", path)
				return runAll(ctx, s.Out, notebook)
			})
		})
	}).Desc("run a notebook file on every change"))

	cmds.Define("glob", cmds.Func(func(pattern string) {
		queue(func(ctx context.Context, s *Session) error {
			return runGlob(ctx, s, pattern)
		})
	}).Desc("run every notebook file matching a pattern, ** matches directories"))

	configure := func(spec generators.ProviderSpec) {
		queue(func(ctx context.Context, s *Session) error {
			if err := s.Providers().Configure(ctx, spec); err != nil {
				return err
			}
			fmt.Fprintf(s.Out, "provider: %s\n", s.Providers().Spec())
			return nil
		})
	}

	cmds.Define("provider", cmds.Func(func(typ string) {
		configure(generators.ProviderSpec{
			Type: typ,
		})
	}).Desc("select the generation provider: mock, openai, openrouter, deepseek, ollama or a configured name"))

	cmds.Define("provider-model", cmds.Func(func(typ string, model string) {
		configure(generators.ProviderSpec{
			Type:  typ,
			Model: model,
		})
	}).Desc("select the generation provider and its model"))

	cmds.Define("models", cmds.Func(func() {
		queue(func(ctx context.Context, s *Session) error {
			models, err := s.Providers().Models(ctx)
			if err != nil {
				return err
			}
			for _, model := range models {
				fmt.Fprintln(s.Out, model)
			}
			return nil
		})
	}).Desc("list the models of the current provider"))

}

// argOrStdin reads stdin for "-" when stdin is not a terminal.
func argOrStdin(arg string) (string, error) {
	if arg != "-" {
		return arg, nil
	}
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return "", fmt.Errorf("stdin is a terminal, nothing to read")
	}
	content, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return string(content), nil
}

func runAll(ctx context.Context, w io.Writer, notebook *notebooks.Notebook) error {
	return notebook.ExecuteAll(ctx, func(index int, cell *cells.Cell, outputs []cells.Output) {
		printCell(w, index, cell, outputs)
	})
}
