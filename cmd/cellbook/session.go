package main

import (
	"context"
	"io"

	"github.com/reusee/cellbook/debugs"
	"github.com/reusee/cellbook/generators"
	"github.com/reusee/cellbook/logs"
	"github.com/reusee/cellbook/notebooks"
	"github.com/reusee/dscope"
)

// Session holds the notebook the commands operate on.
type Session struct {
	Out io.Writer

	notebook *notebooks.Notebook
	// where the notebook came from, the default target of save
	path string

	Logger      dscope.Inject[logs.Logger]
	NewNotebook dscope.Inject[notebooks.NewNotebook]
	Load        dscope.Inject[notebooks.Load]
	Save        dscope.Inject[notebooks.Save]
	Watch       dscope.Inject[notebooks.Watch]
	Providers   dscope.Inject[*generators.Providers]
	Tap         dscope.Inject[debugs.Tap]
}

// Notebook returns the current notebook, creating an empty one if needed.
func (s *Session) Notebook() *notebooks.Notebook {
	if s.notebook == nil {
		s.notebook = s.NewNotebook()("")
	}
	return s.notebook
}

type Action func(ctx context.Context, s *Session) error

var actions []Action

func queue(action Action) {
	actions = append(actions, action)
}
