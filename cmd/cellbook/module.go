package main

import (
	"github.com/reusee/cellbook/debugs"
	"github.com/reusee/cellbook/notebooks"
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
	Notebooks notebooks.Module
	Debugs    debugs.Module
}
