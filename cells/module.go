package cells

import (
	"github.com/reusee/cellbook/bookconfigs"
	"github.com/reusee/cellbook/generators"
	"github.com/reusee/cellbook/logs"
	"github.com/reusee/cellbook/sandboxes"
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
	BookConfigs bookconfigs.Module
	Generators  generators.Module
	Logs        logs.Module
}

func (Module) Engine() sandboxes.Engine {
	return sandboxes.Starlark{}
}
