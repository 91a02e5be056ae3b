package generators

import (
	"github.com/reusee/cellbook/configs"
	"github.com/reusee/cellbook/debugs"
	"github.com/reusee/cellbook/logs"
	"github.com/reusee/cellbook/nets"
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
	Configs configs.Module
	Nets    nets.Module
	Logs    logs.Module
	Debugs  debugs.Module
}
