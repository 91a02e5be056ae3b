package bookconfigs

import (
	"github.com/reusee/cellbook/configs"
	"github.com/reusee/cellbook/logs"
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
	Configs configs.Module
	Logs    logs.Module
}
