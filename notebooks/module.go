package notebooks

import (
	"github.com/reusee/cellbook/cells"
	"github.com/reusee/cellbook/logs"
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
	Cells cells.Module
	Logs  logs.Module
}
