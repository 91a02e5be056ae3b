package bookconfigs

import (
	_ "embed"
	"os"
	"path/filepath"

	"github.com/reusee/cellbook/cmds"
	"github.com/reusee/cellbook/configs"
	"github.com/reusee/cellbook/logs"
)

//go:embed schema.cue
var Schema string

var configFileFlag = cmds.Collect[string]("-config", "extra cue config file")

var filenames = []string{
	"cellbook.cue",
	".cellbook.cue",
}

// SearchPaths returns existing config files, most specific first:
// explicit -config flags, working directory, user config dir, /etc.
func SearchPaths() (paths []string) {
	paths = append(paths, *configFileFlag...)

	var dirs []string
	if workingDir, err := os.Getwd(); err == nil {
		dirs = append(dirs, workingDir)
	}
	if configDir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, configDir)
	}
	dirs = append(dirs, "/etc")

	for _, dir := range dirs {
		for _, filename := range filenames {
			path := filepath.Join(dir, filename)
			if _, err := os.Stat(path); err == nil {
				paths = append(paths, path)
			}
		}
	}
	return
}

func (Module) ConfigsLoader(
	logger logs.Logger,
) configs.Loader {
	paths := SearchPaths()
	if len(paths) > 0 {
		logger.Info("config file",
			"paths", paths,
		)
	}
	return configs.NewLoader(paths, Schema)
}
