package notebooks

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/reusee/cellbook/logs"
)

const watchSettle = 100 * time.Millisecond

// Watch loads the notebook at path and calls fn with it, then again after
// every change of the file, until ctx is done. Load failures are logged
// and skipped.
type Watch func(ctx context.Context, path string, fn func(context.Context, *Notebook) error) error

func (Module) Watch(
	load Load,
	logger logs.Logger,
) Watch {
	return func(ctx context.Context, path string, fn func(context.Context, *Notebook) error) error {
		path, err := filepath.Abs(path)
		if err != nil {
			return err
		}

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return err
		}
		defer watcher.Close()
		// the directory, since saving replaces the file
		if err := watcher.Add(filepath.Dir(path)); err != nil {
			return err
		}

		reload := func() error {
			notebook, err := load(ctx, path)
			if err != nil {
				logger.WarnContext(ctx, "watch: load failed",
					"path", path,
					"error", err,
				)
				return nil
			}
			return fn(ctx, notebook)
		}

		if err := reload(); err != nil {
			return err
		}

		var settle <-chan time.Time
		for {
			select {

			case <-ctx.Done():
				return ctx.Err()

			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if filepath.Clean(event.Name) != path {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}
				logger.DebugContext(ctx, "watch: changed",
					"path", path,
					"op", event.Op.String(),
				)
				// collapse bursts of events from one save
				settle = time.After(watchSettle)

			case <-settle:
				settle = nil
				if err := reload(); err != nil {
					return err
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				logger.WarnContext(ctx, "watch: error",
					"error", err,
				)

			}
		}
	}
}
