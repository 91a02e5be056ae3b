package main

import (
	"bytes"
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/reusee/cellbook/cmds"
	"github.com/reusee/cellbook/syncs"
)

var jobsFlag = cmds.Var[int]("-jobs", "notebooks run at the same time by glob, defaults to the number of cpus")

// runGlob runs the matching notebooks concurrently and prints their
// outputs in path order. The last one becomes the current notebook.
func runGlob(ctx context.Context, s *Session, pattern string) error {
	paths, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		s.Logger().WarnContext(ctx, "no notebook matched", "pattern", pattern)
		return nil
	}

	sem := syncs.NewSemaphore(*jobsFlag)
	if *jobsFlag <= 0 {
		sem = syncs.NewSemaphore(runtime.GOMAXPROCS(0))
	}
	outputs := make([]bytes.Buffer, len(paths))
	errs := make([]error, len(paths))
	var wg sync.WaitGroup
	for i, path := range paths {
		if err := sem.Acquire(ctx); err != nil {
			errs[i] = err
			break
		}
		wg.Go(func() {
			defer sem.Release()
			notebook, err := s.Load()(ctx, path)
			if err != nil {
				errs[i] = err
				return
			}
			errs[i] = runAll(ctx, &outputs[i], notebook)
			if i == len(paths)-1 {
				s.notebook = notebook
				s.path = path
			}
		})
	}
	wg.Wait()

	for i, path := range paths {
		if errs[i] != nil {
			return fmt.Errorf("%s: %w", path, errs[i])
		}
		fmt.Fprintf(s.Out, "== %s\n", path)
		if _, err := outputs[i].WriteTo(s.Out); err != nil {
			return err
		}
	}
	return nil
}
