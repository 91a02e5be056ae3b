package notebooks

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatch(t *testing.T) {
	newTestScope(t).Call(func(
		newNotebook NewNotebook,
		save Save,
		watch Watch,
	) {
		path := filepath.Join(t.TempDir(), "book.json")
		nb := newNotebook("watched")
		nb.NewMarkdownCell("one")
		require.NoError(t, save(t.Context(), nb, path))

		ctx, cancel := context.WithTimeout(t.Context(), 10*time.Second)
		defer cancel()

		loaded := make(chan int, 16)
		errCh := make(chan error, 1)
		go func() {
			errCh <- watch(ctx, path, func(ctx context.Context, notebook *Notebook) error {
				loaded <- notebook.Len()
				return nil
			})
		}()

		select {
		case n := <-loaded:
			require.Equal(t, 1, n)
		case <-ctx.Done():
			t.Fatal("timed out waiting for initial load")
		}

		// let the watcher settle
		time.Sleep(200 * time.Millisecond)
		nb.NewMarkdownCell("two")
		require.NoError(t, save(ctx, nb, path))

	loop:
		for {
			select {
			case n := <-loaded:
				if n == 2 {
					break loop
				}
			case <-ctx.Done():
				t.Fatal("timed out waiting for reload")
			}
		}

		cancel()
		require.ErrorIs(t, <-errCh, context.Canceled)
	})
}
