package gen

import (
	"context"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"
)

// prepareRoot clears and recreates a backend output root. Both backends get
// a fresh tree on every run; stale files from a previous model must not
// survive.
func prepareRoot(backend, dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return NewGenerationError(backend, dir, "clear output root", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return NewGenerationError(backend, dir, "create output root", err)
	}
	return nil
}

// copySupport copies the fixed static support file set into the output root.
// The support files are hand-written runtime sources (base entity type,
// collection container, diff engine); they are copied verbatim.
func copySupport(backend, srcDir, outDir string, names []string) error {
	if srcDir == "" {
		return nil
	}
	for _, name := range names {
		src := filepath.Join(srcDir, name)
		data, err := os.ReadFile(src)
		if err != nil {
			return NewGenerationError(backend, src, "read support file", err)
		}
		dst := filepath.Join(outDir, name)
		if err := os.WriteFile(dst, data, 0o644); err != nil {
			return NewGenerationError(backend, dst, "write support file", err)
		}
	}
	return nil
}

// writeFiles writes pre-rendered files under the output root concurrently.
// Per-class output is independent, so ordering between files carries no
// meaning; order within each file was fixed at render time.
func writeFiles(ctx context.Context, backend, outDir string, files []File, workers int) error {
	eg, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		eg.SetLimit(workers)
	}
	for _, f := range files {
		f := f
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			path := filepath.Join(outDir, f.Name)
			if dir := filepath.Dir(path); dir != outDir {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return NewGenerationError(backend, path, "create directory", err)
				}
			}
			if err := os.WriteFile(path, f.Body, 0o644); err != nil {
				return NewGenerationError(backend, path, "write file", err)
			}
			return nil
		})
	}
	return eg.Wait()
}
