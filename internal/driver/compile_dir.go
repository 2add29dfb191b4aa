package driver

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
)

// DirResult pairs one compiled file with its result.
type DirResult struct {
	Path   string
	Result *Result
}

// listSableFiles returns the sorted list of *.sbl files under dir.
func listSableFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".sbl") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// CompileDir compiles every *.sbl file under dir concurrently. Each file
// gets its own FileSet, Buffer, and Bag, so diagnostics never bleed between
// files. Results come back sorted by path. jobs <= 0 means GOMAXPROCS.
func CompileDir(ctx context.Context, dir string, flags Flags, jobs int) ([]DirResult, error) {
	files, err := listSableFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]DirResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			res, err := Compile(path, flags)
			if err != nil {
				return fmt.Errorf("compile %s: %w", path, err)
			}
			// Index i is unique per goroutine; no mutex needed.
			results[i] = DirResult{Path: path, Result: res}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
