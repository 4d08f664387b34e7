package fsops

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// errWalkLimit stops a walk once the result cap is reached.
var errWalkLimit = errors.New("walk limit reached")

// List enumerates the children of a validated directory. In recursive
// mode descendants are visited down to maxDepth levels below dir (depth
// 0 is the walk root, so its immediate children are depth 1). Excluded
// entries are filtered out, excluded directories are not descended
// into, and the listing stops at the configured cap with truncated set.
func (o *Ops) List(dir string, recursive bool, maxDepth int) ([]Entry, bool, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, fmt.Errorf("%s: %w", dir, ErrNotFound)
		}
		return nil, false, fmt.Errorf("cannot stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, false, fmt.Errorf("%s is not a directory: %w", dir, ErrWrongType)
	}

	if !recursive {
		return o.listFlat(dir)
	}
	return o.listRecursive(dir, maxDepth)
}

func (o *Ops) listFlat(dir string) ([]Entry, bool, error) {
	children, err := os.ReadDir(dir)
	if err != nil {
		return nil, false, fmt.Errorf("cannot read directory %s: %w", dir, err)
	}

	entries := []Entry{}
	truncated := false
	for _, child := range children {
		path := filepath.Join(dir, child.Name())
		if o.guard.IsExcluded(path) {
			continue
		}

		entry, err := o.Metadata(path)
		if err != nil {
			o.logger.Warn("Skipping unreadable entry", "path", path, "error", err)
			continue
		}
		entries = append(entries, entry)

		if len(entries) >= o.opts.MaxListResults {
			truncated = true
			o.logger.Warn("Directory listing limit reached", "dir", dir, "count", len(entries))
			break
		}
	}
	return entries, truncated, nil
}

func (o *Ops) listRecursive(dir string, maxDepth int) ([]Entry, bool, error) {
	entries := []Entry{}
	truncated := false

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			o.logger.Warn("Skipping unreadable entry", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if path == dir {
			return nil
		}

		if o.guard.IsExcluded(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		depth := walkDepth(dir, path)
		if depth > maxDepth {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		entry, merr := o.Metadata(path)
		if merr != nil {
			o.logger.Warn("Skipping unreadable entry", "path", path, "error", merr)
			return nil
		}
		entries = append(entries, entry)

		if len(entries) >= o.opts.MaxListResults {
			truncated = true
			o.logger.Warn("Directory listing limit reached", "dir", dir, "count", len(entries))
			return errWalkLimit
		}
		return nil
	})
	if err != nil && !errors.Is(err, errWalkLimit) {
		return nil, false, fmt.Errorf("directory walk failed: %w", err)
	}

	return entries, truncated, nil
}

// walkDepth returns how many levels below root the path sits.
func walkDepth(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return 0
	}
	return strings.Count(filepath.ToSlash(rel), "/") + 1
}
