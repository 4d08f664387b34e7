package fsops

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gobwas/glob"
)

// regexPrefix marks a search pattern as a regular expression matched
// against file names instead of a glob.
const regexPrefix = "r/"

type patternMatcher func(name, relPath string) bool

// Search walks a validated directory for files matching pattern. The
// pattern is a glob, or a regex when prefixed with "r/". Globs
// containing a separator are matched against the root-relative path;
// bare globs match the file name. Excluded directories are pruned from
// the walk, results are capped at the configured maximum with truncated
// set, and include_content embeds file text for files under the size
// ceiling.
func (o *Ops) Search(pattern, dir string, recursive, includeContent bool) ([]Entry, bool, error) {
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

	matches, err := compileSearchPattern(pattern)
	if err != nil {
		return nil, false, err
	}

	results := []Entry{}
	truncated := false

	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			o.logger.Warn("Skipping unreadable entry during search", "path", path, "error", err)
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

		if d.IsDir() {
			if !recursive {
				return filepath.SkipDir
			}
			return nil
		}

		rel, rerr := filepath.Rel(dir, path)
		if rerr != nil {
			return nil
		}
		if !matches(d.Name(), filepath.ToSlash(rel)) {
			return nil
		}

		entry, merr := o.Metadata(path)
		if merr != nil {
			o.logger.Warn("Skipping unreadable search match", "path", path, "error", merr)
			return nil
		}

		if includeContent {
			if res, rerr := o.Read(path); rerr == nil && !res.TooLarge && !res.Binary {
				entry.Content = res.Content
			} else if rerr != nil {
				o.logger.Warn("Failed to include content for search match", "path", path, "error", rerr)
			}
		}

		results = append(results, entry)
		if len(results) >= o.opts.MaxSearchResults {
			truncated = true
			o.logger.Warn("Search results limit reached", "pattern", pattern, "count", len(results))
			return errWalkLimit
		}
		return nil
	})
	if walkErr != nil && !errors.Is(walkErr, errWalkLimit) {
		return nil, false, fmt.Errorf("search walk failed: %w", walkErr)
	}

	return results, truncated, nil
}

func compileSearchPattern(pattern string) (patternMatcher, error) {
	if rest, ok := strings.CutPrefix(pattern, regexPrefix); ok {
		re, err := regexp.Compile(rest)
		if err != nil {
			return nil, fmt.Errorf("invalid search regex: %w", err)
		}
		return func(name, _ string) bool {
			return re.MatchString(name)
		}, nil
	}

	// Path-qualified globs match the relative path with / as separator;
	// bare globs match the file name only.
	if strings.Contains(pattern, "/") {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid search pattern: %w", err)
		}
		return func(_, relPath string) bool {
			return g.Match(relPath)
		}, nil
	}

	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid search pattern: %w", err)
	}
	return func(name, _ string) bool {
		return g.Match(name)
	}, nil
}
