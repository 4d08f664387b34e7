package pathguard

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/go-git/go-git/v6/plumbing/format/gitignore"
)

// IsExcluded reports whether path is blocked by the exclusion policy.
// path must be absolute; anything not under the root is treated as
// excluded (fail closed). The static exclude patterns are checked first,
// then every .gitignore from the path's parent chain up to and including
// the root. A match at any level excludes the path; nearer files do not
// override farther ones.
func (g *Guard) IsExcluded(path string) bool {
	if !filepath.IsAbs(path) {
		return true
	}

	rel, err := filepath.Rel(g.root, filepath.Clean(path))
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return true
	}
	if rel == "." {
		// The root itself is never excluded.
		return false
	}

	segments := strings.Split(filepath.ToSlash(rel), "/")

	isDir := false
	if info, err := os.Stat(path); err == nil {
		isDir = info.IsDir()
	}

	if g.excludes != nil && g.excludes.Match(segments, isDir) {
		return true
	}

	if !g.respectGitignore {
		return false
	}

	for dir := filepath.Dir(path); strings.HasPrefix(dir, g.root); dir = filepath.Dir(dir) {
		if m, ok := g.index[dir]; ok && m.Match(segments, isDir) {
			return true
		}
		if dir == g.root {
			break
		}
	}

	return false
}

// compileExcludes builds a matcher for the configured exclude patterns.
// Patterns are root-relative gitignore globs; blank lines and comments
// are ignored. Returns nil when no usable patterns remain.
func compileExcludes(patterns []string) gitignore.Matcher {
	ps := parsePatternLines(patterns, nil)
	if len(ps) == 0 {
		return nil
	}
	return gitignore.NewMatcher(ps)
}

// loadGitignoreIndex walks the root subtree once and compiles a matcher
// for every .gitignore file found. Each matcher is scoped to its
// containing directory via the pattern domain, so it only applies to
// that directory and its descendants.
func (g *Guard) loadGitignoreIndex() {
	err := filepath.WalkDir(g.root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			g.logger.Warn("Skipping unreadable entry during .gitignore scan", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || d.Name() != ".gitignore" {
			return nil
		}

		dir := filepath.Dir(path)
		matcher, perr := parseGitignoreFile(path, g.domainFor(dir))
		if perr != nil {
			g.logger.Warn("Failed to parse .gitignore", "path", path, "error", perr)
			return nil
		}
		if matcher != nil {
			g.index[dir] = matcher
		}
		return nil
	})
	if err != nil {
		g.logger.Warn("Error walking root for .gitignore files", "error", err)
	}

	g.logger.Debug("Gitignore index built", "directories", len(g.index))
}

// domainFor returns the root-relative path segments for dir, or nil for
// the root itself. Patterns parsed with this domain only match paths
// under dir.
func (g *Guard) domainFor(dir string) []string {
	rel, err := filepath.Rel(g.root, dir)
	if err != nil || rel == "." {
		return nil
	}
	return strings.Split(filepath.ToSlash(rel), "/")
}

func parseGitignoreFile(path string, domain []string) (gitignore.Matcher, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	ps := parsePatternLines(lines, domain)
	if len(ps) == 0 {
		return nil, nil
	}
	return gitignore.NewMatcher(ps), nil
}

func parsePatternLines(lines []string, domain []string) []gitignore.Pattern {
	var ps []gitignore.Pattern
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		ps = append(ps, gitignore.ParsePattern(trimmed, domain))
	}
	return ps
}
