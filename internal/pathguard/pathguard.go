package pathguard

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"localmcp/internal/logging"

	gitignore "github.com/go-git/go-git/v6/plumbing/format/gitignore"
)

// Rejection errors returned by Validate. Use Kind or errors.Is to
// distinguish them; both are terminal for the request.
var (
	// ErrOutOfBounds means the canonical path is not the root or one of
	// its descendants. Traversal attempts, absolute paths outside the
	// served tree, unrecognized URI schemes, and malformed input all
	// collapse here (fail closed).
	ErrOutOfBounds = errors.New("path is outside the permitted root")

	// ErrExcluded means the path is within bounds but matched by an
	// exclude pattern or an applicable .gitignore rule.
	ErrExcluded = errors.New("path is excluded by policy")
)

// RejectionKind classifies a Validate failure for logging and responses.
type RejectionKind int

const (
	KindNone RejectionKind = iota
	KindOutOfBounds
	KindExcluded
)

// Kind returns the rejection taxonomy for an error from Validate.
func Kind(err error) RejectionKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrExcluded):
		return KindExcluded
	default:
		return KindOutOfBounds
	}
}

// uriSchemeRe recognizes a leading URI scheme such as "http://". Only
// file:// is accepted; anything else is rejected as malformed.
var uriSchemeRe = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*://`)

// Guard validates candidate paths against a root directory and an
// exclusion policy. Immutable after New; safe for concurrent use.
type Guard struct {
	root     string
	excludes gitignore.Matcher
	index    map[string]gitignore.Matcher
	logger   *logging.AppLogger

	respectGitignore bool
}

// New builds a Guard for root. The root must exist and be a directory;
// it is canonicalized so later containment checks compare resolved paths.
// Exclude patterns use gitignore glob syntax. When respectGitignore is
// set, the root subtree is walked once for .gitignore files; the
// resulting index is not refreshed while the server runs.
func New(root string, excludePatterns []string, respectGitignore bool, logger *logging.AppLogger) (*Guard, error) {
	if logger == nil {
		logger = logging.GetDefault()
	}

	root = strings.TrimSpace(root)
	if root == "" {
		return nil, fmt.Errorf("root directory cannot be empty")
	}

	abs, err := filepath.Abs(ExpandPath(root))
	if err != nil {
		return nil, fmt.Errorf("cannot resolve root directory: %w", err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("cannot access root directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root is not a directory: %s", abs)
	}

	canon, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, fmt.Errorf("cannot canonicalize root directory: %w", err)
	}

	g := &Guard{
		root:             canon,
		excludes:         compileExcludes(excludePatterns),
		index:            map[string]gitignore.Matcher{},
		logger:           logger,
		respectGitignore: respectGitignore,
	}

	if respectGitignore {
		g.loadGitignoreIndex()
	}

	return g, nil
}

// Root returns the canonical root directory the guard protects.
func (g *Guard) Root() string {
	return g.root
}

// Validate normalizes candidate and checks it against the root and the
// exclusion policy. On success it returns the canonical absolute path.
// The result is only guaranteed at call time; re-validate before each
// filesystem operation.
func (g *Guard) Validate(candidate string) (string, error) {
	canon, err := g.Normalize(candidate)
	if err != nil {
		return "", err
	}

	if !g.contains(canon) {
		g.logger.Warn("Attempt to access path outside root directory", "path", candidate, "resolved", canon)
		return "", ErrOutOfBounds
	}

	if g.IsExcluded(canon) {
		g.logger.Debug("Path is excluded by patterns", "path", canon)
		return "", ErrExcluded
	}

	return canon, nil
}

// Normalize resolves candidate to its canonical absolute form without
// applying the containment or exclusion checks. Tools that report on a
// path rather than access it use this to show what it resolves to;
// everything else should call Validate.
func (g *Guard) Normalize(candidate string) (string, error) {
	raw := strings.TrimSpace(candidate)
	if raw == "" {
		return "", fmt.Errorf("empty path: %w", ErrOutOfBounds)
	}

	if rest, ok := strings.CutPrefix(raw, "file://"); ok {
		raw = rest
	} else if uriSchemeRe.MatchString(raw) {
		g.logger.Warn("Rejected unrecognized URI scheme", "path", candidate)
		return "", fmt.Errorf("unrecognized URI scheme: %w", ErrOutOfBounds)
	}

	if !filepath.IsAbs(raw) {
		raw = filepath.Join(g.root, raw)
	}

	// Canonicalize so that ..-traversal and symlink escapes resolve to
	// where they actually point before the containment check sees them.
	canon, err := canonicalize(raw)
	if err != nil {
		g.logger.Warn("Failed to canonicalize path", "path", candidate, "error", err)
		return "", fmt.Errorf("cannot canonicalize path: %w", ErrOutOfBounds)
	}

	return canon, nil
}

// contains reports whether path is the root or one of its descendants.
// Both sides must already be canonical.
func (g *Guard) contains(path string) bool {
	if path == g.root {
		return true
	}
	return strings.HasPrefix(path, g.root+string(os.PathSeparator))
}

// canonicalize resolves path to its absolute, symlink-free form. For
// paths whose leaf does not exist yet, the deepest existing ancestor is
// resolved and the missing remainder re-joined, matching what a
// subsequent create-or-stat would address.
func canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err == nil {
		return resolved, nil
	}
	if !os.IsNotExist(err) {
		return "", err
	}

	var missing []string
	p := abs
	for {
		parent := filepath.Dir(p)
		if parent == p {
			// Reached the filesystem root without finding anything.
			break
		}
		missing = append(missing, filepath.Base(p))
		p = parent

		resolved, err := filepath.EvalSymlinks(p)
		if err == nil {
			return joinReversed(resolved, missing), nil
		}
		if !os.IsNotExist(err) {
			return "", err
		}
	}

	return joinReversed(p, missing), nil
}

func joinReversed(base string, missing []string) string {
	out := base
	for i := len(missing) - 1; i >= 0; i-- {
		out = filepath.Join(out, missing[i])
	}
	return out
}

// ExpandPath expands a leading "~/" to the user's home directory.
func ExpandPath(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path // Return original path if home directory unavailable
	}

	return filepath.Join(home, path[2:])
}
