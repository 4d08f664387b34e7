// Package pathguard is the single authority for deciding whether a
// caller-supplied path may be read or listed by the file server.
//
// A Guard is constructed once at startup from the configured root
// directory, the static exclude patterns, and the .gitignore files
// discovered under the root. After construction it is immutable and safe
// for concurrent use from any number of request handlers.
//
// Validation accepts three candidate forms: a file:// URI, a bare
// absolute path, or a path relative to the root. The candidate is
// canonicalized (".", "..", and symlinks resolved) before the containment
// check so that traversal sequences and symlink escapes are both caught.
// Paths that survive containment are then tested against the exclusion
// policy; both failure modes carry distinct error values so callers can
// report "outside permitted root" and "excluded by policy" separately.
//
// Exclusion layering is deliberately simpler than full gitignore
// precedence: the static exclude patterns and every
// .gitignore from the path's parent chain up to the root are all
// consulted, and a match at any level excludes the path. A negation in a
// nearer .gitignore does not un-ignore a match from a farther one.
package pathguard
