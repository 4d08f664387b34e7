// Package fsops implements the filesystem operations behind the file
// server's tools: bounded directory listing, bounded file reading,
// metadata collection, and pattern search. Every candidate entry is
// filtered through the path guard's exclusion policy before it appears
// in a result, and listing/search stop at their configured caps with an
// explicit truncation signal.
package fsops
