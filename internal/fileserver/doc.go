// Package fileserver implements a Model Context Protocol (MCP) server that
// exposes a guarded directory tree to AI assistants using the mcp-go library.
//
// The server registers tools for listing, reading, searching and inspecting
// files, a file:// resource template, and file-oriented prompts. Every path
// that arrives over the protocol is validated by a pathguard.Guard before any
// filesystem access: paths that resolve outside the configured root or that
// match an exclusion pattern are refused with a distinct error message so
// callers can tell policy refusals from missing files.
//
// Communication happens over stdin/stdout using JSON-RPC 2.0 as specified by
// the MCP standard; all logging goes to stderr or a log file.
package fileserver
