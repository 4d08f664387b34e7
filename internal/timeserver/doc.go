// Package timeserver implements a Model Context Protocol (MCP) server for
// timezone-aware time operations, built on the mcp-go library.
//
// It registers tools for current time, conversion between zones, zone
// metadata, and zone listings, a time:// resource scheme, and prompts
// that carry live Melbourne time context. The underlying operations live
// in the timezone package; this package is the protocol surface.
package timeserver
