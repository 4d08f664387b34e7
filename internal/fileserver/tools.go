package fileserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"localmcp/internal/fsops"
	"localmcp/internal/pathguard"

	"github.com/mark3labs/mcp-go/mcp"
)

// listDirectoryResult is the payload returned by file.list_directory.
type listDirectoryResult struct {
	Path         string        `json:"path"`
	AbsolutePath string        `json:"absolutePath"`
	Metadata     fsops.Entry   `json:"metadata"`
	Items        []fsops.Entry `json:"items"`
	Count        int           `json:"count"`
	Truncated    bool          `json:"truncated"`
}

type readContentResult struct {
	Path         string      `json:"path"`
	AbsolutePath string      `json:"absolutePath"`
	Metadata     fsops.Entry `json:"metadata"`
	Content      string      `json:"content"`
	Encoding     string      `json:"encoding,omitempty"`
	TooLarge     bool        `json:"tooLarge,omitempty"`
	Binary       bool        `json:"binary,omitempty"`
}

type searchResult struct {
	Pattern      string        `json:"pattern"`
	Path         string        `json:"path"`
	AbsolutePath string        `json:"absolutePath"`
	Results      []fsops.Entry `json:"results"`
	Count        int           `json:"count"`
	Truncated    bool          `json:"truncated"`
}

type metadataResult struct {
	Path         string      `json:"path"`
	AbsolutePath string      `json:"absolutePath"`
	Metadata     fsops.Entry `json:"metadata"`
}

type pathSecurity struct {
	IsWithinRoot bool `json:"isWithinRoot"`
	IsAccessible bool `json:"isAccessible"`
	IsExcluded   bool `json:"isExcluded"`
}

type analyzePathResult struct {
	OriginalPath   string       `json:"originalPath"`
	NormalizedPath string       `json:"normalizedPath,omitempty"`
	RelativePath   string       `json:"relativePath,omitempty"`
	IsValid        bool         `json:"isValid"`
	Exists         bool         `json:"exists"`
	Type           string       `json:"type,omitempty"`
	IsExcluded     bool         `json:"isExcluded"`
	Components     []string     `json:"components"`
	Security       pathSecurity `json:"security"`
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("file.list_directory",
		mcp.WithDescription("List files and directories in the specified directory within the served root."),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to directory (relative to root, absolute, or a file:// URI)"),
		),
		mcp.WithBoolean("recursive",
			mcp.Description("Whether to list subdirectories recursively"),
			mcp.DefaultBool(false),
		),
		mcp.WithNumber("max_depth",
			mcp.Description("Maximum recursion depth when recursive is true"),
			mcp.DefaultNumber(3),
		),
	), s.handleListDirectory)

	s.mcpServer.AddTool(mcp.NewTool("file.read_content",
		mcp.WithDescription("Read the content of a file safely. Files over the size limit and binary files return a placeholder instead of content."),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to file (relative to root, absolute, or a file:// URI)"),
		),
	), s.handleReadContent)

	s.mcpServer.AddTool(mcp.NewTool("file.search",
		mcp.WithDescription("Search for files matching a pattern. Patterns are globs; prefix with r/ for a regular expression matched against file names."),
		mcp.WithString("pattern",
			mcp.Required(),
			mcp.Description("Glob pattern, or regex when prefixed with r/"),
		),
		mcp.WithString("path",
			mcp.Description("Directory to search in, relative to root"),
			mcp.DefaultString("."),
		),
		mcp.WithBoolean("recursive",
			mcp.Description("Whether to search subdirectories recursively"),
			mcp.DefaultBool(true),
		),
		mcp.WithBoolean("include_content",
			mcp.Description("Whether to include file content in results"),
			mcp.DefaultBool(false),
		),
	), s.handleSearch)

	s.mcpServer.AddTool(mcp.NewTool("file.get_metadata",
		mcp.WithDescription("Get metadata for a file or directory: size, timestamps, MIME type, and checksum for small files."),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to file or directory (relative to root, absolute, or a file:// URI)"),
		),
	), s.handleGetMetadata)

	s.mcpServer.AddTool(mcp.NewTool("file.analyze_path",
		mcp.WithDescription("Analyze a path for safety and validity without accessing its content."),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to analyze (relative to root, absolute, or a file:// URI)"),
		),
	), s.handleAnalyzePath)
}

func (s *Server) handleListDirectory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	recursive := req.GetBool("recursive", false)
	maxDepth := req.GetInt("max_depth", 3)

	s.logger.Info("Listing directory", "path", raw, "recursive", recursive)

	dir, errRes := s.resolvePath(raw)
	if errRes != nil {
		return errRes, nil
	}

	items, truncated, err := s.ops.List(dir, recursive, maxDepth)
	if err != nil {
		return s.opsError("directory", raw, err), nil
	}

	meta, err := s.ops.Metadata(dir)
	if err != nil {
		return s.opsError("directory", raw, err), nil
	}

	return jsonResult(listDirectoryResult{
		Path:         s.relPath(dir),
		AbsolutePath: dir,
		Metadata:     meta,
		Items:        items,
		Count:        len(items),
		Truncated:    truncated,
	})
}

func (s *Server) handleReadContent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.logger.Info("Reading file", "path", raw)

	path, errRes := s.resolvePath(raw)
	if errRes != nil {
		return errRes, nil
	}

	res, err := s.ops.Read(path)
	if err != nil {
		return s.opsError("file", raw, err), nil
	}

	meta, err := s.ops.Metadata(path)
	if err != nil {
		return s.opsError("file", raw, err), nil
	}

	return jsonResult(readContentResult{
		Path:         s.relPath(path),
		AbsolutePath: path,
		Metadata:     meta,
		Content:      res.Content,
		Encoding:     res.Encoding,
		TooLarge:     res.TooLarge,
		Binary:       res.Binary,
	})
}

func (s *Server) handleSearch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pattern, err := req.RequireString("pattern")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	raw := req.GetString("path", ".")
	recursive := req.GetBool("recursive", true)
	includeContent := req.GetBool("include_content", false)

	s.logger.Info("Searching for files", "pattern", pattern, "path", raw)

	dir, errRes := s.resolvePath(raw)
	if errRes != nil {
		return errRes, nil
	}

	results, truncated, err := s.ops.Search(pattern, dir, recursive, includeContent)
	if err != nil {
		return s.opsError("directory", raw, err), nil
	}

	return jsonResult(searchResult{
		Pattern:      pattern,
		Path:         s.relPath(dir),
		AbsolutePath: dir,
		Results:      results,
		Count:        len(results),
		Truncated:    truncated,
	})
}

func (s *Server) handleGetMetadata(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.logger.Info("Getting metadata", "path", raw)

	path, errRes := s.resolvePath(raw)
	if errRes != nil {
		return errRes, nil
	}

	meta, err := s.ops.Metadata(path)
	if err != nil {
		return s.opsError("path", raw, err), nil
	}

	return jsonResult(metadataResult{
		Path:         s.relPath(path),
		AbsolutePath: path,
		Metadata:     meta,
	})
}

func (s *Server) handleAnalyzePath(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.logger.Info("Analyzing path", "path", raw)

	result := analyzePathResult{OriginalPath: raw, Components: []string{}}

	norm, err := s.guard.Normalize(raw)
	if err != nil {
		// Malformed input: nothing more to report, everything stays false.
		return jsonResult(result)
	}
	result.NormalizedPath = norm

	_, verr := s.guard.Validate(raw)
	withinRoot := pathguard.Kind(verr) != pathguard.KindOutOfBounds
	excluded := pathguard.Kind(verr) == pathguard.KindExcluded
	result.IsValid = verr == nil
	result.IsExcluded = excluded

	if withinRoot {
		rel := s.relPath(norm)
		result.RelativePath = rel
		if rel != "." {
			result.Components = strings.Split(rel, "/")
		}
	}

	if info, serr := os.Lstat(norm); serr == nil {
		result.Exists = true
		switch {
		case info.IsDir():
			result.Type = "directory"
		case info.Mode()&os.ModeSymlink != 0:
			result.Type = "symlink"
		case info.Mode().IsRegular():
			result.Type = "file"
		default:
			result.Type = "other"
		}
	}

	result.Security = pathSecurity{
		IsWithinRoot: withinRoot,
		IsAccessible: result.IsValid && result.Exists,
		IsExcluded:   excluded,
	}

	return jsonResult(result)
}

// resolvePath validates raw through the guard and maps rejections to
// distinct tool errors so callers can tell a policy refusal from a
// missing file.
func (s *Server) resolvePath(raw string) (string, *mcp.CallToolResult) {
	path, err := s.guard.Validate(raw)
	if err == nil {
		return path, nil
	}

	switch pathguard.Kind(err) {
	case pathguard.KindExcluded:
		return "", mcp.NewToolResultError(fmt.Sprintf("Path is excluded by policy: %s", raw))
	default:
		return "", mcp.NewToolResultError(fmt.Sprintf("Path is outside the permitted root: %s", raw))
	}
}

// opsError maps fsops failures to tool errors, naming the kind of entry
// the tool expected.
func (s *Server) opsError(noun, raw string, err error) *mcp.CallToolResult {
	switch {
	case errors.Is(err, fsops.ErrNotFound):
		return mcp.NewToolResultError(fmt.Sprintf("Path does not exist: %s", raw))
	case errors.Is(err, fsops.ErrWrongType):
		return mcp.NewToolResultError(fmt.Sprintf("Path is not a %s: %s", noun, raw))
	default:
		s.logger.Error("Filesystem operation failed", "path", raw, "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("Error accessing %s: %v", raw, err))
	}
}

func (s *Server) relPath(path string) string {
	rel, err := filepath.Rel(s.guard.Root(), path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
