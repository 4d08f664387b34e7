package fileserver

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"localmcp/internal/fsops"
	"localmcp/internal/pathguard"

	"github.com/mark3labs/mcp-go/mcp"
)

// directoryResource is the JSON body served for directory URIs.
type directoryResource struct {
	Type  string        `json:"type"`
	Path  string        `json:"path"`
	Name  string        `json:"name"`
	Items []fsops.Entry `json:"items"`
	Count int           `json:"count"`
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(
		"file://.",
		"Served root directory",
		mcp.WithResourceDescription("Listing of the served root directory"),
		mcp.WithMIMEType("application/json"),
	), s.handleFileResource)

	s.mcpServer.AddResourceTemplate(mcp.NewResourceTemplate(
		"file://{path}",
		"Files within the served root",
		mcp.WithTemplateDescription("File content or directory listing for any path inside the served root"),
	), s.handleFileResource)
}

// handleFileResource serves file:// URIs. Directories render as a JSON
// listing, files as their text content. The same guard checks apply as
// for tools: URIs that resolve outside the root or into excluded paths
// are refused.
func (s *Server) handleFileResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := req.Params.URI
	s.logger.Info("Resource request", "uri", uri)

	path, err := s.guard.Validate(uri)
	if err != nil {
		if pathguard.Kind(err) == pathguard.KindExcluded {
			return nil, fmt.Errorf("resource is excluded by policy: %s", uri)
		}
		return nil, fmt.Errorf("resource is outside the permitted root: %s", uri)
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("resource does not exist: %s", uri)
		}
		return nil, fmt.Errorf("cannot access resource %s: %w", uri, err)
	}

	if info.IsDir() {
		return s.directoryContents(uri, path)
	}
	return s.fileContents(uri, path)
}

func (s *Server) directoryContents(uri, dir string) ([]mcp.ResourceContents, error) {
	items, _, err := s.ops.List(dir, false, 1)
	if err != nil {
		return nil, fmt.Errorf("cannot list resource directory %s: %w", uri, err)
	}

	body, err := json.MarshalIndent(directoryResource{
		Type:  "directory",
		Path:  s.relPath(dir),
		Name:  filepath.Base(dir),
		Items: items,
		Count: len(items),
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("cannot encode directory listing: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(body),
		},
	}, nil
}

func (s *Server) fileContents(uri, path string) ([]mcp.ResourceContents, error) {
	res, err := s.ops.Read(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read resource %s: %w", uri, err)
	}

	mimeType := "text/plain"
	if !res.TooLarge && !res.Binary {
		if meta, merr := s.ops.Metadata(path); merr == nil {
			mimeType = meta.MIMEType
		}
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: mimeType,
			Text:     res.Content,
		},
	}, nil
}
