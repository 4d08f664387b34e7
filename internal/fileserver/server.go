package fileserver

import (
	"fmt"

	"localmcp/internal/config"
	"localmcp/internal/fsops"
	"localmcp/internal/logging"
	"localmcp/internal/pathguard"

	"github.com/mark3labs/mcp-go/server"
)

// Server represents an MCP file server instance using mcp-go.
type Server struct {
	config    *config.FileServerConfig
	logger    *logging.AppLogger
	guard     *pathguard.Guard
	ops       *fsops.Ops
	mcpServer *server.MCPServer
}

// NewServer creates a file server over cfg.RootDir. The root is resolved
// and validated once at construction; a root that does not exist or is
// not a directory is an error.
func NewServer(cfg *config.FileServerConfig, logger *logging.AppLogger) (*Server, error) {
	guard, err := pathguard.New(cfg.RootDir, cfg.ExcludePatterns, cfg.GitignoreEnabled(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize path guard: %w", err)
	}

	ops := fsops.New(guard, fsops.Options{
		MaxFileSize:      cfg.MaxFileSize,
		MaxListResults:   cfg.MaxFilesPerDirectory,
		MaxSearchResults: cfg.MaxSearchResults,
		DefaultMIMEType:  cfg.DefaultMIMEType,
	}, logger)

	s := &Server{
		config: cfg,
		logger: logger,
		guard:  guard,
		ops:    ops,
	}

	s.mcpServer = server.NewMCPServer(
		cfg.ServerName,
		cfg.ServerVersion,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithPromptCapabilities(false),
		server.WithInstructions(cfg.ServerDescription),
	)

	s.registerTools()
	s.registerResources()
	s.registerPrompts()

	return s, nil
}

// Start serves the MCP protocol over stdio until the client disconnects.
func (s *Server) Start() error {
	s.logger.Info("Starting MCP file server",
		"name", s.config.ServerName,
		"root", s.guard.Root(),
	)
	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("MCP server failed: %w", err)
	}
	return nil
}
