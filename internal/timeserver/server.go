package timeserver

import (
	"fmt"

	"localmcp/internal/config"
	"localmcp/internal/logging"
	"localmcp/internal/timezone"

	"github.com/mark3labs/mcp-go/server"
)

// Server represents an MCP time server instance using mcp-go.
type Server struct {
	config    *config.TimeServerConfig
	logger    *logging.AppLogger
	service   *timezone.Service
	mcpServer *server.MCPServer
}

// NewServer creates a time server with cfg.DefaultTimezone as the zone
// used when requests name none.
func NewServer(cfg *config.TimeServerConfig, logger *logging.AppLogger, opts ...timezone.Option) (*Server, error) {
	svcOpts := append([]timezone.Option{
		timezone.WithFormats(cfg.DateFormat, cfg.TimeFormat, cfg.DatetimeFormat),
	}, opts...)

	svc, err := timezone.NewService(cfg.DefaultTimezone, logger, svcOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize timezone service: %w", err)
	}

	s := &Server{
		config:  cfg,
		logger:  logger,
		service: svc,
	}

	s.mcpServer = server.NewMCPServer(
		cfg.ServerName,
		cfg.ServerVersion,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithPromptCapabilities(false),
	)

	s.registerTools()
	s.registerResources()
	s.registerPrompts()

	return s, nil
}

// Start serves the MCP protocol over stdio until the client disconnects.
func (s *Server) Start() error {
	s.logger.Info("Starting MCP time server",
		"name", s.config.ServerName,
		"defaultTimezone", s.service.DefaultZone(),
	)
	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("MCP server failed: %w", err)
	}
	return nil
}
