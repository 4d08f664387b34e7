package timeserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"localmcp/internal/timezone"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(
		"time://current",
		"Current time",
		mcp.WithResourceDescription("Current time in the default timezone"),
		mcp.WithMIMEType("application/json"),
	), s.handleTimeResource)

	s.mcpServer.AddResource(mcp.NewResource(
		"time://melbourne",
		"Melbourne time",
		mcp.WithResourceDescription("Current time in Melbourne, Australia"),
		mcp.WithMIMEType("application/json"),
	), s.handleTimeResource)

	s.mcpServer.AddResourceTemplate(mcp.NewResourceTemplate(
		"time://{+path}",
		"Time information",
		mcp.WithTemplateDescription("Time resources: time://current?timezone=..., time://timezone/<zone>, time://timezones?country=..., time://convert?time=...&from=...&to=..."),
		mcp.WithTemplateMIMEType("application/json"),
	), s.handleTimeResource)
}

// handleTimeResource dispatches time:// URIs. The first path segment
// selects the resource; query parameters carry the arguments.
func (s *Server) handleTimeResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := req.Params.URI
	s.logger.Info("Time resource request", "uri", uri)

	u, err := url.Parse(uri)
	if err != nil || u.Scheme != "time" {
		return nil, fmt.Errorf("invalid time resource URI: %s", uri)
	}
	query := u.Query()

	var payload any
	switch u.Host {
	case "", "current":
		payload, err = s.service.Current(query.Get("timezone"))

	case "melbourne":
		payload, err = s.service.Melbourne()

	case "timezone":
		zone := strings.TrimPrefix(u.Path, "/")
		if zone == "" {
			return nil, fmt.Errorf("missing timezone in resource URI: %s", uri)
		}
		payload, err = s.service.Info(zone)

	case "timezones":
		var list timezone.ZoneList
		list, err = s.service.List(query.Get("country"), query.Get("region"))
		if err == nil {
			payload = s.capList(list)
		}

	case "convert":
		value := query.Get("time")
		if value == "" {
			return nil, fmt.Errorf("missing 'time' parameter in resource URI: %s", uri)
		}
		payload, err = s.service.Convert(value, query.Get("from"), query.Get("to"))

	default:
		return nil, fmt.Errorf("unknown time resource: %s", uri)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot serve %s: %w", uri, err)
	}

	body, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("cannot encode time resource: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(body),
		},
	}, nil
}
