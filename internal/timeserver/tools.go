package timeserver

import (
	"context"
	"encoding/json"
	"fmt"

	"localmcp/internal/timezone"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("time.current",
		mcp.WithDescription("Get the current time in a specific timezone."),
		mcp.WithString("timezone",
			mcp.Description("IANA timezone name (defaults to "+s.service.DefaultZone()+")"),
		),
	), s.handleCurrent)

	s.mcpServer.AddTool(mcp.NewTool("time.convert",
		mcp.WithDescription("Convert a time from one timezone to another. Accepts bare clock times (HH:MM, HH:MM:SS) interpreted as today, or full datetimes."),
		mcp.WithString("time",
			mcp.Required(),
			mcp.Description("Time string to convert"),
		),
		mcp.WithString("source_timezone",
			mcp.Description("Source IANA timezone (defaults to "+s.service.DefaultZone()+")"),
		),
		mcp.WithString("target_timezone",
			mcp.Description("Target IANA timezone (defaults to "+s.service.DefaultZone()+")"),
		),
	), s.handleConvert)

	s.mcpServer.AddTool(mcp.NewTool("time.timezone_info",
		mcp.WithDescription("Get detailed information about a timezone, including DST state and the next DST transition."),
		mcp.WithString("timezone",
			mcp.Description("IANA timezone name (defaults to "+s.service.DefaultZone()+")"),
		),
	), s.handleTimezoneInfo)

	s.mcpServer.AddTool(mcp.NewTool("time.list_timezones",
		mcp.WithDescription("List available timezones, optionally filtered by ISO country code or region."),
		mcp.WithString("country_code",
			mcp.Description("ISO 3166 country code to filter by (e.g. AU)"),
		),
		mcp.WithString("region",
			mcp.Description("Region substring to filter by (e.g. Australia, Europe)"),
		),
	), s.handleListTimezones)

	s.mcpServer.AddTool(mcp.NewTool("time.melbourne",
		mcp.WithDescription("Get the current time in Melbourne, Australia."),
	), s.handleMelbourne)
}

func (s *Server) handleCurrent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tz := req.GetString("timezone", "")
	s.logger.Info("Getting current time", "timezone", tz)

	info, err := s.service.Current(tz)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(info)
}

func (s *Server) handleConvert(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	value, err := req.RequireString("time")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	source := req.GetString("source_timezone", "")
	target := req.GetString("target_timezone", "")

	s.logger.Info("Converting time", "time", value, "source", source, "target", target)

	conv, err := s.service.Convert(value, source, target)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(conv)
}

func (s *Server) handleTimezoneInfo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tz := req.GetString("timezone", "")
	s.logger.Info("Getting timezone info", "timezone", tz)

	info, err := s.service.Info(tz)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(info)
}

func (s *Server) handleListTimezones(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	country := req.GetString("country_code", "")
	region := req.GetString("region", "")

	s.logger.Info("Listing timezones", "country", country, "region", region)

	list, err := s.service.List(country, region)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(s.capList(list))
}

func (s *Server) handleMelbourne(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.logger.Info("Getting Melbourne time")

	info, err := s.service.Melbourne()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(info)
}

// capList truncates a listing to the configured maximum.
func (s *Server) capList(list timezone.ZoneList) timezone.ZoneList {
	if s.config.MaxTimezones > 0 && len(list.Timezones) > s.config.MaxTimezones {
		list.Timezones = list.Timezones[:s.config.MaxTimezones]
		list.Count = len(list.Timezones)
	}
	return list
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
