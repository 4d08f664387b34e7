package timeserver

import (
	"context"
	"fmt"
	"strings"

	"localmcp/internal/timezone"

	"github.com/mark3labs/mcp-go/mcp"
)

const toolCatalog = `## Available Tools

- **time.current** - Get current time in any timezone
- **time.convert** - Convert times between timezones
- **time.timezone_info** - Get detailed timezone information
- **time.list_timezones** - List available timezones by country or region
- **time.melbourne** - Get current time in Melbourne`

func (s *Server) registerPrompts() {
	s.mcpServer.AddPrompt(mcp.NewPrompt("time.meeting_scheduler",
		mcp.WithPromptDescription("Coordinate meeting times across timezones, anchored on Melbourne"),
	), s.handleMeetingSchedulerPrompt)

	s.mcpServer.AddPrompt(mcp.NewPrompt("time.travel_planner",
		mcp.WithPromptDescription("Plan travel across timezones to or from Melbourne"),
	), s.handleTravelPlannerPrompt)

	s.mcpServer.AddPrompt(mcp.NewPrompt("time.team_coordination",
		mcp.WithPromptDescription("Coordinate global teams with members in Melbourne"),
	), s.handleTeamCoordinationPrompt)
}

// melbourneContext renders the live Melbourne time block shared by all
// prompts.
func (s *Server) melbourneContext() (string, error) {
	mel, err := s.service.Melbourne()
	if err != nil {
		return "", err
	}

	dst := "not "
	if mel.IsDST {
		dst = ""
	}
	return fmt.Sprintf(`## Current Time Information

- Current time in Melbourne, Australia: %s (%s)
- Melbourne is currently %sin Daylight Saving Time
- Melbourne timezone: %s (%s)
- UTC offset: %s (%g hours)`,
		mel.Datetime, mel.DayOfWeek, dst, mel.Timezone, mel.Abbreviation,
		mel.UTCOffset, mel.UTCOffsetHours), nil
}

func (s *Server) handleMeetingSchedulerPrompt(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	s.logger.Info("Using meeting scheduler prompt")

	melbourne, err := s.melbourneContext()
	if err != nil {
		return nil, fmt.Errorf("cannot build prompt context: %w", err)
	}

	content := strings.Join([]string{
		"# Meeting Scheduler Assistant",
		"",
		"You are a helpful meeting scheduler assistant that specializes in coordinating meetings",
		"across different timezones, with a focus on Melbourne, Australia.",
		"",
		melbourne,
		"",
		toolCatalog,
		"",
		`## Guidelines

1. When suggesting meeting times, always convert to all relevant timezones for participants
2. Prioritize normal business hours (9 AM - 5 PM) in each participant's local timezone
3. Be mindful of day boundaries (meetings that fall on different dates for participants)
4. Highlight if any location is currently in DST and if DST changes will occur soon
5. For Melbourne-based teams, provide context about local time and working hours`,
	}, "\n")

	return mcp.NewGetPromptResult("Meeting Scheduler Assistant", []mcp.PromptMessage{
		mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(content)),
	}), nil
}

func (s *Server) handleTravelPlannerPrompt(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	s.logger.Info("Using travel planner prompt")

	melbourne, err := s.melbourneContext()
	if err != nil {
		return nil, fmt.Errorf("cannot build prompt context: %w", err)
	}

	dstNote := ""
	if s.config.DSTWarningsEnabled() {
		if info, ierr := s.service.Info(timezone.MelbourneZone); ierr == nil && info.NextDSTTransition != "" {
			dstNote = fmt.Sprintf("\n**Note:** Melbourne's next DST transition (%s) will be on %s\n",
				info.NextDSTTransitionType, info.NextDSTTransition)
		}
	}

	content := strings.Join([]string{
		"# Travel Time Planner",
		"",
		"You are a helpful travel time assistant that specializes in planning trips across different",
		"timezones, with a focus on travel to or from Melbourne, Australia.",
		"",
		melbourne,
		dstNote,
		toolCatalog,
		"",
		`## Guidelines

1. When planning travel, account for timezone changes in flight duration calculations
2. Be mindful of the International Date Line for trans-Pacific travel
3. Consider the impact of jet lag when planning arrival times and first-day activities
4. Highlight if DST changes will occur during the planned travel period
5. Provide local time context for key events (check-in times, flight departures/arrivals)
6. For Melbourne travelers, provide local context about destination time differences`,
	}, "\n")

	return mcp.NewGetPromptResult("Travel Time Planner", []mcp.PromptMessage{
		mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(content)),
	}), nil
}

func (s *Server) handleTeamCoordinationPrompt(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	s.logger.Info("Using team coordination prompt")

	melbourne, err := s.melbourneContext()
	if err != nil {
		return nil, fmt.Errorf("cannot build prompt context: %w", err)
	}

	content := strings.Join([]string{
		"# Global Team Coordination Assistant",
		"",
		"You are a helpful team coordination assistant that specializes in helping global teams",
		"work effectively across different timezones, with a focus on teams with members in",
		"Melbourne, Australia.",
		"",
		melbourne,
		"",
		toolCatalog,
		"",
		`## Guidelines

1. When suggesting collaboration windows, identify overlapping working hours
2. Create timezone-aware schedules that respect local working hours for all team members
3. Recommend asynchronous communication strategies for teams with minimal overlap
4. Suggest fair rotation of meeting times to share the burden of off-hours meetings
5. Be mindful of weekends and public holidays in different regions
6. For Melbourne-based team members, provide context about local working patterns`,
	}, "\n")

	return mcp.NewGetPromptResult("Global Team Coordination Assistant", []mcp.PromptMessage{
		mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(content)),
	}), nil
}
