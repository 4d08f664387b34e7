package timeserver

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"localmcp/internal/config"
	"localmcp/internal/logging"
	"localmcp/internal/timezone"

	"github.com/mark3labs/mcp-go/mcp"
)

// testClock is a Wednesday in mid-January: Melbourne is in DST.
var testClock = time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)

const testZoneTab = `AU	-3749+14458	Australia/Melbourne	Victoria
AU	-3352+15113	Australia/Sydney	New South Wales
US	+404251-0740023	America/New_York	Eastern
GB	+513030-0000731	Europe/London
`

func newTestServer(t *testing.T) *Server {
	t.Helper()

	tabPath := filepath.Join(t.TempDir(), "zone1970.tab")
	if err := os.WriteFile(tabPath, []byte(testZoneTab), 0o644); err != nil {
		t.Fatalf("failed to write zone table: %v", err)
	}

	logger, _ := logging.NewTestLogger()
	cfg := config.DefaultTimeServerConfig()
	cfg.MaxTimezones = 3

	srv, err := NewServer(&cfg, logger,
		timezone.WithClock(func() time.Time { return testClock }),
		timezone.WithZoneTab(tabPath),
	)
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	return srv
}

func callToolRequest(name string, args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if res == nil || len(res.Content) == 0 {
		t.Fatal("tool result has no content")
	}
	tc, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("unexpected content type %T", res.Content[0])
	}
	return tc.Text
}

func decodeResult(t *testing.T, res *mcp.CallToolResult, out any) {
	t.Helper()
	if res.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(t, res))
	}
	if err := json.Unmarshal([]byte(resultText(t, res)), out); err != nil {
		t.Fatalf("failed to decode tool result: %v", err)
	}
}

func TestNewServer_InvalidDefaultZone(t *testing.T) {
	logger, _ := logging.NewTestLogger()
	cfg := config.DefaultTimeServerConfig()
	cfg.DefaultTimezone = "Not/AZone"

	if _, err := NewServer(&cfg, logger); err == nil {
		t.Error("expected error for invalid default timezone")
	}
}
