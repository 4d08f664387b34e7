package fileserver

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"localmcp/internal/config"
	"localmcp/internal/logging"

	"github.com/mark3labs/mcp-go/mcp"
)

// newTestServer builds a server over a temp root with a few fixture
// files and the given exclude patterns.
func newTestServer(t *testing.T, excludes []string) (*Server, string) {
	t.Helper()

	root := t.TempDir()
	logger, _ := logging.NewTestLogger()

	cfg := config.DefaultFileServerConfig()
	cfg.RootDir = root
	cfg.ExcludePatterns = excludes

	srv, err := NewServer(&cfg, logger)
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	return srv, root
}

func writeTestFile(t *testing.T, path string, content []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create parent dirs for %s: %v", path, err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func callToolRequest(name string, args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

// resultText extracts the text payload from a tool result.
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

// decodeResult unmarshals a JSON tool result into out.
func decodeResult(t *testing.T, res *mcp.CallToolResult, out any) {
	t.Helper()
	if res.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(t, res))
	}
	if err := json.Unmarshal([]byte(resultText(t, res)), out); err != nil {
		t.Fatalf("failed to decode tool result: %v", err)
	}
}

func TestNewServer_InvalidRoot(t *testing.T) {
	logger, _ := logging.NewTestLogger()

	cfg := config.DefaultFileServerConfig()
	cfg.RootDir = filepath.Join(t.TempDir(), "does-not-exist")

	if _, err := NewServer(&cfg, logger); err == nil {
		t.Error("expected error for nonexistent root")
	}
}
