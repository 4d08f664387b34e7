package fileserver

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
)

func getPromptRequest(name string, args map[string]string) mcp.GetPromptRequest {
	req := mcp.GetPromptRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func promptText(t *testing.T, res *mcp.GetPromptResult) string {
	t.Helper()
	if res == nil || len(res.Messages) == 0 {
		t.Fatal("prompt result has no messages")
	}
	tc, ok := res.Messages[0].Content.(mcp.TextContent)
	if !ok {
		t.Fatalf("unexpected content type %T", res.Messages[0].Content)
	}
	return tc.Text
}

func TestCodeReviewPrompt_WithFile(t *testing.T) {
	srv, root := newTestServer(t, nil)
	writeTestFile(t, filepath.Join(root, "main.go"), []byte("package main\n\nfunc main() {}\n"))

	res, err := srv.handleCodeReviewPrompt(context.Background(), getPromptRequest("file.code_review", map[string]string{
		"file_uri": "file://" + filepath.Join(root, "main.go"),
	}))
	if err != nil {
		t.Fatalf("prompt handler failed: %v", err)
	}

	text := promptText(t, res)
	if !strings.Contains(text, "package main") {
		t.Error("prompt must embed the file content")
	}
	if !strings.Contains(text, "Go code from file 'main.go'") {
		t.Errorf("prompt must identify the language and file, got %q", text)
	}
}

func TestCodeReviewPrompt_WithoutFile(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	res, err := srv.handleCodeReviewPrompt(context.Background(), getPromptRequest("file.code_review", nil))
	if err != nil {
		t.Fatalf("prompt handler failed: %v", err)
	}
	if !strings.Contains(promptText(t, res), "share a file path") {
		t.Error("expected the no-content fallback prompt")
	}
}

func TestCodeReviewPrompt_RejectedFileFallsBack(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	res, err := srv.handleCodeReviewPrompt(context.Background(), getPromptRequest("file.code_review", map[string]string{
		"file_uri": "file:///etc/passwd",
	}))
	if err != nil {
		t.Fatalf("prompt handler failed: %v", err)
	}
	text := promptText(t, res)
	if strings.Contains(text, "root:") {
		t.Error("out-of-root file content must not leak into the prompt")
	}
	if !strings.Contains(text, "share a file path") {
		t.Error("expected the no-content fallback prompt")
	}
}

func TestSummarizePrompt_WithFile(t *testing.T) {
	srv, root := newTestServer(t, nil)
	writeTestFile(t, filepath.Join(root, "notes.txt"), []byte("important notes"))

	res, err := srv.handleSummarizePrompt(context.Background(), getPromptRequest("file.summarize", map[string]string{
		"file_uri": "file://" + filepath.Join(root, "notes.txt"),
	}))
	if err != nil {
		t.Fatalf("prompt handler failed: %v", err)
	}

	text := promptText(t, res)
	if !strings.Contains(text, "important notes") {
		t.Error("prompt must embed the file content")
	}
	if !strings.Contains(text, "File name: notes.txt") {
		t.Errorf("prompt must name the file, got %q", text)
	}
}

func TestProjectStructurePrompt_WithDirectory(t *testing.T) {
	srv, root := newTestServer(t, nil)
	writeTestFile(t, filepath.Join(root, "src", "app.go"), []byte("package app"))
	writeTestFile(t, filepath.Join(root, "docs", "guide.txt"), []byte("guide"))

	res, err := srv.handleProjectStructurePrompt(context.Background(), getPromptRequest("file.project_structure", map[string]string{
		"directory_uri": "file://" + root,
	}))
	if err != nil {
		t.Fatalf("prompt handler failed: %v", err)
	}

	text := promptText(t, res)
	for _, want := range []string{"src/", "docs/", "app.go", "guide.txt"} {
		if !strings.Contains(text, want) {
			t.Errorf("prompt tree missing %q:\n%s", want, text)
		}
	}
}

func TestProjectStructurePrompt_WithoutDirectory(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	res, err := srv.handleProjectStructurePrompt(context.Background(), getPromptRequest("file.project_structure", nil))
	if err != nil {
		t.Fatalf("prompt handler failed: %v", err)
	}
	if !strings.Contains(promptText(t, res), "share a directory path") {
		t.Error("expected the no-content fallback prompt")
	}
}
