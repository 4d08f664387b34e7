package fileserver

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
)

func readResourceRequest(uri string) mcp.ReadResourceRequest {
	req := mcp.ReadResourceRequest{}
	req.Params.URI = uri
	return req
}

func TestHandleFileResource_File(t *testing.T) {
	srv, root := newTestServer(t, nil)
	writeTestFile(t, filepath.Join(root, "index.html"), []byte("<html></html>"))

	contents, err := srv.handleFileResource(context.Background(), readResourceRequest("file://"+filepath.Join(root, "index.html")))
	if err != nil {
		t.Fatalf("resource handler failed: %v", err)
	}
	if len(contents) != 1 {
		t.Fatalf("expected one content item, got %d", len(contents))
	}

	tc, ok := contents[0].(mcp.TextResourceContents)
	if !ok {
		t.Fatalf("unexpected content type %T", contents[0])
	}
	if tc.Text != "<html></html>" {
		t.Errorf("Text = %q", tc.Text)
	}
	if tc.MIMEType != "text/html" {
		t.Errorf("MIMEType = %q", tc.MIMEType)
	}
}

func TestHandleFileResource_Directory(t *testing.T) {
	srv, root := newTestServer(t, nil)
	writeTestFile(t, filepath.Join(root, "docs", "a.txt"), []byte("a"))
	writeTestFile(t, filepath.Join(root, "docs", "b.txt"), []byte("b"))

	contents, err := srv.handleFileResource(context.Background(), readResourceRequest("file://"+filepath.Join(root, "docs")))
	if err != nil {
		t.Fatalf("resource handler failed: %v", err)
	}

	tc := contents[0].(mcp.TextResourceContents)
	if tc.MIMEType != "application/json" {
		t.Errorf("MIMEType = %q, want application/json", tc.MIMEType)
	}

	var listing directoryResource
	if err := json.Unmarshal([]byte(tc.Text), &listing); err != nil {
		t.Fatalf("failed to decode directory listing: %v", err)
	}
	if listing.Type != "directory" || listing.Count != 2 {
		t.Errorf("unexpected listing: %+v", listing)
	}
}

func TestHandleFileResource_Refusals(t *testing.T) {
	srv, root := newTestServer(t, []string{"*.key"})
	writeTestFile(t, filepath.Join(root, "api.key"), []byte("k"))

	tests := []struct {
		name    string
		uri     string
		wantMsg string
	}{
		{"outside root", "file:///etc/passwd", "outside the permitted root"},
		{"excluded", "file://" + filepath.Join(root, "api.key"), "excluded by policy"},
		{"missing", "file://" + filepath.Join(root, "ghost.txt"), "does not exist"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := srv.handleFileResource(context.Background(), readResourceRequest(tt.uri))
			if err == nil {
				t.Fatalf("expected error for %q", tt.uri)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not mention %q", err, tt.wantMsg)
			}
		})
	}
}
