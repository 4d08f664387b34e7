package fsops

import (
	"os"
	"path/filepath"
	"testing"

	"localmcp/internal/logging"
	"localmcp/internal/pathguard"
)

// newTestOps builds an Ops over a fresh temp root.
func newTestOps(t *testing.T, patterns []string, opts Options) (*Ops, string) {
	t.Helper()
	root := t.TempDir()

	logger, _ := logging.NewTestLogger()
	guard, err := pathguard.New(root, patterns, true, logger)
	if err != nil {
		t.Fatalf("failed to create guard: %v", err)
	}
	return New(guard, opts, logger), guard.Root()
}

func writeTestFile(t *testing.T, path string, content []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create parent dirs: %v", err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
}

func entryNames(entries []Entry) []string {
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	return names
}

func containsName(entries []Entry, name string) bool {
	for _, e := range entries {
		if e.Name == name {
			return true
		}
	}
	return false
}
