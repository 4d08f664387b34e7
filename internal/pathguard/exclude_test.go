package pathguard

import (
	"os"
	"path/filepath"
	"testing"

	"localmcp/internal/logging"
)

func TestIsExcluded_StaticPatterns(t *testing.T) {
	g, root := newTestGuard(t, []string{"*.exclude", "**/excluded/**"}, true)

	writeTestFile(t, filepath.Join(root, "test.exclude"), "x")
	writeTestFile(t, filepath.Join(root, "excluded", "secret.txt"), "x")
	writeTestFile(t, filepath.Join(root, "README.md"), "x")

	tests := []struct {
		name string
		path string
		want bool
	}{
		{name: "extension pattern", path: filepath.Join(root, "test.exclude"), want: true},
		{name: "double-star directory pattern", path: filepath.Join(root, "excluded", "secret.txt"), want: true},
		{name: "unmatched file", path: filepath.Join(root, "README.md"), want: false},
		{name: "root itself", path: root, want: false},
		{name: "outside root fails closed", path: "/etc/passwd", want: true},
		{name: "relative input fails closed", path: "README.md", want: true},
		{name: "nonexistent but matching", path: filepath.Join(root, "ghost.exclude"), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.IsExcluded(tt.path); got != tt.want {
				t.Errorf("IsExcluded(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestIsExcluded_GitignorePropagation(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, ".gitignore"), "*.log\ntemp/\n")
	writeTestFile(t, filepath.Join(root, "ignored.log"), "x")
	writeTestFile(t, filepath.Join(root, "temp", "cache.txt"), "x")
	writeTestFile(t, filepath.Join(root, "kept.txt"), "x")

	logger, _ := logging.NewTestLogger()
	g, err := New(root, nil, true, logger)
	if err != nil {
		t.Fatalf("failed to create guard: %v", err)
	}
	root = g.Root()

	if !g.IsExcluded(filepath.Join(root, "ignored.log")) {
		t.Error("*.log pattern should exclude ignored.log")
	}
	// A file nested under an ignored directory is excluded even though it
	// doesn't itself match any pattern.
	if !g.IsExcluded(filepath.Join(root, "temp", "cache.txt")) {
		t.Error("temp/ pattern should exclude nested cache.txt")
	}
	if g.IsExcluded(filepath.Join(root, "kept.txt")) {
		t.Error("kept.txt should not be excluded")
	}
}

func TestIsExcluded_NestedGitignoreScope(t *testing.T) {
	root := t.TempDir()
	// The pattern in sub/.gitignore applies only to sub and below.
	writeTestFile(t, filepath.Join(root, "sub", ".gitignore"), "*.tmp\n")
	writeTestFile(t, filepath.Join(root, "sub", "scratch.tmp"), "x")
	writeTestFile(t, filepath.Join(root, "sub", "deeper", "scratch.tmp"), "x")
	writeTestFile(t, filepath.Join(root, "toplevel.tmp"), "x")

	logger, _ := logging.NewTestLogger()
	g, err := New(root, nil, true, logger)
	if err != nil {
		t.Fatalf("failed to create guard: %v", err)
	}
	root = g.Root()

	if !g.IsExcluded(filepath.Join(root, "sub", "scratch.tmp")) {
		t.Error("sub/.gitignore should exclude sub/scratch.tmp")
	}
	if !g.IsExcluded(filepath.Join(root, "sub", "deeper", "scratch.tmp")) {
		t.Error("sub/.gitignore should apply to descendants of sub")
	}
	if g.IsExcluded(filepath.Join(root, "toplevel.tmp")) {
		t.Error("sub/.gitignore must not apply outside sub")
	}
}

func TestIsExcluded_AnyMatchWinsAcrossLevels(t *testing.T) {
	root := t.TempDir()
	// Layering is any-match-wins: a negation in the nearer .gitignore does
	// not un-ignore a match from the farther one.
	writeTestFile(t, filepath.Join(root, ".gitignore"), "*.log\n")
	writeTestFile(t, filepath.Join(root, "sub", ".gitignore"), "!important.log\n")
	writeTestFile(t, filepath.Join(root, "sub", "important.log"), "x")

	logger, _ := logging.NewTestLogger()
	g, err := New(root, nil, true, logger)
	if err != nil {
		t.Fatalf("failed to create guard: %v", err)
	}
	root = g.Root()

	if !g.IsExcluded(filepath.Join(root, "sub", "important.log")) {
		t.Error("root *.log match should win over nested negation")
	}
}

func TestIsExcluded_NegationWithinOneFile(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, ".gitignore"), "*.log\n!keep.log\n")
	writeTestFile(t, filepath.Join(root, "drop.log"), "x")
	writeTestFile(t, filepath.Join(root, "keep.log"), "x")

	logger, _ := logging.NewTestLogger()
	g, err := New(root, nil, true, logger)
	if err != nil {
		t.Fatalf("failed to create guard: %v", err)
	}
	root = g.Root()

	if !g.IsExcluded(filepath.Join(root, "drop.log")) {
		t.Error("drop.log should be excluded")
	}
	if g.IsExcluded(filepath.Join(root, "keep.log")) {
		t.Error("negation within a single .gitignore should un-ignore keep.log")
	}
}

func TestIsExcluded_RespectGitignoreDisabled(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, ".gitignore"), "*.log\n")
	writeTestFile(t, filepath.Join(root, "app.log"), "x")

	logger, _ := logging.NewTestLogger()
	g, err := New(root, []string{"*.secret"}, false, logger)
	if err != nil {
		t.Fatalf("failed to create guard: %v", err)
	}
	root = g.Root()

	if g.IsExcluded(filepath.Join(root, "app.log")) {
		t.Error(".gitignore must be ignored when disabled")
	}
	// Static patterns still apply.
	if !g.IsExcluded(filepath.Join(root, "db.secret")) {
		t.Error("static exclude patterns must still apply")
	}
}

func TestIsExcluded_CommentsAndBlankLines(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, ".gitignore"), "# build output\n\nbuild/\n")
	if err := os.MkdirAll(filepath.Join(root, "build"), 0o755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}

	logger, _ := logging.NewTestLogger()
	g, err := New(root, nil, true, logger)
	if err != nil {
		t.Fatalf("failed to create guard: %v", err)
	}
	root = g.Root()

	if !g.IsExcluded(filepath.Join(root, "build")) {
		t.Error("build/ directory should be excluded")
	}
	if g.IsExcluded(filepath.Join(root, "# build output")) {
		t.Error("comment lines must not become patterns")
	}
}

func TestValidate_ScenarioServedTree(t *testing.T) {
	// Mirrors the documented scenario: empty excludes, gitignore on but no
	// .gitignore files present.
	g, root := newTestGuard(t, nil, true)
	writeTestFile(t, filepath.Join(root, "notes.txt"), "hello")

	if _, err := g.Validate("/etc/passwd"); Kind(err) != KindOutOfBounds {
		t.Errorf("absolute outside path: got %v", err)
	}
	if _, err := g.Validate("../../etc/passwd"); Kind(err) != KindOutOfBounds {
		t.Errorf("traversal: got %v", err)
	}

	path, err := g.Validate("notes.txt")
	if err != nil {
		t.Fatalf("notes.txt should validate: %v", err)
	}
	if path != filepath.Join(root, "notes.txt") {
		t.Errorf("got %q, want %q", path, filepath.Join(root, "notes.txt"))
	}
}
