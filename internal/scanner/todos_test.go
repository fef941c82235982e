package scanner

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestCountMarkers(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "main.go"), "package main\n// TODO: one\n// FIXME: two\n// TODO FIXME both\n")
	writeFile(t, filepath.Join(dir, "src", "app.ts"), "const TODOS = []\nlet x = 1")
	// Lowercase markers are not counted.
	writeFile(t, filepath.Join(dir, "lib.py"), "# todo: lower\n")
	// Non-source files are ignored.
	writeFile(t, filepath.Join(dir, "NOTES.md"), "TODO\nTODO\n")
	// Skipped directories are ignored at any depth.
	writeFile(t, filepath.Join(dir, "node_modules", "dep", "index.js"), "// TODO\n")
	writeFile(t, filepath.Join(dir, "pkg", "target", "gen.rs"), "// TODO\n")

	c := countMarkers(dir)
	if c.todo != 3 {
		t.Errorf("expected 3 TODO lines, got %d", c.todo)
	}
	if c.fixme != 2 {
		t.Errorf("expected 2 FIXME lines, got %d", c.fixme)
	}
	// main.go 4 + app.ts 2 + lib.py 1
	if c.lines != 7 {
		t.Errorf("expected 7 lines, got %d", c.lines)
	}
}

func TestMarkerCounts_LineCounting(t *testing.T) {
	tests := []struct {
		content string
		lines   int
	}{
		{"", 0},
		{"\n", 1},
		{"a", 1},
		{"a\n", 1},
		{"a\nb", 2},
		{"a\n\n", 2},
	}

	for _, tc := range tests {
		var c markerCounts
		c.add([]byte(tc.content))
		if c.lines != tc.lines {
			t.Errorf("add(%q) lines = %d, want %d", tc.content, c.lines, tc.lines)
		}
	}
}

func TestCountMarkers_UnreadableFileSkipped(t *testing.T) {
	if runtime.GOOS == "windows" || os.Getuid() == 0 {
		t.Skip("permission bits not enforced")
	}
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "ok.go"), "// TODO\n")
	locked := filepath.Join(dir, "locked.go")
	writeFile(t, locked, "// TODO\n")
	if err := os.Chmod(locked, 0o000); err != nil {
		t.Fatal(err)
	}

	c := countMarkers(dir)
	if c.todo != 1 {
		t.Errorf("expected unreadable file to be skipped, got %d TODOs", c.todo)
	}
}
