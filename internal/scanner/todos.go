package scanner

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
)

var (
	todoMarker  = []byte("TODO")
	fixmeMarker = []byte("FIXME")
)

// markerCounts is the result of walking a project's source files.
type markerCounts struct {
	todo  int
	fixme int
	lines int
}

// countMarkers walks dir and counts lines containing TODO and FIXME, plus
// total lines, across source files. Matching is a case-sensitive substring
// test. Unreadable files and directories are skipped.
func countMarkers(dir string) markerCounts {
	var c markerCounts
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() && path != dir {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if path != dir && skipWalkDirs[d.Name()] {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || !sourceExtensions[filepath.Ext(d.Name())] {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		c.add(data)
		return nil
	})
	return c
}

// add counts the lines of one file. A final newline does not start an
// extra line.
func (c *markerCounts) add(data []byte) {
	if len(data) == 0 {
		return
	}
	data = bytes.TrimSuffix(data, []byte("\n"))
	for _, line := range bytes.Split(data, []byte("\n")) {
		c.lines++
		if bytes.Contains(line, todoMarker) {
			c.todo++
		}
		if bytes.Contains(line, fixmeMarker) {
			c.fixme++
		}
	}
}
