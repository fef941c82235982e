// Package scanner collects raw, judgment-free facts about local projects:
// git state, language indicators, presence of well-known files, manifest
// dependencies, and TODO/FIXME counts.
package scanner

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/blackwell-systems/repodash/internal/project"
)

// ErrRootNotFound is returned when the scan root is missing or is not a
// directory. The wrapped message reads "<root> not found".
var ErrRootNotFound = errors.New("not found")

// ProjectDir is a candidate project found directly under the scan root.
type ProjectDir struct {
	Name     string
	Path     string
	PathHash string
}

// ListProjectDirs returns the immediate subdirectories of root that look
// like projects, ordered by name. Hidden directories, excluded names, and
// directories with neither a .git entry nor a language indicator are
// skipped.
func ListProjectDirs(root string, exclude []string) ([]ProjectDir, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%s %w", root, ErrRootNotFound)
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		abs = root
	}

	// os.ReadDir returns entries sorted by filename.
	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", abs, err)
	}

	skip := excludeSet(exclude)
	var dirs []ProjectDir
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") || skip[name] {
			continue
		}

		dir := filepath.Join(abs, name)
		if !exists(filepath.Join(dir, ".git")) && !hasLanguageIndicator(dir) {
			continue
		}

		dirs = append(dirs, ProjectDir{
			Name:     name,
			Path:     dir,
			PathHash: project.PathHash(dir),
		})
	}
	return dirs, nil
}

// ParseExclude splits a comma-separated exclusion list, dropping blanks.
func ParseExclude(csv string) []string {
	var out []string
	for _, part := range strings.Split(csv, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func excludeSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			set[n] = true
		}
	}
	return set
}

func hasLanguageIndicator(dir string) bool {
	for _, ind := range languageIndicators {
		if exists(filepath.Join(dir, ind.key)) {
			return true
		}
	}
	return false
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
