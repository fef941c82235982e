package scanner

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/blackwell-systems/repodash/internal/project"
)

// detectLanguages matches the indicator table against dir. The first match
// is primary, except that a tsconfig.json promotes the generic JavaScript
// match to TypeScript.
func detectLanguages(dir string) project.Languages {
	detected := []string{}
	var primary string

	for _, ind := range languageIndicators {
		if !exists(filepath.Join(dir, ind.key)) {
			continue
		}
		if !contains(detected, ind.label) {
			detected = append(detected, ind.label)
		}
		if primary == "" {
			primary = ind.label
		}
	}

	if exists(filepath.Join(dir, tsConfig)) {
		switch {
		case contains(detected, jsLanguage):
			primary = tsLanguage
		case !contains(detected, tsLanguage):
			detected = append(detected, tsLanguage)
			if primary == "" {
				primary = tsLanguage
			}
		}
	}

	return project.Languages{Primary: project.String(primary), Detected: detected}
}

func checkFiles(dir string) project.Files {
	return project.Files{
		Readme:        anyExists(dir, readmeFiles),
		Tests:         hasTests(dir),
		Env:           exists(filepath.Join(dir, ".env")),
		EnvExample:    exists(filepath.Join(dir, ".env.example")),
		Dockerfile:    exists(filepath.Join(dir, "Dockerfile")),
		DockerCompose: anyExists(dir, composeFiles),
		LinterConfig:  anyExists(dir, linterFiles),
		License:       anyExists(dir, licenseFiles),
		Lockfile:      detectPackageManager(dir) != "",
	}
}

// hasTests reports a conventional test directory, or any top-level entry
// whose name contains "test".
func hasTests(dir string) bool {
	if anyExists(dir, testDirs) {
		return true
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, e := range entries {
		if strings.Contains(e.Name(), "test") {
			return true
		}
	}
	return false
}

func checkFlags(dir string, table []association) project.Flags {
	flags := make(project.Flags, len(table))
	for _, a := range table {
		flags[a.key] = exists(filepath.Join(dir, filepath.FromSlash(a.label)))
	}
	return flags
}

// detectPackageManager returns the manager of the first lockfile present,
// or "".
func detectPackageManager(dir string) string {
	for _, lf := range lockfiles {
		if exists(filepath.Join(dir, lf.key)) {
			return lf.label
		}
	}
	return ""
}

func anyExists(dir string, names []string) bool {
	for _, n := range names {
		if exists(filepath.Join(dir, filepath.FromSlash(n))) {
			return true
		}
	}
	return false
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
