package deriver

import (
	"sort"
	"strings"

	"github.com/blackwell-systems/repodash/internal/project"
)

// nameKeywords maps a tag to directory-name substrings that imply it. Only
// generations with NameKeywordTags consult it.
var nameKeywords = []struct {
	tag      string
	keywords []string
}{
	{"api", []string{"api", "server", "backend"}},
	{"web", []string{"web", "app", "ui", "frontend", "dashboard"}},
	{"cli", []string{"cli", "tool", "util"}},
	{"library", []string{"lib", "sdk", "package"}},
}

// Tags returns the sorted, deduplicated, lowercase tag set for a project.
func (r Rules) Tags(f *project.Facts) []string {
	set := make(map[string]struct{})
	add := func(tag string) {
		if tag != "" {
			set[tag] = struct{}{}
		}
	}

	for _, lang := range f.Languages.Detected {
		add(strings.ReplaceAll(strings.ToLower(lang), "/", "-"))
	}
	if f.Files.Dockerfile || f.Files.DockerCompose {
		add("docker")
	}
	if f.CICD.Any() {
		add("ci-cd")
	}
	if f.Deployment.Any() {
		add("deployed")
	}
	if f.Files.Tests {
		add("tested")
	}
	if f.Framework != nil {
		add(strings.ToLower(*f.Framework))
	}
	for _, svc := range f.Services {
		add(strings.ToLower(svc))
	}

	if r.NameKeywordTags {
		name := strings.ToLower(f.Name)
		for _, nk := range nameKeywords {
			for _, kw := range nk.keywords {
				if strings.Contains(name, kw) {
					add(nk.tag)
					break
				}
			}
		}
	}

	tags := make([]string, 0, len(set))
	for tag := range set {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
