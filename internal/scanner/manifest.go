package scanner

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/mod/modfile"
	"gopkg.in/yaml.v3"
)

// manifestFacts is what the manifest readers contribute to a project.
type manifestFacts struct {
	framework   string
	services    []string
	description string
	liveURL     string
	scripts     []string
}

// manifestReader reads the dependency manifests of one project directory.
// A missing file is silent; a malformed one is logged and contributes
// nothing.
type manifestReader struct {
	dir string
	log *slog.Logger
}

func (s *Scanner) inferManifests(dir string) manifestFacts {
	m := manifestReader{dir: dir, log: s.log}

	pkg := m.packageJSON()
	cargo := m.cargoToml()
	py := m.python()
	goMods := m.goMod()

	var facts manifestFacts

	// Framework: first source with a match wins.
	for _, fw := range []string{
		matchFirst(pkg.deps, jsFrameworks, false),
		matchFirst(cargo.deps, rustFrameworks, false),
		matchFirst(py.deps, pythonFrameworks, false),
		matchFirst(goMods, goFrameworks, true),
	} {
		if fw != "" {
			facts.framework = fw
			break
		}
	}

	services := make(map[string]struct{})
	for _, set := range [][]string{
		matchAll(pkg.deps, jsServices, true),
		matchAll(py.deps, pythonServices, false),
		matchAll(goMods, goServices, true),
		matchAll(m.composeImages(), composeImages, false),
		m.envServices(),
	} {
		for _, svc := range set {
			services[svc] = struct{}{}
		}
	}
	facts.services = make([]string, 0, len(services))
	for svc := range services {
		facts.services = append(facts.services, svc)
	}
	sort.Strings(facts.services)

	facts.description = firstNonEmpty(pkg.description, py.description, cargo.description)
	facts.liveURL = pkg.homepage
	facts.scripts = pkg.scripts
	if facts.scripts == nil {
		facts.scripts = []string{}
	}
	return facts
}

// read returns the contents of name, or nil when it does not exist or
// cannot be read.
func (m manifestReader) read(name string) []byte {
	data, err := os.ReadFile(filepath.Join(m.dir, name))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			m.log.Debug("manifest unreadable", "dir", m.dir, "file", name, "err", err)
		}
		return nil
	}
	return data
}

func (m manifestReader) malformed(name string, err error) {
	m.log.Debug("manifest malformed", "dir", m.dir, "file", name, "err", err)
}

type packageManifest struct {
	deps        []string
	description string
	homepage    string
	scripts     []string
}

func (m manifestReader) packageJSON() packageManifest {
	var pm packageManifest
	data := m.read("package.json")
	if data == nil {
		return pm
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		m.malformed("package.json", err)
		return pm
	}

	pm.deps = append(objectKeys(top["dependencies"]), objectKeys(top["devDependencies"])...)
	pm.description = jsonString(top["description"])
	pm.homepage = strings.TrimSpace(jsonString(top["homepage"]))
	pm.scripts = objectKeys(top["scripts"])
	return pm
}

// objectKeys returns the keys of a JSON object in document order, or nil
// when raw is not an object.
func objectKeys(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
		return nil
	}
	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil
		}
		key, ok := tok.(string)
		if !ok {
			return nil
		}
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil
		}
		keys = append(keys, key)
	}
	return keys
}

func jsonString(raw json.RawMessage) string {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}

type cargoManifest struct {
	Package struct {
		Description any `toml:"description"`
	} `toml:"package"`
	Dependencies    map[string]any `toml:"dependencies"`
	DevDependencies map[string]any `toml:"dev-dependencies"`
}

type tomlDeps struct {
	deps        []string
	description string
}

func (m manifestReader) cargoToml() tomlDeps {
	var out tomlDeps
	data := m.read("Cargo.toml")
	if data == nil {
		return out
	}

	var cm cargoManifest
	if _, err := toml.Decode(string(data), &cm); err != nil {
		m.malformed("Cargo.toml", err)
		return out
	}
	out.deps = append(mapKeys(cm.Dependencies), mapKeys(cm.DevDependencies)...)
	out.description, _ = cm.Package.Description.(string)
	return out
}

type poetryGroup struct {
	Dependencies map[string]any `toml:"dependencies"`
}

type pyprojectManifest struct {
	Project struct {
		Description          any              `toml:"description"`
		Dependencies         []any            `toml:"dependencies"`
		OptionalDependencies map[string][]any `toml:"optional-dependencies"`
	} `toml:"project"`
	Tool struct {
		Poetry struct {
			Description     any                    `toml:"description"`
			Dependencies    map[string]any         `toml:"dependencies"`
			DevDependencies map[string]any         `toml:"dev-dependencies"`
			Group           map[string]poetryGroup `toml:"group"`
		} `toml:"poetry"`
	} `toml:"tool"`
}

// python collects normalized dependency names from pyproject.toml and
// requirements.txt.
func (m manifestReader) python() tomlDeps {
	var out tomlDeps

	if data := m.read("pyproject.toml"); data != nil {
		var pp pyprojectManifest
		if _, err := toml.Decode(string(data), &pp); err != nil {
			m.malformed("pyproject.toml", err)
		} else {
			for _, req := range pp.Project.Dependencies {
				out.deps = appendRequirement(out.deps, req)
			}
			for _, group := range pp.Project.OptionalDependencies {
				for _, req := range group {
					out.deps = appendRequirement(out.deps, req)
				}
			}
			poetry := pp.Tool.Poetry
			for _, name := range append(mapKeys(poetry.Dependencies), mapKeys(poetry.DevDependencies)...) {
				out.deps = appendRequirement(out.deps, name)
			}
			for _, g := range poetry.Group {
				for _, name := range mapKeys(g.Dependencies) {
					out.deps = appendRequirement(out.deps, name)
				}
			}

			desc, _ := pp.Project.Description.(string)
			if desc == "" {
				desc, _ = poetry.Description.(string)
			}
			out.description = desc
		}
	}

	if data := m.read("requirements.txt"); data != nil {
		sc := bufio.NewScanner(bytes.NewReader(data))
		for sc.Scan() {
			line := strings.TrimSpace(sc.Text())
			if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "-") {
				continue
			}
			out.deps = appendRequirement(out.deps, line)
		}
	}
	return out
}

func appendRequirement(deps []string, req any) []string {
	s, ok := req.(string)
	if !ok {
		return deps
	}
	if name := requirementName(s); name != "" {
		deps = append(deps, name)
	}
	return deps
}

// requirementName extracts the normalized distribution name from a PEP 508
// requirement such as "Django[argon2]>=4.2; python_version>'3.8'".
func requirementName(req string) string {
	req = strings.TrimSpace(req)
	if i := strings.IndexAny(req, " <>=!~;[@(,"); i >= 0 {
		req = req[:i]
	}
	return strings.ReplaceAll(strings.ToLower(req), "_", "-")
}

// goMod returns the module paths required by go.mod.
func (m manifestReader) goMod() []string {
	data := m.read("go.mod")
	if data == nil {
		return nil
	}
	mf, err := modfile.Parse("go.mod", data, nil)
	if err != nil {
		m.malformed("go.mod", err)
		return nil
	}
	paths := make([]string, 0, len(mf.Require))
	for _, r := range mf.Require {
		paths = append(paths, r.Mod.Path)
	}
	return paths
}

type composeFile struct {
	Services map[string]struct {
		Image string `yaml:"image"`
	} `yaml:"services"`
}

// composeImages returns the bare image names ("postgres" for
// "docker.io/library/postgres:16") of every compose service.
func (m manifestReader) composeImages() []string {
	var images []string
	for _, name := range composeFiles {
		data := m.read(name)
		if data == nil {
			continue
		}
		var cf composeFile
		if err := yaml.Unmarshal(data, &cf); err != nil {
			m.malformed(name, err)
			continue
		}
		for _, svc := range cf.Services {
			if img := imageName(svc.Image); img != "" {
				images = append(images, img)
			}
		}
	}
	return images
}

func imageName(ref string) string {
	if i := strings.IndexByte(ref, '@'); i >= 0 {
		ref = ref[:i]
	}
	if i := strings.LastIndexByte(ref, '/'); i >= 0 {
		ref = ref[i+1:]
	}
	if i := strings.IndexByte(ref, ':'); i >= 0 {
		ref = ref[:i]
	}
	return strings.ToLower(ref)
}

// envServices matches variable names in local env files against the prefix
// table. Values are never retained.
func (m manifestReader) envServices() []string {
	var services []string
	for _, name := range envFiles {
		data := m.read(name)
		if data == nil {
			continue
		}
		sc := bufio.NewScanner(bytes.NewReader(data))
		for sc.Scan() {
			line := strings.TrimSpace(sc.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			key, _, _ := strings.Cut(line, "=")
			key = strings.TrimSpace(strings.TrimPrefix(key, "export "))
			for _, p := range envKeyPrefixes {
				if strings.HasPrefix(key, p.key) {
					services = append(services, p.label)
				}
			}
		}
	}
	return services
}

// matchFirst returns the label of the first table entry present in names.
// With prefix set, an entry also matches names below it ("a/b" matches
// "a/b/v2").
func matchFirst(names []string, table []association, prefix bool) string {
	for _, a := range table {
		for _, n := range names {
			if matches(n, a.key, prefix) {
				return a.label
			}
		}
	}
	return ""
}

// matchAll returns the label of every table entry present in names.
func matchAll(names []string, table []association, prefix bool) []string {
	var labels []string
	for _, n := range names {
		for _, a := range table {
			if matches(n, a.key, prefix) {
				labels = append(labels, a.label)
			}
		}
	}
	return labels
}

func matches(name, key string, prefix bool) bool {
	if name == key {
		return true
	}
	return prefix && strings.HasPrefix(name, key+"/")
}

func mapKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
