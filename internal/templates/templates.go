package templates

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"
	"text/template"

	"github.com/Masterminds/semver/v3"
	"go.yaml.in/yaml/v3"
)

// MetadataFile is the name of the file describing a template set.
const MetadataFile = "template.yaml"

//go:embed pgx/*
var embedded embed.FS

// ID identifies one template body within a set.
type ID string

const (
	Control       ID = "control"
	CargoToml     ID = "cargo_toml"
	CargoConfig   ID = "cargo_config"
	LibRs         ID = "lib_rs"
	BgworkerLibRs ID = "bgworker_lib_rs"
	Gitignore     ID = "gitignore"
)

// IDs lists every template a set must provide, in generation order.
func IDs() []ID {
	return []ID{Control, CargoToml, CargoConfig, LibRs, BgworkerLibRs, Gitignore}
}

// Data holds the values available to rendered templates.
type Data struct {
	Name string // e.g., "my_ext"
}

// Metadata is the parsed content of a set's template.yaml.
type Metadata struct {
	Name        string        `yaml:"name"`
	Version     string        `yaml:"version"`
	Description string        `yaml:"description,omitempty"`
	Requires    string        `yaml:"requires,omitempty"`
	Files       map[ID]string `yaml:"files"`
}

// Set is a loaded template set backed by an fs.FS.
type Set struct {
	Meta Metadata
	fsys fs.FS
}

var (
	defaultSet  *Set
	defaultOnce sync.Once
	defaultErr  error
)

// Default returns the template set compiled into the binary.
func Default() (*Set, error) {
	defaultOnce.Do(func() {
		sub, err := fs.Sub(embedded, "pgx")
		if err != nil {
			defaultErr = fmt.Errorf("opening embedded templates: %w", err)
			return
		}
		defaultSet, defaultErr = Load(sub, "")
	})
	return defaultSet, defaultErr
}

// Load reads and validates the template set rooted at fsys. When toolVersion
// is a valid semver string it must satisfy the set's "requires" constraint;
// development builds ("dev") skip the check.
func Load(fsys fs.FS, toolVersion string) (*Set, error) {
	data, err := fs.ReadFile(fsys, MetadataFile)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", MetadataFile, err)
	}

	result, err := Validate(data)
	if err != nil {
		return nil, fmt.Errorf("validating %s: %w", MetadataFile, err)
	}
	if !result.Valid {
		return nil, fmt.Errorf("invalid %s: %s", MetadataFile, result.Summary())
	}

	var meta Metadata
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", MetadataFile, err)
	}

	if err := checkRequires(meta.Requires, toolVersion); err != nil {
		return nil, fmt.Errorf("template set %q: %w", meta.Name, err)
	}

	for _, id := range IDs() {
		if _, err := fs.Stat(fsys, meta.Files[id]); err != nil {
			return nil, fmt.Errorf("template %s: %w", id, err)
		}
	}

	return &Set{Meta: meta, fsys: fsys}, nil
}

// checkRequires verifies toolVersion against the constraint. An empty
// constraint or a non-semver tool version always passes.
func checkRequires(constraint, toolVersion string) error {
	if constraint == "" {
		return nil
	}
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("parsing requires constraint %q: %w", constraint, err)
	}

	v, err := semver.NewVersion(strings.TrimPrefix(toolVersion, "v"))
	if err != nil {
		return nil
	}
	if !c.Check(v) {
		return fmt.Errorf("requires %s, running %s", constraint, toolVersion)
	}
	return nil
}

// Raw returns the bytes of a template without any substitution.
func (s *Set) Raw(id ID) ([]byte, error) {
	file, ok := s.Meta.Files[id]
	if !ok {
		return nil, fmt.Errorf("template %q not defined in set %q", id, s.Meta.Name)
	}
	b, err := fs.ReadFile(s.fsys, file)
	if err != nil {
		return nil, fmt.Errorf("reading template %s: %w", id, err)
	}
	return b, nil
}

// Render executes a template with data.
func (s *Set) Render(id ID, data Data) ([]byte, error) {
	raw, err := s.Raw(id)
	if err != nil {
		return nil, err
	}

	tmpl, err := template.New(string(id)).Option("missingkey=error").Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", id, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template %s: %w", id, err)
	}
	return buf.Bytes(), nil
}

// Files returns the set's files (metadata first, then templates in ID order)
// as slash-separated paths relative to the set root.
func (s *Set) Files() []string {
	files := []string{MetadataFile}
	for _, id := range IDs() {
		files = append(files, path.Clean(s.Meta.Files[id]))
	}
	return files
}
