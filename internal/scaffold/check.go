package scaffold

import (
	"fmt"
	"path/filepath"
	"slices"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
)

type cargoManifest struct {
	Package struct {
		Name string `toml:"name"`
	} `toml:"package"`
	Lib struct {
		CrateType []string `toml:"crate-type"`
	} `toml:"lib"`
}

// check inspects the generated Cargo.toml and returns warnings for problems
// that would stop cargo pgx from building the crate. It never fails.
func (g *Generator) check(dest, name string) []string {
	p := filepath.Join(dest, manifest)
	data, err := afero.ReadFile(g.fs, p)
	if err != nil {
		return []string{fmt.Sprintf("Could not read %s: %v", manifest, err)}
	}

	var m cargoManifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return []string{fmt.Sprintf("%s is not valid TOML: %v", manifest, err)}
	}

	var warnings []string
	if m.Package.Name != name {
		warnings = append(warnings, fmt.Sprintf("%s: package.name is %q, expected %q", manifest, m.Package.Name, name))
	}
	if !slices.Contains(m.Lib.CrateType, "cdylib") {
		warnings = append(warnings, fmt.Sprintf("%s: lib.crate-type does not include \"cdylib\"", manifest))
	}
	for _, w := range warnings {
		g.logger.Warn("manifest check", "warning", w)
	}
	return warnings
}
