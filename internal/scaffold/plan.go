package scaffold

import "github.com/pgxgen/pgxgen/internal/templates"

const (
	srcDir      = "src"
	cargoDir    = ".cargo"
	sqlDir      = "sql"
	manifest    = "Cargo.toml"
	cargoConfig = ".cargo/config"
	entryPoint  = "src/lib.rs"
	ignoreRules = ".gitignore"
)

// Step is one file written by the generator.
type Step struct {
	Path     string       // slash-separated, relative to the crate root
	Template templates.ID // template providing the content
	Render   bool         // false copies the template bytes verbatim
}

// Directories returns the directories created before any file is written.
func Directories() []string {
	return []string{srcDir, cargoDir, sqlDir}
}

// Plan returns the ordered file steps for an extension.
func Plan(name string, variant Variant) []Step {
	return []Step{
		{Path: name + ".control", Template: templates.Control, Render: true},
		{Path: manifest, Template: templates.CargoToml, Render: true},
		{Path: cargoConfig, Template: templates.CargoConfig},
		{Path: entryPoint, Template: variant.entryPoint(), Render: true},
		{Path: ignoreRules, Template: templates.Gitignore},
	}
}
