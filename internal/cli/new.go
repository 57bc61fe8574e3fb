package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/pgxgen/pgxgen/internal/branding"
	"github.com/pgxgen/pgxgen/internal/scaffold"
	"github.com/spf13/cobra"
)

var (
	newBgworker     bool
	newOutputDir    string
	newStaged       bool
	newTemplatesDir string
	newQuiet        bool
)

func init() {
	newCmd.Flags().BoolVarP(&newBgworker, "bgworker", "b", false, "Create a background worker template")
	newCmd.Flags().StringVar(&newOutputDir, "output-dir", "", "Directory to create the extension in (default: current directory)")
	newCmd.Flags().BoolVar(&newStaged, "staged", false, "Generate into a staging directory and move it into place on success")
	newCmd.Flags().StringVar(&newTemplatesDir, "templates-dir", "", "Use the template set in this directory instead of the built-in one")
	newCmd.Flags().BoolVarP(&newQuiet, "quiet", "q", false, "Print nothing on success")
	rootCmd.AddCommand(newCmd)
}

var newCmd = &cobra.Command{
	Use:   "new <name>",
	Short: "Create a new extension crate",
	Long: `Create a new pgx extension crate in ./<name>/.

The name must be in the set of [a-z0-9_]; it becomes the crate name, the
extension name and the directory name. Existing files are overwritten.

Examples:
  ` + branding.CLIName() + ` new my_ext
  ` + branding.CLIName() + ` new my_worker --bgworker`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		if err := scaffold.ValidateName(name); err != nil {
			return err
		}

		variant, err := scaffold.ParseVariant(settings.Variant)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("bgworker") {
			variant = scaffold.VariantFromFlag(newBgworker)
		}

		staged := settings.Staged
		if cmd.Flags().Changed("staged") {
			staged = newStaged
		}

		templatesDir := settings.TemplatesDir
		if newTemplatesDir != "" {
			templatesDir = newTemplatesDir
		}
		source, err := loadTemplates(templatesDir)
		if err != nil {
			return err
		}

		g, err := scaffold.New(scaffold.Options{
			Source: source,
			Logger: logger,
			Staged: staged,
		})
		if err != nil {
			return err
		}

		result, err := g.Generate(name, variant, resolveRoot())
		if err != nil {
			return err
		}
		logger.Debug("created extension", "name", name, "variant", variant.String(), "path", result.OutputDir)

		if newQuiet {
			return nil
		}
		out := cmd.OutOrStdout()
		printResult(out, variant, result)

		fmt.Fprintln(out, "\nNext steps:")
		fmt.Fprintf(out, "  1. cd %s\n", result.OutputDir)
		fmt.Fprintln(out, "  2. Edit src/lib.rs to add your extension logic")
		if variant == scaffold.Worker {
			fmt.Fprintf(out, "  3. Add shared_preload_libraries = '%s.so' to postgresql.conf\n", name)
		}
		return nil
	},
}

func resolveRoot() string {
	if newOutputDir != "" {
		return newOutputDir
	}
	return "."
}

func printResult(out io.Writer, variant scaffold.Variant, result *scaffold.Result) {
	fmt.Fprintf(out, "Created %s extension at %s%c\n", variant, result.OutputDir, filepath.Separator)
	for _, f := range result.Files {
		fmt.Fprintf(out, "  %s\n", f)
	}
	if len(result.Warnings) > 0 {
		fmt.Fprintln(out, "\nWarnings:")
		for _, w := range result.Warnings {
			fmt.Fprintf(out, "  - %s\n", w)
		}
	}
}
