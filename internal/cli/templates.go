package cli

import (
	"fmt"
	"os"

	"github.com/pgxgen/pgxgen/internal/templates"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var templatesListDir string

func init() {
	templatesListCmd.Flags().StringVar(&templatesListDir, "templates-dir", "", "Describe the template set in this directory")
	templatesCmd.AddCommand(templatesListCmd)
	templatesCmd.AddCommand(templatesValidateCmd)
	templatesCmd.AddCommand(templatesExportCmd)
	rootCmd.AddCommand(templatesCmd)
}

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Manage template sets",
	Long: `A template set is a directory holding template.yaml and one file per template.
Export the built-in set, edit it, then pass it to "new --templates-dir" or set
the templates_dir config key.`,
}

var templatesListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the active template set",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := settings.TemplatesDir
		if templatesListDir != "" {
			dir = templatesListDir
		}
		set, err := loadTemplates(dir)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s %s\n", set.Meta.Name, set.Meta.Version)
		if set.Meta.Description != "" {
			fmt.Fprintf(out, "  %s\n", set.Meta.Description)
		}
		if set.Meta.Requires != "" {
			fmt.Fprintf(out, "  requires: %s\n", set.Meta.Requires)
		}
		fmt.Fprintln(out)
		for _, id := range templates.IDs() {
			fmt.Fprintf(out, "  %-16s %s\n", id, set.Meta.Files[id])
		}
		return nil
	},
}

var templatesValidateCmd = &cobra.Command{
	Use:   "validate <dir>",
	Short: "Validate a template set directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := args[0]
		result, err := templates.ValidateFS(os.DirFS(dir))
		if err != nil {
			return fmt.Errorf("validating %s: %w", dir, err)
		}

		out := cmd.OutOrStdout()
		if result.Valid {
			fmt.Fprintf(out, "%s: valid\n", dir)
			return nil
		}
		fmt.Fprintf(out, "%s: %d issue(s)\n", dir, len(result.Issues))
		for _, issue := range result.Issues {
			if issue.Path != "" {
				fmt.Fprintf(out, "  - %s: %s\n", issue.Path, issue.Message)
			} else {
				fmt.Fprintf(out, "  - %s\n", issue.Message)
			}
		}
		return fmt.Errorf("template set %s is invalid", dir)
	},
}

var templatesExportCmd = &cobra.Command{
	Use:   "export <dir>",
	Short: "Write the built-in template set to a directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		set, err := templates.Default()
		if err != nil {
			return err
		}

		dir := args[0]
		written, err := set.Export(afero.NewOsFs(), dir)
		if err != nil {
			return err
		}
		logger.Debug("exported template set", "dir", dir, "files", len(written))

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Exported %s to %s\n", set.Meta.Name, dir)
		for _, f := range written {
			fmt.Fprintf(out, "  %s\n", f)
		}
		return nil
	},
}

// loadTemplates returns the set in dir, or the built-in set when dir is empty.
func loadTemplates(dir string) (*templates.Set, error) {
	if dir == "" {
		return templates.Default()
	}
	set, err := templates.Load(os.DirFS(dir), buildVersion)
	if err != nil {
		return nil, fmt.Errorf("loading templates from %s: %w", dir, err)
	}
	logger.Debug("loaded template set", "dir", dir, "name", set.Meta.Name, "version", set.Meta.Version)
	return set, nil
}
