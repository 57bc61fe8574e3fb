package cli

import (
	"io"
	"log/slog"

	"github.com/pgxgen/pgxgen/internal/branding"
	"github.com/pgxgen/pgxgen/internal/config"
	"github.com/pgxgen/pgxgen/internal/logging"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

// Global flags.
var (
	verbose   bool
	logFormat string
)

// Populated by the root PersistentPreRunE.
var (
	settings *config.Settings
	logger   = slog.New(slog.NewTextHandler(io.Discard, nil))
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` creates new PostgreSQL extension crates for the pgx framework:
the Cargo manifest, the extension control file, the cargo build configuration,
an entry-point source file (plain or background worker) and ignore rules.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.Load()

		s, err := config.Current()
		if err != nil {
			// The config commands must keep working so a bad value can be fixed.
			if !isConfigCommand(cmd) {
				return err
			}
			s = &config.Settings{}
		}
		settings = s

		format := settings.LogFormat
		if cmd.Flags().Changed("log-format") {
			format = logFormat
		}
		f, err := logging.ParseFormat(format)
		if err != nil {
			return err
		}
		logger = logging.New(logging.Options{
			Format:  f,
			Verbose: verbose,
			Writer:  cmd.ErrOrStderr(),
		})
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every step to stderr")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format: text or json")
}

func isConfigCommand(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c == configCmd {
			return true
		}
	}
	return false
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return rootCmd.Execute()
}
