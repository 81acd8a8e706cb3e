package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rmandel/docfill/internal/core/config"
)

var (
	serverURL   string
	versionInfo string
)

// SetVersion sets the version information from build-time ldflags
func SetVersion(version, commit, date string) {
	versionInfo = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)
	rootCmd.Version = versionInfo
}

// Execute runs the CLI
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "docfill",
	Short: "Interactive document placeholder filling",
	Long: `docfill - upload a .docx document and fill its placeholders by chatting

Talks to a fill service that scans the document for placeholders and fills
them from conversation. Run without a subcommand for the interactive TUI.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default to TUI if no subcommand specified
		return tuiCmd.RunE(cmd, args)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "Fill service URL (default from config)")
}

// resolveConfig loads config and applies the --server override.
func resolveConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if serverURL != "" {
		cfg.ServerURL = serverURL
	}
	return cfg, nil
}
