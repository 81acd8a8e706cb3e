package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rmandel/docfill/internal/core/api"
	"github.com/rmandel/docfill/internal/core/config"
	"github.com/rmandel/docfill/internal/core/fill"
	"github.com/rmandel/docfill/internal/core/notify"
	"github.com/rmandel/docfill/internal/core/session"
	"github.com/rmandel/docfill/internal/interface/tui"
	"github.com/rmandel/docfill/internal/pkg/logging"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive TUI",
	Long:  "Launch an interactive terminal UI for uploading a document and filling its placeholders through chat",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// The TUI owns the terminal; logs go to a file only.
	log := logging.New(config.LogPath())
	defer func() { _ = log.Sync() }()

	client := api.New(cfg.ServerURL, log)
	store := session.NewStore()
	notices := &notify.Buffer{}
	protocol := fill.New(client, store, notices, cfg.WelcomeTemplate, log)

	model := tui.New(tui.Deps{
		Store:    store,
		Client:   client,
		Protocol: protocol,
		Notices:  notices,
		Config:   cfg,
		Log:      log,
	})

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
	return nil
}
