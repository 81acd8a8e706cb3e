package cli

import (
	"fmt"
	"os"

	"github.com/rmandel/docfill/internal/core/api"
	"github.com/rmandel/docfill/internal/core/config"
	"github.com/rmandel/docfill/internal/core/fill"
	"github.com/rmandel/docfill/internal/core/notify"
	"github.com/rmandel/docfill/internal/core/session"
	"github.com/rmandel/docfill/internal/pkg/logging"
)

// newHeadlessProtocol wires the fill protocol for one-shot subcommands.
// Notifications go to stderr so stdout stays clean for command output.
func newHeadlessProtocol() (*fill.Protocol, *session.Store, *api.Client, error) {
	cfg, err := resolveConfig()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	log := logging.New(config.LogPath())
	client := api.New(cfg.ServerURL, log)
	store := session.NewStore()

	notifier := notify.Func(func(n notify.Notification) {
		if n.Severity == notify.Error {
			fmt.Fprintf(os.Stderr, "%s: %s\n", n.Title, n.Description)
		}
	})

	return fill.New(client, store, notifier, cfg.WelcomeTemplate, log), store, client, nil
}
