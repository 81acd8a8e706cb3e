package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rmandel/docfill/cmd/docfill/mcp"
)

var mcpCmd = &cobra.Command{
	Use:     "serve-mcp",
	Aliases: []string{"mcp"},
	Short:   "Start MCP server for agent integration",
	Long: `Start an MCP (Model Context Protocol) server that lets an agent upload
documents, chat to fill placeholders, check status and fetch download links.

Configure in an MCP client's config file:
  {
    "mcpServers": {
      "docfill": {
        "command": "docfill",
        "args": ["serve-mcp"]
      }
    }
  }
`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}
	if err := mcp.StartServer(cfg.ServerURL); err != nil {
		return fmt.Errorf("MCP server failed: %w", err)
	}
	return nil
}
