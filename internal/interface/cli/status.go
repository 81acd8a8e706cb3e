package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rmandel/docfill/internal/core/models"
)

var statusUnfilledOnly bool

var statusCmd = &cobra.Command{
	Use:   "status <document-id>",
	Short: "Show placeholder status for a document",
	Long: `Query the fill service for the current placeholder snapshot of a document.

Examples:
  docfill status 4f2a91
  docfill status 4f2a91 --unfilled`,
	Args: cobra.ExactArgs(1),
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().BoolVarP(&statusUnfilledOnly, "unfilled", "u", false, "Show only unfilled placeholders")
}

func runStatus(cmd *cobra.Command, args []string) error {
	protocol, store, _, err := newHeadlessProtocol()
	if err != nil {
		return err
	}
	store.SetDocumentID(args[0])

	set, err := protocol.RefreshSnapshot(cmd.Context())
	if err != nil {
		return fmt.Errorf("status query failed: %w", err)
	}

	fmt.Printf("%d of %d placeholders filled (%.0f%%)\n\n",
		set.Summary.FilledCount, set.Summary.Total, set.Summary.CompletionPercent)

	for _, p := range set.Placeholders {
		if statusUnfilledOnly && p.IsFilled {
			continue
		}
		fmt.Println(formatPlaceholderLine(p))
	}
	return nil
}

func formatPlaceholderLine(p models.Placeholder) string {
	marker := "[ ]"
	if p.IsFilled {
		marker = "[x]"
	}
	line := fmt.Sprintf("%s %s", marker, p.MatchText)
	if p.IsFilled && p.Value != "" {
		line += " = " + p.Value
	}
	if p.EstimatedPageNumber > 0 {
		line += fmt.Sprintf("  (page %d)", p.EstimatedPageNumber)
	}
	return line
}
