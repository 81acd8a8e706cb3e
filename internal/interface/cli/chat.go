package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat <document-id> <message>",
	Short: "Send one chat turn for a document",
	Long: `Send a single chat message to the fill service for an uploaded document
and print the assistant's reply and any placeholder fills it made.

Examples:
  docfill chat 4f2a91 "The client is Acme Corp and the date is March 1st"
  docfill chat 4f2a91 "What's still missing?"`,
	Args: cobra.MinimumNArgs(2),
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	documentID := args[0]
	input := strings.Join(args[1:], " ")

	protocol, store, _, err := newHeadlessProtocol()
	if err != nil {
		return err
	}
	store.SetDocumentID(documentID)

	result, err := protocol.SendTurn(cmd.Context(), input)
	if err != nil {
		return fmt.Errorf("chat failed: %w", err)
	}

	fmt.Println(result.Assistant.Content)

	for _, f := range result.Assistant.Fills {
		name := f.FieldLabel
		if name == "" {
			name = f.PlaceholderID
		}
		fmt.Printf("  filled %s = %s\n", name, f.Value)
	}

	if set := store.Snapshot(); set != nil {
		fmt.Printf("\n%d of %d placeholders filled (%.0f%%)\n",
			set.Summary.FilledCount, set.Summary.Total, set.Summary.CompletionPercent)
	} else if result.SnapshotStale {
		fmt.Println("\nStatus unavailable; run `docfill status` to retry.")
	}
	return nil
}
