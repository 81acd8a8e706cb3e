package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <file.docx>",
	Short: "Upload a document and print its ID",
	Long: `Upload a .docx document to the fill service and print the document ID
for use with the chat, status and download subcommands.

Examples:
  docfill upload contract.docx
  docfill upload contract.docx --server http://fill.internal:8000`,
	Args: cobra.ExactArgs(1),
	RunE: runUpload,
}

func init() {
	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	protocol, store, _, err := newHeadlessProtocol()
	if err != nil {
		return err
	}

	fmt.Printf("Uploading %s (%s)...\n", path, humanize.Bytes(uint64(len(data))))

	outcome, err := protocol.UploadDocument(cmd.Context(), data, filepath.Base(path))
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}

	fmt.Printf("\nDocument ID: %s\n", outcome.DocumentID)
	fmt.Printf("Placeholders: %d\n", outcome.Total)

	// The welcome message summarizes what the service found.
	if messages := store.Messages(); len(messages) > 0 {
		fmt.Printf("\n%s\n", messages[len(messages)-1].Content)
	}
	return nil
}
