package cli

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var downloadOutput string

var downloadCmd = &cobra.Command{
	Use:   "download <document-id>",
	Short: "Download the filled document",
	Long: `Download the current state of a document, with all fills applied so far,
as a .docx file.

Examples:
  docfill download 4f2a91
  docfill download 4f2a91 -o contract_filled.docx`,
	Args: cobra.ExactArgs(1),
	RunE: runDownload,
}

func init() {
	rootCmd.AddCommand(downloadCmd)

	downloadCmd.Flags().StringVarP(&downloadOutput, "output", "o", "", "Output path (default filled_<id>.docx)")
}

func runDownload(cmd *cobra.Command, args []string) error {
	documentID := args[0]

	_, _, client, err := newHeadlessProtocol()
	if err != nil {
		return err
	}

	data, err := client.FetchDocumentBytes(cmd.Context(), documentID)
	if err != nil {
		return fmt.Errorf("download failed: %w", err)
	}

	path := downloadOutput
	if path == "" {
		path = fmt.Sprintf("filled_%s.docx", documentID)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	fmt.Printf("Saved %s (%s)\n", path, humanize.Bytes(uint64(len(data))))
	return nil
}
