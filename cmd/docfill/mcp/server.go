package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/rmandel/docfill/internal/core/api"
	"github.com/rmandel/docfill/internal/core/models"
	"github.com/rmandel/docfill/internal/pkg/logging"
)

// UploadDocumentArgs defines arguments for the upload_document tool
type UploadDocumentArgs struct {
	Path string `json:"path" jsonschema:"description=Path to a .docx file on disk,required"`
}

// SendChatArgs defines arguments for the send_chat tool
type SendChatArgs struct {
	DocumentID string `json:"document_id" jsonschema:"description=Document ID returned by upload_document,required"`
	Message    string `json:"message" jsonschema:"description=Natural-language message with fill information or a question,required"`
}

// GetStatusArgs defines arguments for the get_status tool
type GetStatusArgs struct {
	DocumentID   string `json:"document_id" jsonschema:"description=Document ID returned by upload_document,required"`
	UnfilledOnly bool   `json:"unfilled_only,omitempty" jsonschema:"description=Return only placeholders that still need values"`
}

// DownloadDocumentArgs defines arguments for the download_document tool
type DownloadDocumentArgs struct {
	DocumentID string `json:"document_id" jsonschema:"description=Document ID returned by upload_document,required"`
	OutputPath string `json:"output_path,omitempty" jsonschema:"description=Where to save the filled document (default filled_<id>.docx)"`
}

// PlaceholderStatus is one placeholder in a status response
type PlaceholderStatus struct {
	ID       string `json:"id"`
	Match    string `json:"match"`
	IsFilled bool   `json:"is_filled"`
	Value    string `json:"value,omitempty"`
	Page     int    `json:"page,omitempty"`
}

// StatusResult is the get_status response payload
type StatusResult struct {
	Total        int                 `json:"total_placeholders"`
	Filled       int                 `json:"filled_count"`
	Completion   float64             `json:"completion_percentage"`
	Placeholders []PlaceholderStatus `json:"placeholders"`
}

// StartServer starts the MCP server against the given fill service. The
// server holds no session state; every tool call names its document ID.
func StartServer(serverURL string) error {
	home, err := os.UserHomeDir()
	logPath := "docfill-mcp.log"
	if err == nil {
		logPath = filepath.Join(home, ".config", "docfill", "docfill-mcp.log")
	}
	log := logging.New(logPath)
	client := api.New(serverURL, log)

	s := server.NewMCPServer(
		"docfill",
		"1.0.0",
	)

	uploadTool := mcp.NewTool("upload_document",
		mcp.WithDescription("Upload a .docx document to the fill service. Returns the document ID and the placeholders found in it."),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to a .docx file on disk")),
	)
	s.AddTool(uploadTool, makeUploadHandler(client))

	chatTool := mcp.NewTool("send_chat",
		mcp.WithDescription("Send a chat message about an uploaded document. The service extracts fill values from the message and applies them; the reply may also ask a follow-up question."),
		mcp.WithString("document_id",
			mcp.Required(),
			mcp.Description("Document ID returned by upload_document")),
		mcp.WithString("message",
			mcp.Required(),
			mcp.Description("Natural-language message with fill information or a question")),
	)
	s.AddTool(chatTool, makeSendChatHandler(client))

	statusTool := mcp.NewTool("get_status",
		mcp.WithDescription("Get the current placeholder fill status for an uploaded document"),
		mcp.WithString("document_id",
			mcp.Required(),
			mcp.Description("Document ID returned by upload_document")),
		mcp.WithBoolean("unfilled_only",
			mcp.Description("Return only placeholders that still need values")),
	)
	s.AddTool(statusTool, makeGetStatusHandler(client))

	downloadTool := mcp.NewTool("download_document",
		mcp.WithDescription("Save the filled document to disk and return its path and download URL"),
		mcp.WithString("document_id",
			mcp.Required(),
			mcp.Description("Document ID returned by upload_document")),
		mcp.WithString("output_path",
			mcp.Description("Where to save the filled document (default filled_<id>.docx)")),
	)
	s.AddTool(downloadTool, makeDownloadHandler(client))

	return server.ServeStdio(s)
}

func decodeArgs(request mcp.CallToolRequest, out interface{}) error {
	argsBytes, _ := json.Marshal(request.Params.Arguments)
	return json.Unmarshal(argsBytes, out)
}

func makeUploadHandler(client *api.Client) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args UploadDocumentArgs
		if err := decodeArgs(request, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		if !strings.HasSuffix(strings.ToLower(args.Path), ".docx") {
			return mcp.NewToolResultError("only .docx files are supported"), nil
		}

		data, err := os.ReadFile(args.Path)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to read file: %v", err)), nil
		}

		up, err := client.Upload(ctx, data, filepath.Base(args.Path))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("upload failed: %v", err)), nil
		}

		set, err := client.QueryPlaceholders(ctx, up.DocumentID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("placeholder scan failed: %v", err)), nil
		}

		resultJSON, err := json.Marshal(map[string]interface{}{
			"document_id": up.DocumentID,
			"status":      statusResult(set, false),
		})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to marshal results: %v", err)), nil
		}
		return mcp.NewToolResultText(string(resultJSON)), nil
	}
}

func makeSendChatHandler(client *api.Client) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args SendChatArgs
		if err := decodeArgs(request, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		if strings.TrimSpace(args.Message) == "" {
			return mcp.NewToolResultError("message is empty"), nil
		}

		res, err := client.ChatTurn(ctx, args.DocumentID, args.Message)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("chat failed: %v", err)), nil
		}

		// Re-query so the response reflects the authoritative state, not
		// just the fills this turn claimed.
		var status interface{}
		if set, err := client.QueryPlaceholders(ctx, args.DocumentID); err == nil {
			status = statusResult(set, false)
		}

		fills := make([]map[string]string, 0, len(res.Fills))
		for _, f := range res.Fills {
			fills = append(fills, map[string]string{
				"placeholder_id": f.PlaceholderID,
				"field":          f.FieldLabel,
				"value":          f.Value,
			})
		}

		resultJSON, err := json.Marshal(map[string]interface{}{
			"reply":  res.Message,
			"fills":  fills,
			"status": status,
		})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to marshal results: %v", err)), nil
		}
		return mcp.NewToolResultText(string(resultJSON)), nil
	}
}

func makeGetStatusHandler(client *api.Client) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args GetStatusArgs
		if err := decodeArgs(request, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		set, err := client.QueryPlaceholders(ctx, args.DocumentID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("status query failed: %v", err)), nil
		}

		resultJSON, err := json.Marshal(statusResult(set, args.UnfilledOnly))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to marshal results: %v", err)), nil
		}
		return mcp.NewToolResultText(string(resultJSON)), nil
	}
}

func makeDownloadHandler(client *api.Client) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args DownloadDocumentArgs
		if err := decodeArgs(request, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		data, err := client.FetchDocumentBytes(ctx, args.DocumentID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("download failed: %v", err)), nil
		}

		path := args.OutputPath
		if path == "" {
			path = fmt.Sprintf("filled_%s.docx", args.DocumentID)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to save file: %v", err)), nil
		}

		resultJSON, err := json.Marshal(map[string]interface{}{
			"path":         path,
			"bytes":        len(data),
			"download_url": client.DownloadURL(args.DocumentID),
		})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to marshal results: %v", err)), nil
		}
		return mcp.NewToolResultText(string(resultJSON)), nil
	}
}

func statusResult(set *models.PlaceholderSet, unfilledOnly bool) StatusResult {
	out := StatusResult{
		Total:        set.Summary.Total,
		Filled:       set.Summary.FilledCount,
		Completion:   set.Summary.CompletionPercent,
		Placeholders: []PlaceholderStatus{},
	}
	for _, p := range set.Placeholders {
		if unfilledOnly && p.IsFilled {
			continue
		}
		out.Placeholders = append(out.Placeholders, PlaceholderStatus{
			ID:       p.ID,
			Match:    p.MatchText,
			IsFilled: p.IsFilled,
			Value:    p.Value,
			Page:     p.EstimatedPageNumber,
		})
	}
	return out
}
