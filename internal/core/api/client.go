package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/rmandel/docfill/internal/core/models"
)

// Client wraps the four remote fill operations. It holds no session state:
// every method is a pure request/response mapping with no retries and no
// caching. All failures propagate to the caller as *TransportError.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

// UploadResult is the server's acknowledgement of a stored document.
type UploadResult struct {
	DocumentID string `json:"document_id"`
	Status     string `json:"status"`
}

// ChatResult is one normalized chat-turn response.
type ChatResult struct {
	Status  string
	Message string
	Fills   []models.Fill
}

func New(baseURL string, log *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		log:     log,
	}
}

// Upload sends the document as a multipart form and returns its server
// identity. Callers validate the file extension before calling; the client
// does not re-check it.
func (c *Client) Upload(ctx context.Context, fileBytes []byte, fileName string) (UploadResult, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		return UploadResult{}, fmt.Errorf("build upload form: %w", err)
	}
	if _, err := part.Write(fileBytes); err != nil {
		return UploadResult{}, fmt.Errorf("build upload form: %w", err)
	}
	if err := mw.Close(); err != nil {
		return UploadResult{}, fmt.Errorf("build upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload-document", &body)
	if err != nil {
		return UploadResult{}, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return UploadResult{}, &TransportError{Op: "upload", StatusText: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return UploadResult{}, &TransportError{Op: "upload", StatusText: resp.Status}
	}

	var out UploadResult
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return UploadResult{}, fmt.Errorf("decode upload response: %w", err)
	}
	c.log.Info("document uploaded",
		zap.String("document_id", out.DocumentID),
		zap.String("file_name", fileName),
		zap.Int("bytes", len(fileBytes)))
	return out, nil
}

// chatResponse is the wire shape of a chat turn. Field names vary across
// server versions, hence the alias pairs on fills and the question/message
// split; normalize.go resolves both.
type chatResponse struct {
	Status   string     `json:"status"`
	Question string     `json:"question"`
	Message  string     `json:"message"`
	Fills    []wireFill `json:"fills"`
}

type wireFill struct {
	PlaceholderID string `json:"placeholder_id"`
	UniqueID      string `json:"unique_id"`
	Match         string `json:"match"`
	Field         string `json:"field"`
	Value         string `json:"value"`
}

// ChatTurn sends one user utterance for the given document. The response
// body text is included in transport errors because the server puts
// actionable detail there.
func (c *Client) ChatTurn(ctx context.Context, documentID, userText string) (ChatResult, error) {
	payload, err := json.Marshal(map[string]string{"user_input": userText})
	if err != nil {
		return ChatResult{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/chat/"+documentID, bytes.NewReader(payload))
	if err != nil {
		return ChatResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return ChatResult{}, &TransportError{Op: "chat", StatusText: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(resp.Body)
		return ChatResult{}, &TransportError{Op: "chat", StatusText: resp.Status, Body: string(detail)}
	}

	var wire chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return ChatResult{}, fmt.Errorf("decode chat response: %w", err)
	}

	out := ChatResult{
		Status:  wire.Status,
		Message: messageText(wire.Question, wire.Message),
	}
	if out.Status == "" {
		out.Status = "success"
	}
	for _, f := range wire.Fills {
		out.Fills = append(out.Fills, normalizeFill(f))
	}
	c.log.Info("chat turn completed",
		zap.String("document_id", documentID),
		zap.Int("fills", len(out.Fills)))
	return out, nil
}

// QueryPlaceholders returns the complete current snapshot, never a delta.
func (c *Client) QueryPlaceholders(ctx context.Context, documentID string) (*models.PlaceholderSet, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/placeholders/"+documentID, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Op: "fetch placeholders", StatusText: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TransportError{Op: "fetch placeholders", StatusText: resp.Status}
	}

	var set models.PlaceholderSet
	if err := json.NewDecoder(resp.Body).Decode(&set); err != nil {
		return nil, fmt.Errorf("decode placeholders: %w", err)
	}
	return &set, nil
}

// FetchDocumentBytes downloads the raw document for preview rendering.
func (c *Client) FetchDocumentBytes(ctx context.Context, documentID string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.DownloadURL(documentID), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Op: "fetch document", StatusText: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TransportError{Op: "fetch document", StatusText: resp.Status}
	}

	return io.ReadAll(resp.Body)
}

// DownloadURL is the direct link for user-initiated downloads; no byte
// handling happens client-side on that path.
func (c *Client) DownloadURL(documentID string) string {
	return c.baseURL + "/download/" + documentID
}
