package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rmandel/docfill/internal/core/models"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, zap.NewNop())
}

func TestUpload(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/upload-document", r.URL.Path)

		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "safe.docx", header.Filename)

		_ = json.NewEncoder(w).Encode(map[string]string{
			"document_id": "doc_1",
			"status":      "success",
		})
	}))

	got, err := c.Upload(context.Background(), make([]byte, 200), "safe.docx")
	require.NoError(t, err)
	assert.Equal(t, UploadResult{DocumentID: "doc_1", Status: "success"}, got)
}

func TestUploadTransportError(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	_, err := c.Upload(context.Background(), []byte("x"), "safe.docx")
	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Contains(t, te.Error(), "500")
}

func TestChatTurnNormalizesFills(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/doc_1", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "the company is Acme Inc", body["user_input"])

		_, _ = w.Write([]byte(`{
			"status": "success",
			"fills": [
				{"placeholder_id": "p1", "match": "CompanyName", "value": "Acme Inc"},
				{"unique_id": "p2", "field": "State", "value": "Delaware"}
			]
		}`))
	}))

	got, err := c.ChatTurn(context.Background(), "doc_1", "the company is Acme Inc")
	require.NoError(t, err)
	assert.Equal(t, "success", got.Status)
	assert.Equal(t, fallbackMessage, got.Message, "no question or message in payload")
	assert.Equal(t, []models.Fill{
		{PlaceholderID: "p1", FieldLabel: "CompanyName", Value: "Acme Inc"},
		{PlaceholderID: "p2", FieldLabel: "State", Value: "Delaware"},
	}, got.Fills)
}

func TestChatTurnQuestionPreferred(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"success","question":"What state?","message":"ignored"}`))
	}))

	got, err := c.ChatTurn(context.Background(), "doc_1", "hello")
	require.NoError(t, err)
	assert.Equal(t, "What state?", got.Message)
	assert.Empty(t, got.Fills)
}

func TestChatTurnErrorIncludesBody(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("document not found"))
	}))

	_, err := c.ChatTurn(context.Background(), "missing", "hello")
	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "document not found", te.Body)
	assert.Contains(t, te.Error(), "document not found")
}

func TestQueryPlaceholders(t *testing.T) {
	calls := 0
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		require.Equal(t, "/placeholders/doc_1", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"status": "success",
			"summary": {"total_placeholders": 5, "filled_count": 0, "unfilled_count": 5, "completion_percentage": 0.0},
			"placeholders": [
				{"unique_id": "p1", "match": "CompanyName", "match_type": "bracketed", "is_filled": false,
				 "llm_context": "party name", "paragraph_index": 2, "estimated_page_number": 1},
				{"unique_id": "p2"}, {"unique_id": "p3"}, {"unique_id": "p4"}, {"unique_id": "p5"}
			]
		}`))
	}))

	first, err := c.QueryPlaceholders(context.Background(), "doc_1")
	require.NoError(t, err)
	require.NoError(t, first.Validate())
	assert.Equal(t, 5, first.Summary.Total)
	assert.Equal(t, "CompanyName", first.Placeholders[0].MatchText)

	// Querying again with no intervening change yields an identical snapshot.
	second, err := c.QueryPlaceholders(context.Background(), "doc_1")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 2, calls)
}

func TestFetchDocumentBytes(t *testing.T) {
	raw := []byte("PK\x03\x04docx-bytes")
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/download/doc_1", r.URL.Path)
		_, _ = w.Write(raw)
	}))

	got, err := c.FetchDocumentBytes(context.Background(), "doc_1")
	require.NoError(t, err)
	assert.Equal(t, raw, got)
}

func TestDownloadURL(t *testing.T) {
	c := New("http://example.test/", zap.NewNop())
	assert.Equal(t, "http://example.test/download/doc_1", c.DownloadURL("doc_1"))
}
