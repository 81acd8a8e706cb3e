package fill

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/rmandel/docfill/internal/core/api"
	"github.com/rmandel/docfill/internal/core/models"
	"github.com/rmandel/docfill/internal/core/notify"
	"github.com/rmandel/docfill/internal/core/welcome"
)

// UploadOutcome reports a completed upload flow.
type UploadOutcome struct {
	DocumentID string
	Total      int
}

// UploadDocument runs the full upload flow: extension check, upload, session
// reset, initial snapshot, welcome message. The busy flag brackets the whole
// flow so views can disable redundant triggers.
func (p *Protocol) UploadDocument(ctx context.Context, fileBytes []byte, fileName string) (UploadOutcome, error) {
	if !strings.HasSuffix(strings.ToLower(fileName), ".docx") {
		err := &api.ValidationError{Reason: "please upload a .docx file"}
		p.notifier.Notify(notify.Notification{
			Title:       "Invalid file type",
			Description: err.Reason,
			Severity:    notify.Error,
		})
		return UploadOutcome{}, err
	}

	p.store.SetBusy(true)
	defer p.store.SetBusy(false)

	up, err := p.client.Upload(ctx, fileBytes, fileName)
	if err != nil {
		p.log.Warn("upload failed", zap.String("file_name", fileName), zap.Error(err))
		p.notifier.Notify(notify.Notification{
			Title:       "Upload failed",
			Description: err.Error(),
			Severity:    notify.Error,
		})
		return UploadOutcome{}, err
	}

	// A successful upload starts a fresh session; everything from the
	// previous document goes.
	p.store.Reset()
	p.store.SetDocumentID(up.DocumentID)
	p.store.SetFileName(fileName)

	seq := p.store.BeginSnapshotUpdate()
	set, err := p.client.QueryPlaceholders(ctx, up.DocumentID)
	if err != nil {
		p.log.Warn("initial snapshot failed", zap.String("document_id", up.DocumentID), zap.Error(err))
		p.notifier.Notify(notify.Notification{
			Title:       "Upload failed",
			Description: err.Error(),
			Severity:    notify.Error,
		})
		return UploadOutcome{}, err
	}
	p.store.ReplaceSnapshot(set, seq)

	greeting := welcome.Render(p.welcomeTemplate, fileName, set.Summary.Total)
	p.store.AppendMessage(models.NewChatMessage(models.RoleAssistant, greeting, nil))

	p.notifier.Notify(notify.Notification{
		Title:       "Document uploaded",
		Description: fmt.Sprintf("%s is ready to be filled", fileName),
		Severity:    notify.Success,
	})
	p.log.Info("upload flow completed",
		zap.String("document_id", up.DocumentID),
		zap.Int("placeholders", set.Summary.Total))

	return UploadOutcome{DocumentID: up.DocumentID, Total: set.Summary.Total}, nil
}

// RefreshSnapshot re-queries the placeholder snapshot on user request. The
// write goes through the same sequence guard as chat reconciliation, so a
// slow refresh can never overwrite a newer turn's result.
func (p *Protocol) RefreshSnapshot(ctx context.Context) (*models.PlaceholderSet, error) {
	documentID := p.store.DocumentID()
	if documentID == "" {
		return nil, &api.ValidationError{Reason: "no active document"}
	}

	p.store.SetBusy(true)
	defer p.store.SetBusy(false)

	seq := p.store.BeginSnapshotUpdate()
	set, err := p.client.QueryPlaceholders(ctx, documentID)
	if err != nil {
		p.notifier.Notify(notify.Notification{
			Title:       "Refresh failed",
			Description: err.Error(),
			Severity:    notify.Error,
		})
		return nil, err
	}
	p.store.ReplaceSnapshot(set, seq)

	p.notifier.Notify(notify.Notification{
		Title:       "Status updated",
		Description: "Placeholder data refreshed",
		Severity:    notify.Success,
	})
	return set, nil
}
