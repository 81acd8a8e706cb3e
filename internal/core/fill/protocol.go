// Package fill drives the conversation with the fill service and keeps the
// session store consistent with it. A chat response only reports what
// *changed*; the placeholder snapshot is the authority on what is *true*,
// so every turn ends with a full snapshot refresh regardless of what the
// chat response claimed.
package fill

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/rmandel/docfill/internal/core/api"
	"github.com/rmandel/docfill/internal/core/models"
	"github.com/rmandel/docfill/internal/core/notify"
	"github.com/rmandel/docfill/internal/core/session"
)

// Client is the remote surface the protocol drives. *api.Client satisfies it.
type Client interface {
	Upload(ctx context.Context, fileBytes []byte, fileName string) (api.UploadResult, error)
	ChatTurn(ctx context.Context, documentID, userText string) (api.ChatResult, error)
	QueryPlaceholders(ctx context.Context, documentID string) (*models.PlaceholderSet, error)
}

type Protocol struct {
	client          Client
	store           *session.Store
	notifier        notify.Notifier
	welcomeTemplate string
	log             *zap.Logger
}

func New(client Client, store *session.Store, notifier notify.Notifier, welcomeTemplate string, log *zap.Logger) *Protocol {
	return &Protocol{
		client:          client,
		store:           store,
		notifier:        notifier,
		welcomeTemplate: welcomeTemplate,
		log:             log,
	}
}

// TurnResult reports what one chat turn did.
type TurnResult struct {
	Assistant     *models.ChatMessage
	FillCount     int
	SnapshotStale bool // reconciliation failed; snapshot predates this turn
}

// SendTurn runs one chat turn: optimistic user append, chat call, assistant
// append, then unconditional snapshot reconciliation.
//
// The optimistic user message is never rolled back on failure: losing
// visible input is worse than a transcript entry with no matching reply.
func (p *Protocol) SendTurn(ctx context.Context, input string) (TurnResult, error) {
	if strings.TrimSpace(input) == "" {
		return TurnResult{}, &api.ValidationError{Reason: "message is empty"}
	}
	documentID := p.store.DocumentID()
	if documentID == "" {
		return TurnResult{}, &api.ValidationError{Reason: "no active document"}
	}

	p.store.AppendMessage(models.NewChatMessage(models.RoleUser, input, nil))

	res, err := p.client.ChatTurn(ctx, documentID, input)
	if err != nil {
		p.log.Warn("chat turn failed", zap.String("document_id", documentID), zap.Error(err))
		p.notifier.Notify(notify.Notification{
			Title:       "Chat failed",
			Description: err.Error(),
			Severity:    notify.Error,
		})
		return TurnResult{}, err
	}

	assistant := models.NewChatMessage(models.RoleAssistant, res.Message, res.Fills)
	p.store.AppendMessage(assistant)

	result := TurnResult{Assistant: &assistant, FillCount: len(res.Fills)}

	// Reconcile: the fills above are a hint, the snapshot is the truth.
	seq := p.store.BeginSnapshotUpdate()
	set, err := p.client.QueryPlaceholders(ctx, documentID)
	if err != nil {
		// The chat-reported fills stand; the snapshot stays stale until the
		// next successful refresh. No automatic retry.
		p.log.Warn("reconciliation failed, snapshot stale",
			zap.String("document_id", documentID), zap.Error(err))
		p.notifier.Notify(notify.Notification{
			Title:       "Status refresh failed",
			Description: err.Error(),
			Severity:    notify.Error,
		})
		result.SnapshotStale = true
		return result, nil
	}
	p.store.ReplaceSnapshot(set, seq)

	if len(res.Fills) > 0 {
		p.notifier.Notify(notify.Notification{
			Title:       "Fields updated",
			Description: fillCountMessage(len(res.Fills)),
			Severity:    notify.Success,
		})
	}
	return result, nil
}

func fillCountMessage(n int) string {
	if n == 1 {
		return "1 placeholder filled"
	}
	return fmt.Sprintf("%d placeholders filled", n)
}
