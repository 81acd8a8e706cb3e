package tui

import (
	"context"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rmandel/docfill/internal/core/fill"
	"github.com/rmandel/docfill/internal/core/models"
	"github.com/rmandel/docfill/internal/core/notify"
	"github.com/rmandel/docfill/internal/core/preview"
)

type errMsg struct {
	err error
}

type uploadDoneMsg struct {
	outcome fill.UploadOutcome
	err     error
}

type turnDoneMsg struct {
	result fill.TurnResult
	err    error
}

type refreshDoneMsg struct {
	set *models.PlaceholderSet
	err error
}

type previewReadyMsg struct {
	err error
}

type downloadDoneMsg struct {
	path string
	err  error
}

type previewVisibleMsg struct{}

type transcriptSyncMsg struct{}

type noticeExpiredMsg struct{}

// uploadDocument reads a file from disk and runs the full upload flow. The
// flow notifies through the buffer; Update drains it when this message lands.
func uploadDocument(p *fill.Protocol, path string) tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return errMsg{err}
		}
		outcome, err := p.UploadDocument(context.Background(), data, filepath.Base(path))
		return uploadDoneMsg{outcome: outcome, err: err}
	}
}

// sendTurn runs one chat turn. The optimistic user append happens inside
// SendTurn as soon as the command starts; syncTranscriptSoon repaints it
// while the network call is still in flight.
func sendTurn(p *fill.Protocol, input string) tea.Cmd {
	return func() tea.Msg {
		result, err := p.SendTurn(context.Background(), input)
		return turnDoneMsg{result: result, err: err}
	}
}

func syncTranscriptSoon() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(time.Time) tea.Msg {
		return transcriptSyncMsg{}
	})
}

func refreshSnapshot(p *fill.Protocol) tea.Cmd {
	return func() tea.Msg {
		set, err := p.RefreshSnapshot(context.Background())
		return refreshDoneMsg{set: set, err: err}
	}
}

// openPreview runs the acquisition/render lifecycle. markPreviewVisible runs
// alongside it: the mount target only reports visible once the overlay has
// had a frame to lay out, which is what the lifecycle's visibility poll
// waits on.
func openPreview(deps Deps, lc *preview.Lifecycle, documentID string) tea.Cmd {
	return func() tea.Msg {
		err := lc.Open(context.Background(), documentID, nil)
		if err != nil {
			deps.Notices.Notify(notify.Notification{
				Title:       "Preview failed",
				Description: err.Error(),
				Severity:    notify.Error,
			})
		}
		return previewReadyMsg{err: err}
	}
}

// downloadDocument fetches the filled document and writes it next to the
// working directory under a filled_ prefix.
func downloadDocument(deps Deps, documentID, fileName string) tea.Cmd {
	return func() tea.Msg {
		data, err := deps.Client.FetchDocumentBytes(context.Background(), documentID)
		if err != nil {
			deps.Notices.Notify(notify.Notification{
				Title:       "Download failed",
				Description: err.Error(),
				Severity:    notify.Error,
			})
			return downloadDoneMsg{err: err}
		}
		path := "filled_" + fileName
		if err := os.WriteFile(path, data, 0o644); err != nil {
			deps.Notices.Notify(notify.Notification{
				Title:       "Download failed",
				Description: err.Error(),
				Severity:    notify.Error,
			})
			return downloadDoneMsg{err: err}
		}
		deps.Notices.Notify(notify.Notification{
			Title:       "Document downloaded",
			Description: "Saved to " + path,
			Severity:    notify.Success,
		})
		return downloadDoneMsg{path: path}
	}
}

func markPreviewVisible() tea.Cmd {
	return tea.Tick(50*time.Millisecond, func(time.Time) tea.Msg {
		return previewVisibleMsg{}
	})
}

func expireNotice() tea.Cmd {
	return tea.Tick(4*time.Second, func(time.Time) tea.Msg {
		return noticeExpiredMsg{}
	})
}

// drainNotices moves buffered notifications into the status line, keeping
// the most recent one.
func (m Model) drainNotices() (tea.Model, tea.Cmd) {
	pending := m.deps.Notices.Drain()
	if len(pending) == 0 {
		return m, nil
	}
	last := pending[len(pending)-1]
	m.notice = &last
	return m, expireNotice()
}
