package tui

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/rmandel/docfill/internal/core/notify"
)

func (m Model) updateUpload(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		if !m.uploading {
			return m, tea.Quit
		}
		return m, nil
	}

	if m.uploading {
		return m, nil
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if ok, path := m.picker.DidSelectFile(msg); ok {
		m.uploading = true
		return m, tea.Batch(cmd, uploadDocument(m.deps.Protocol, path), m.spin.Tick)
	}
	return m, cmd
}

func (m Model) viewUpload() string {
	s := titleStyle.Render("docfill") + "\n\n"
	s += "Select a .docx document to fill:\n\n"

	if m.uploading {
		s += fmt.Sprintf("%s Uploading and scanning for placeholders...\n", m.spin.View())
		if path := m.picker.Path; path != "" {
			if info, err := os.Stat(path); err == nil {
				s += metaStyle.Render(fmt.Sprintf("  %s (%s)", path, humanize.Bytes(uint64(info.Size())))) + "\n"
			}
		}
	} else {
		s += m.picker.View() + "\n"
	}

	s += "\n" + m.renderNotice()
	s += helpStyle.Render("enter: select • q: quit")
	return s
}

// renderNotice paints the transient status line shared by all views.
func (m Model) renderNotice() string {
	if m.notice == nil {
		return ""
	}
	line := m.notice.Title
	if m.notice.Description != "" {
		line += ": " + m.notice.Description
	}
	switch m.notice.Severity {
	case notify.Success:
		return noticeSuccessStyle.Render(line) + "\n"
	case notify.Error:
		return noticeErrorStyle.Render(line) + "\n"
	default:
		return noticeInfoStyle.Render(line) + "\n"
	}
}
