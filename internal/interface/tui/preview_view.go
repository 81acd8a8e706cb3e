package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rmandel/docfill/internal/core/preview"
)

func (m Model) updatePreview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "p":
		m.preview.Close()
		m.target.SetVisible(false)
		m.mode = mainView
		return m, nil
	case "+", "=":
		m.preview.ZoomIn()
		return m, nil
	case "-":
		m.preview.ZoomOut()
		return m, nil
	case "0":
		m.preview.ZoomReset()
		return m, nil
	}

	var cmd tea.Cmd
	m.previewPort, cmd = m.previewPort.Update(msg)
	return m, cmd
}

func (m Model) viewPreview() string {
	header := titleStyle.Render("Preview") + "  " +
		metaStyle.Render(fmt.Sprintf("%s · %d%%", m.deps.Store.FileName(), m.preview.Zoom()))

	var body string
	switch m.preview.State() {
	case preview.Errored:
		body = noticeErrorStyle.Render(m.preview.Err())
	case preview.Rendered:
		body = m.previewPort.View()
	default:
		body = m.spin.View() + " Loading preview..."
	}

	footer := helpStyle.Render("↑/↓: scroll • +/-: zoom • 0: reset zoom • esc: close")
	return header + "\n\n" + body + "\n" + footer
}
