package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rmandel/docfill/internal/core/models"
)

func (m Model) updateMain(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		if m.focus == chatPanel {
			m.focus = statusPanel
			m.chatInput.Blur()
		} else {
			m.focus = chatPanel
			m.filterFocused = false
			m.filterInput.Blur()
			m.chatInput.Focus()
		}
		return m, nil
	}

	if m.focus == statusPanel {
		return m.updateStatus(msg)
	}

	switch msg.String() {
	case "enter":
		input := strings.TrimSpace(m.chatInput.Value())
		if input == "" || m.sending {
			return m, nil
		}
		m.sending = true
		m.chatInput.Reset()
		return m, tea.Batch(sendTurn(m.deps.Protocol, input), syncTranscriptSoon(), m.spin.Tick)
	}

	var cmd tea.Cmd
	m.chatInput, cmd = m.chatInput.Update(msg)
	return m, cmd
}

// syncTranscript rebuilds the viewport content from the store's transcript
// and pins it to the bottom. Called whenever the transcript may have grown,
// including mid-turn for the optimistic user message.
func (m *Model) syncTranscript() {
	messages := m.deps.Store.Messages()
	var b strings.Builder
	for i, msg := range messages {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(renderMessage(msg))
	}
	if m.sending {
		b.WriteString("\n" + m.spin.View() + metaStyle.Render(" thinking..."))
	}
	m.transcript.SetContent(b.String())
	m.transcript.GotoBottom()
}

func renderMessage(msg models.ChatMessage) string {
	var b strings.Builder
	label := assistantStyle.Render("assistant")
	if msg.Role == models.RoleUser {
		label = userStyle.Render("you")
	}
	b.WriteString(fmt.Sprintf("%s %s\n", label,
		timestampStyle.Render(msg.CreatedAt.Format("15:04"))))
	b.WriteString(msg.Content + "\n")
	for _, f := range msg.Fills {
		name := f.FieldLabel
		if name == "" {
			name = f.PlaceholderID
		}
		b.WriteString(fillStyle.Render(fmt.Sprintf("  ✓ %s → %s", name, f.Value)) + "\n")
	}
	return b.String()
}

func (m Model) viewMain() string {
	chatWidth := m.width * 2 / 3
	statusWidth := m.width - chatWidth - 2
	bodyHeight := m.height - 6
	if bodyHeight < 4 {
		bodyHeight = 4
	}

	header := titleStyle.Render("docfill") + "  " + metaStyle.Render(m.deps.Store.FileName())

	chatBorder := panelBorderStyle
	statusBorder := panelBorderStyle
	if m.focus == chatPanel {
		chatBorder = focusedPanelBorderStyle
	} else {
		statusBorder = focusedPanelBorderStyle
	}

	chat := chatBorder.Width(chatWidth - 2).Height(bodyHeight).Render(m.viewChatPanel())
	status := statusBorder.Width(statusWidth).Height(bodyHeight).Render(m.viewStatusPanel(statusWidth, bodyHeight))

	body := lipgloss.JoinHorizontal(lipgloss.Top, chat, status)

	footer := m.renderNotice() + helpStyle.Render(m.mainHelp())

	return header + "\n" + body + "\n" + footer
}

func (m Model) viewChatPanel() string {
	input := m.chatInput.View()
	if m.sending {
		input = m.spin.View() + " sending..."
	}
	return m.transcript.View() + "\n\n" + input
}

func (m Model) mainHelp() string {
	if m.focus == statusPanel {
		return "↑/↓: select • /: filter • r: refresh • p: preview • d: download • c: copy link • y: copy value • u: new doc • tab: chat • ?: help • q: quit"
	}
	return "enter: send • tab: status • ctrl+c: quit"
}
