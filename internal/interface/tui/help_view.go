package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "?":
		m.mode = m.prevMode
		return m, nil
	}
	return m, nil
}

func (m Model) viewHelp() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("docfill help") + "\n\n")

	sections := []struct {
		title string
		keys  [][2]string
	}{
		{"Chat", [][2]string{
			{"enter", "send message"},
			{"tab", "switch to status panel"},
		}},
		{"Status", [][2]string{
			{"↑/↓, k/j", "move selection"},
			{"/", "filter (is:filled, is:unfilled, page:N, sort:..., text)"},
			{"r", "refresh placeholder status"},
			{"p", "preview document"},
			{"d", "download filled document"},
			{"c", "copy download link"},
			{"y", "copy selected value"},
			{"u", "upload a new document"},
		}},
		{"Preview", [][2]string{
			{"+/-", "zoom in/out (50% to 200%)"},
			{"0", "reset zoom"},
			{"esc", "close preview"},
		}},
		{"Global", [][2]string{
			{"?", "toggle this help"},
			{"ctrl+c", "quit"},
		}},
	}

	for _, s := range sections {
		b.WriteString(selectedItemStyle.Render(s.title) + "\n")
		for _, k := range s.keys {
			b.WriteString("  " + metaStyle.Render(padKey(k[0])) + " " + k[1] + "\n")
		}
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("esc: back"))
	return b.String()
}

func padKey(k string) string {
	for len(k) < 10 {
		k += " "
	}
	return k
}
