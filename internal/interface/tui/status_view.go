package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rmandel/docfill/internal/core/models"
	"github.com/rmandel/docfill/internal/core/notify"
)

func (m Model) updateStatus(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.filterFocused {
		switch msg.String() {
		case "esc":
			m.filterFocused = false
			m.filterInput.Blur()
			return m, nil
		case "enter":
			m.filterFocused = false
			m.filterInput.Blur()
			m.clampStatusSelection()
			return m, nil
		}
		var cmd tea.Cmd
		m.filterInput, cmd = m.filterInput.Update(msg)
		m.clampStatusSelection()
		return m, cmd
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.statusSelected > 0 {
			m.statusSelected--
		}
		return m, nil
	case "down", "j":
		m.statusSelected++
		m.clampStatusSelection()
		return m, nil
	case "/":
		m.filterFocused = true
		m.filterInput.Focus()
		return m, nil
	case "r":
		if m.deps.Store.Busy() {
			return m, nil
		}
		return m, refreshSnapshot(m.deps.Protocol)
	case "p":
		documentID := m.deps.Store.DocumentID()
		if documentID == "" {
			return m, nil
		}
		m.prevMode = m.mode
		m.mode = previewView
		m.target.SetVisible(false)
		m.previewPort.SetContent("")
		return m, tea.Batch(openPreview(m.deps, m.preview, documentID), markPreviewVisible(), m.spin.Tick)
	case "d":
		documentID := m.deps.Store.DocumentID()
		if documentID == "" {
			return m, nil
		}
		return m, downloadDocument(m.deps, documentID, m.deps.Store.FileName())
	case "c":
		documentID := m.deps.Store.DocumentID()
		if documentID == "" {
			return m, nil
		}
		return m.copyToClipboard("Link copied", m.deps.Client.DownloadURL(documentID))
	case "y":
		selected := m.selectedPlaceholder(m.visiblePlaceholders())
		if selected == nil || !selected.IsFilled {
			return m, nil
		}
		return m.copyToClipboard("Value copied", selected.Value)
	case "u":
		if m.deps.Store.Busy() {
			return m, nil
		}
		m.mode = uploadView
		m.uploading = false
		return m, m.picker.Init()
	case "?":
		m.prevMode = m.mode
		m.mode = helpView
		return m, nil
	}
	return m, nil
}

func (m Model) copyToClipboard(title, text string) (tea.Model, tea.Cmd) {
	if err := clipboard.WriteAll(text); err != nil {
		m.deps.Notices.Notify(notify.Notification{
			Title:       "Copy failed",
			Description: err.Error(),
			Severity:    notify.Error,
		})
	} else {
		m.deps.Notices.Notify(notify.Notification{
			Title:       title,
			Description: text,
			Severity:    notify.Success,
		})
	}
	return m.drainNotices()
}

// visiblePlaceholders is the snapshot filtered through the status query.
func (m Model) visiblePlaceholders() []models.Placeholder {
	set := m.deps.Store.Snapshot()
	if set == nil {
		return nil
	}
	return parseStatusQuery(m.filterInput.Value()).apply(set.Placeholders)
}

func (m *Model) clampStatusSelection() {
	n := len(m.visiblePlaceholders())
	if m.statusSelected >= n {
		m.statusSelected = n - 1
	}
	if m.statusSelected < 0 {
		m.statusSelected = 0
	}
}

func (m Model) viewStatusPanel(width, height int) string {
	set := m.deps.Store.Snapshot()
	if set == nil {
		return metaStyle.Render("No document loaded")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Placeholders") + "\n")
	b.WriteString(fmt.Sprintf("%d of %d filled\n", set.Summary.FilledCount, set.Summary.Total))
	b.WriteString(renderProgressBar(set.Summary.CompletionPercent, width-4) + "\n\n")

	b.WriteString(m.filterInput.View() + "\n\n")

	visible := m.visiblePlaceholders()
	if len(visible) == 0 {
		b.WriteString(metaStyle.Render("No placeholders match"))
		return b.String()
	}

	// Window the list around the selection so it fits the panel.
	listHeight := height - 8
	if listHeight < 1 {
		listHeight = 1
	}
	start := 0
	if m.statusSelected >= listHeight {
		start = m.statusSelected - listHeight + 1
	}
	end := start + listHeight
	if end > len(visible) {
		end = len(visible)
	}

	for i := start; i < end; i++ {
		b.WriteString(renderPlaceholderLine(visible[i], i == m.statusSelected) + "\n")
	}
	if selected := m.selectedPlaceholder(visible); selected != nil {
		b.WriteString("\n" + renderPlaceholderDetail(*selected))
	}
	return b.String()
}

func (m Model) selectedPlaceholder(visible []models.Placeholder) *models.Placeholder {
	if m.statusSelected < 0 || m.statusSelected >= len(visible) {
		return nil
	}
	p := visible[m.statusSelected]
	return &p
}

func renderPlaceholderLine(p models.Placeholder, selected bool) string {
	marker := unfilledStyle.Render("○")
	if p.IsFilled {
		marker = filledStyle.Render("●")
	}
	label := p.MatchText
	if p.IsFilled && p.Value != "" {
		label += " = " + p.Value
	}
	if selected {
		return marker + " " + selectedItemStyle.Render(label)
	}
	return marker + " " + label
}

func renderPlaceholderDetail(p models.Placeholder) string {
	var b strings.Builder
	b.WriteString(metaStyle.Render(fmt.Sprintf("page %d · paragraph %d", p.EstimatedPageNumber, p.ParagraphIndex)))
	if p.ContextSnippet != "" {
		b.WriteString("\n" + metaStyle.Render(p.ContextSnippet))
	}
	if p.FillConfidence != "" {
		b.WriteString("\n" + metaStyle.Render("confidence: "+p.FillConfidence))
	}
	return b.String()
}
