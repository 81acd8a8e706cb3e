package tui

import (
	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/rmandel/docfill/internal/core/api"
	"github.com/rmandel/docfill/internal/core/config"
	"github.com/rmandel/docfill/internal/core/fill"
	"github.com/rmandel/docfill/internal/core/notify"
	"github.com/rmandel/docfill/internal/core/preview"
	"github.com/rmandel/docfill/internal/core/session"
)

type viewMode int

const (
	uploadView viewMode = iota
	mainView
	previewView
	helpView
)

type panel int

const (
	chatPanel panel = iota
	statusPanel
)

// Deps wires the core into the TUI. Everything is constructed explicitly in
// cli/tui.go; the TUI holds no globals.
type Deps struct {
	Store    *session.Store
	Client   *api.Client
	Protocol *fill.Protocol
	Notices  *notify.Buffer
	Config   *config.Config
	Log      *zap.Logger
}

type Model struct {
	deps    Deps
	preview *preview.Lifecycle
	target  *screenTarget

	mode  viewMode
	focus panel

	width  int
	height int

	// Upload view
	picker    filepicker.Model
	spin      spinner.Model
	uploading bool

	// Chat panel. sending is the per-panel re-entrancy guard: it blocks a
	// second chat turn but deliberately not uploads or refreshes.
	chatInput  textinput.Model
	transcript viewport.Model
	sending    bool

	// Status panel
	filterInput    textinput.Model
	filterFocused  bool
	statusSelected int

	// Preview overlay
	previewPort viewport.Model

	notice   *notify.Notification
	prevMode viewMode
	err      error
}

func New(deps Deps) Model {
	picker := filepicker.New()
	picker.AllowedTypes = []string{".docx"}
	picker.ShowHidden = false
	picker.AutoHeight = false

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	chatInput := textinput.New()
	chatInput.Placeholder = "Type your message..."
	chatInput.CharLimit = 2000
	chatInput.Focus()

	filterInput := textinput.New()
	filterInput.Placeholder = "Filter: is:filled, is:unfilled, page:2, text"
	filterInput.CharLimit = 200

	target := newScreenTarget()

	return Model{
		deps:        deps,
		preview:     preview.NewLifecycle(deps.Client, preview.DocxRenderer{}, target, deps.Log),
		target:      target,
		mode:        uploadView,
		focus:       chatPanel,
		picker:      picker,
		spin:        spin,
		chatInput:   chatInput,
		filterInput: filterInput,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.picker.Init(), m.spin.Tick, textinput.Blink)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case uploadView:
			return m.updateUpload(msg)
		case mainView:
			return m.updateMain(msg)
		case previewView:
			return m.updatePreview(msg)
		case helpView:
			return m.updateHelp(msg)
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case transcriptSyncMsg:
		// Repaint while a turn is in flight so the optimistic user message
		// shows before the network reply lands.
		m.syncTranscript()
		if m.sending {
			return m, syncTranscriptSoon()
		}
		return m, nil

	case uploadDoneMsg:
		m.uploading = false
		if msg.err == nil {
			m.mode = mainView
			m.layout()
			m.syncTranscript()
		}
		return m.drainNotices()

	case turnDoneMsg:
		m.sending = false
		m.syncTranscript()
		m.clampStatusSelection()
		return m.drainNotices()

	case refreshDoneMsg:
		m.clampStatusSelection()
		return m.drainNotices()

	case downloadDoneMsg:
		return m.drainNotices()

	case previewReadyMsg:
		m.previewPort.SetContent(m.target.Content())
		return m.drainNotices()

	case previewVisibleMsg:
		// The overlay has finished its first paint; the mount target's
		// layout is now final.
		m.target.SetVisible(true)
		return m, nil

	case noticeExpiredMsg:
		m.notice = nil
		return m, nil

	case errMsg:
		m.err = msg.err
		return m, nil
	}

	return m, nil
}

// layout sizes the panels and the preview mount target from the current
// window dimensions.
func (m *Model) layout() {
	if m.width == 0 {
		return
	}
	chatWidth := m.width * 2 / 3
	bodyHeight := m.height - 6
	if bodyHeight < 4 {
		bodyHeight = 4
	}

	m.picker.Height = bodyHeight

	m.transcript = viewport.New(chatWidth-4, bodyHeight-3)
	m.chatInput.Width = chatWidth - 8

	m.previewPort = viewport.New(m.width-4, m.height-5)
	m.target.SetSize(m.width-8, m.height-5)
	m.syncTranscript()
}

func (m Model) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress ctrl+c to quit"
	}

	switch m.mode {
	case uploadView:
		return m.viewUpload()
	case mainView:
		return m.viewMain()
	case previewView:
		return m.viewPreview()
	case helpView:
		return m.viewHelp()
	}
	return ""
}
