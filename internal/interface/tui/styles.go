package tui

import "github.com/charmbracelet/lipgloss"

// Global styles used across views
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	// Chat view styles
	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("cyan")).
			Bold(true)

	assistantStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("green")).
			Bold(true)

	fillStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("120"))

	timestampStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("246"))

	// Status view styles
	filledStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("green"))

	unfilledStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("yellow"))

	selectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("170")).
				Bold(true)

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("246"))

	panelBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240")).
				Padding(0, 1)

	focusedPanelBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("205")).
				Padding(0, 1)

	// Notification styles
	noticeSuccessStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("green")).
				Bold(true)

	noticeErrorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("red")).
				Bold(true)

	noticeInfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("246"))

	// Help view styles
	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)
