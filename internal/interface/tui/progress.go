package tui

import (
	"fmt"
	"strings"
)

// renderProgressBar draws a fixed-width completion bar from the server's
// completion percentage.
func renderProgressBar(percent float64, width int) string {
	if width < 10 {
		width = 10
	}
	barWidth := width - 7 // room for " 100%"
	filled := int(float64(barWidth) * percent / 100)
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}

	bar := filledStyle.Render(strings.Repeat("█", filled)) +
		metaStyle.Render(strings.Repeat("░", barWidth-filled))
	return fmt.Sprintf("%s %3.0f%%", bar, percent)
}
