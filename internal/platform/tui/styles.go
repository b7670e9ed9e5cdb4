package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/swg/internal/rules"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	cursorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

// boardTableStyles colors the leaderboard header with the panel border
// and highlights the cursor row like the menu cursor.
func boardTableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = headerStyle.
		Padding(0, 1).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true)
	s.Selected = cursorStyle.Reverse(true)
	return s
}

// outcomeStyles maps round outcomes to lipgloss styles.
var outcomeStyles = map[rules.Outcome]lipgloss.Style{
	rules.Win:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	rules.Loss: lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	rules.Draw: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
}

// renderOutcome styles text according to an outcome.
func renderOutcome(o rules.Outcome, text string) string {
	style, ok := outcomeStyles[o]
	if !ok {
		return text
	}
	return style.Render(text)
}

// centerText horizontally centers text within width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}
