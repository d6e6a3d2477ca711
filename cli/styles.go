// ABOUTME: Shared lipgloss styles for CLI output
// ABOUTME: Keeps success marks and headings consistent across commands
package cli

import "github.com/charmbracelet/lipgloss"

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	headerStyle  = lipgloss.NewStyle().Bold(true)
	faintStyle   = lipgloss.NewStyle().Faint(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

func checkmark(msg string) string {
	return successStyle.Render("✓") + " " + msg
}

func warning(msg string) string {
	return warnStyle.Render("!") + " " + msg
}
