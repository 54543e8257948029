// Package ui renders terminal summaries for the CLI commands.
package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("2")).
		Bold(true)
	failStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("1")).
			Bold(true)
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))
)

// CheckSummary renders the one-line verdict printed after 'chirp check'.
func CheckSummary(path string, ok bool, entities, methods, errors int) string {
	if ok {
		return fmt.Sprintf("%s %s %s",
			okStyle.Render("ok"),
			path,
			dimStyle.Render(fmt.Sprintf("(%d entities, %d methods)", entities, methods)))
	}
	return fmt.Sprintf("%s %s %s",
		failStyle.Render("failed"),
		path,
		dimStyle.Render(fmt.Sprintf("(%d errors)", errors)))
}
