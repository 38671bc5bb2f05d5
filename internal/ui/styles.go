// Package ui owns terminal rendering for tracksync: lipgloss styles and the
// console reporter the reconciliation engine feeds with structured events.
package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/danielolaszy/tracksync/pkg/models"
)

// Semantic action colors
var (
	CreateStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))  // green
	UpdateStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))  // yellow
	ArchiveStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))  // red
	MutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))  // gray
	HeaderStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")) // cyan
	NotSyncedText = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	SyncedText    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
)

// statusStyles colors document statuses in listings.
var statusStyles = map[models.Status]lipgloss.Style{
	models.StatusBacklog:    MutedStyle,
	models.StatusReady:      lipgloss.NewStyle().Foreground(lipgloss.Color("4")), // blue
	models.StatusInProgress: UpdateStyle,
	models.StatusInReview:   lipgloss.NewStyle().Foreground(lipgloss.Color("5")), // purple
	models.StatusDone:       CreateStyle,
}

// RenderStatus renders a document status in its semantic color.
func RenderStatus(status models.Status) string {
	if style, ok := statusStyles[status]; ok {
		return style.Render(string(status))
	}
	return string(status)
}
