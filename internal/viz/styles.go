package viz

import "github.com/charmbracelet/lipgloss"

var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("86"))

	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("238")).
		Padding(0, 1)

	Subtle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("242"))

	MetricValue = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	StatusSeparate = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("82"))

	StatusMerged = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("203"))
)
