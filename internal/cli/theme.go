package cli

import "github.com/charmbracelet/lipgloss"

type theme struct {
	Title lipgloss.Style
	Label lipgloss.Style
	Pass  lipgloss.Style
	Fail  lipgloss.Style
	Warn  lipgloss.Style
	Faint lipgloss.Style
	Card  lipgloss.Style
}

func defaultTheme() theme {
	return theme{
		Title: lipgloss.NewStyle().Bold(true),
		Label: lipgloss.NewStyle().Faint(true).Width(12),
		Pass:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2")),
		Fail:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1")),
		Warn:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		Faint: lipgloss.NewStyle().Faint(true),
		Card: lipgloss.NewStyle().
			Padding(0, 1).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")),
	}
}
